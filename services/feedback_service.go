// services/feedback_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"gorm.io/gorm"
)

const (
	FeedbackSourceToken   = "token"
	FeedbackSourceBooking = "booking"
)

type FeedbackService struct {
	Repo        *repository.FeedbackRepository
	UserRepo    *repository.UserRepository
	TokenRepo   *repository.TokenRepository
	BookingRepo *repository.BookingRepository
}

func NewFeedbackService(
	repo *repository.FeedbackRepository,
	userRepo *repository.UserRepository,
	tokenRepo *repository.TokenRepository,
	bookingRepo *repository.BookingRepository,
) *FeedbackService {
	return &FeedbackService{Repo: repo, UserRepo: userRepo, TokenRepo: tokenRepo, BookingRepo: bookingRepo}
}

type CreateFeedbackInput struct {
	MechanicID uint
	Rating     int
	Comment    string
	SourceType string // token | booking, optional
	SourceID   uint
}

// Create records a rating. When the feedback is tied to a job, the job must
// belong to the caller and be finished, and each job can be rated once.
func (s *FeedbackService) Create(userID uint, in CreateFeedbackInput) (*entity.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 1-5", ErrValidation)
	}
	isMech, err := s.UserRepo.IsMechanic(in.MechanicID)
	if err != nil {
		return nil, err
	}
	if !isMech {
		return nil, fmt.Errorf("%w: mechanic not found", ErrNotFound)
	}

	in.SourceType = strings.ToLower(strings.TrimSpace(in.SourceType))
	switch in.SourceType {
	case "":
		// free-standing review
	case FeedbackSourceToken:
		t, err := s.TokenRepo.Get(in.SourceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: token not found", ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if t.UserID != userID {
			return nil, ErrNotOwner
		}
		if t.Status != entity.TokenResolved {
			return nil, fmt.Errorf("%w: only resolved requests can be rated", ErrInvalidState)
		}
	case FeedbackSourceBooking:
		b, err := s.BookingRepo.Get(in.SourceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if b.UserID != userID {
			return nil, ErrNotOwner
		}
		if b.Status != entity.BookingCompleted {
			return nil, fmt.Errorf("%w: only completed bookings can be rated", ErrInvalidState)
		}
	default:
		return nil, fmt.Errorf("%w: sourceType must be token or booking", ErrValidation)
	}

	fb := &entity.Feedback{
		UserID:     userID,
		MechanicID: in.MechanicID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		SourceType: in.SourceType,
		SourceID:   in.SourceID,
	}
	if err := s.Repo.Create(fb); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: this job has already been rated", ErrConflict)
		}
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) ListForMechanic(mechanicID uint, limit int) ([]entity.Feedback, error) {
	return s.Repo.ListForMechanic(mechanicID, limit)
}

type FeedbackSummary struct {
	AvgRating *float64 `json:"avgRating"`
	Count     int64    `json:"count"`
}

func (s *FeedbackService) SummaryForMechanic(mechanicID uint) (*FeedbackSummary, error) {
	avg, count, err := s.Repo.Summary(mechanicID)
	if err != nil {
		return nil, err
	}
	return &FeedbackSummary{AvgRating: avg, Count: count}, nil
}

// PendingItem is a finished job the caller has not rated yet.
type PendingItem struct {
	SourceType string `json:"sourceType"`
	SourceID   uint   `json:"sourceId"`
	MechanicID uint   `json:"mechanicId"`
	Label      string `json:"label"`
}

// Pending lists the caller's resolved tokens and completed bookings that are
// still waiting for a rating.
func (s *FeedbackService) Pending(userID uint) ([]PendingItem, error) {
	items := []PendingItem{}

	ratedTokens, err := s.Repo.RatedSourceIDs(userID, FeedbackSourceToken)
	if err != nil {
		return nil, err
	}
	tokens, err := s.TokenRepo.ListResolvedForUser(userID)
	if err != nil {
		return nil, err
	}
	for _, t := range tokens {
		if ratedTokens[t.ID] || t.MechanicID == nil {
			continue
		}
		items = append(items, PendingItem{
			SourceType: FeedbackSourceToken,
			SourceID:   t.ID,
			MechanicID: *t.MechanicID,
			Label:      "Breakdown assistance",
		})
	}

	ratedBookings, err := s.Repo.RatedSourceIDs(userID, FeedbackSourceBooking)
	if err != nil {
		return nil, err
	}
	bookings, err := s.BookingRepo.ListCompletedForUser(userID)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if ratedBookings[b.ID] {
			continue
		}
		items = append(items, PendingItem{
			SourceType: FeedbackSourceBooking,
			SourceID:   b.ID,
			MechanicID: b.MechanicID,
			Label:      b.Issue,
		})
	}
	return items, nil
}
