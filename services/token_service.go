package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/pkg/mailer"
	"github.com/FawazNazmo/MechLink/repository"

	"gorm.io/gorm"
)

const (
	defaultNearbyRadiusMeters = 5000
	nearbyLimit               = 50
)

type TokenService struct {
	DB   *gorm.DB
	Repo *repository.TokenRepository
	Mail *mailer.Mailer
}

func NewTokenService(db *gorm.DB, repo *repository.TokenRepository, mail *mailer.Mailer) *TokenService {
	return &TokenService{DB: db, Repo: repo, Mail: mail}
}

// ----- Raise -----

func (s *TokenService) Raise(userID uint, lat, lng float64, note string) (*entity.BreakdownToken, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: lat/lng out of range", ErrValidation)
	}

	t := &entity.BreakdownToken{
		UserID: userID,
		Lat:    lat,
		Lng:    lng,
		Status: entity.TokenOpen,
		Note:   note,
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ----- Nearby -----

// NearbyToken is one row of the mechanic's triage view.
type NearbyToken struct {
	Token         entity.BreakdownToken
	DistanceKm    float64
	EtaMinutes    int
	PriorityLevel string
}

// Nearby returns open tokens around the mechanic, ascending by distance,
// annotated with ETA and priority. The ranking never reorders the rows.
func (s *TokenService) Nearby(lat, lng, radiusMeters float64, now time.Time) ([]NearbyToken, error) {
	if radiusMeters <= 0 {
		radiusMeters = defaultNearbyRadiusMeters
	}

	rows, err := s.Repo.NearbyOpen(lat, lng, radiusMeters, nearbyLimit)
	if err != nil {
		return nil, err
	}

	out := make([]NearbyToken, 0, len(rows))
	for _, row := range rows {
		age := now.Sub(row.Token.CreatedAt).Minutes()
		out = append(out, NearbyToken{
			Token:         row.Token,
			DistanceKm:    row.DistanceKm,
			EtaMinutes:    EtaMinutes(row.DistanceKm),
			PriorityLevel: PriorityLevel(row.DistanceKm, age),
		})
	}
	return out, nil
}

// ----- Accept / Resolve / Reject -----

// Accept atomically claims an open token for the mechanic. Losing the race
// yields ErrConflict — the routine outcome, not a fault. The winner triggers
// a best-effort email to the requester.
func (s *TokenService) Accept(tokenID, mechanicID uint) (*entity.BreakdownToken, error) {
	won, err := s.Repo.ClaimOpen(s.DB, tokenID, mechanicID, entity.TokenAccepted)
	if err != nil {
		return nil, err
	}
	if !won {
		if _, err := s.Repo.Get(tokenID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}

	t, err := s.Repo.GetWithUser(tokenID)
	if err != nil {
		return nil, err
	}

	if t.User.Email != "" {
		name := t.User.FirstName
		if name == "" {
			name = t.User.Username
		}
		s.Mail.SendAsync(
			t.User.Email,
			"MechLink – Mechanic accepted your breakdown request",
			fmt.Sprintf("Hi %s,\n\nA mechanic has accepted your breakdown request and is on the way.\n\nIf your situation becomes unsafe, please contact emergency services.\n\nMechLink", name),
		)
	}
	return t, nil
}

// Resolve closes an accepted token. Only the mechanic who accepted may call it.
func (s *TokenService) Resolve(tokenID, mechanicID uint) (*entity.BreakdownToken, error) {
	t, err := s.Repo.Get(tokenID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if t.MechanicID == nil || *t.MechanicID != mechanicID {
		return nil, ErrNotOwner
	}

	ok, err := s.Repo.UpdateStatusFromTo(s.DB, tokenID, entity.TokenAccepted, entity.TokenResolved)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	return s.Repo.Get(tokenID)
}

// Reject closes an open token without taking it. Any mechanic may reject;
// concurrent rejects race the same compare-and-set as accept.
func (s *TokenService) Reject(tokenID, mechanicID uint) (*entity.BreakdownToken, error) {
	won, err := s.Repo.ClaimOpen(s.DB, tokenID, mechanicID, entity.TokenRejected)
	if err != nil {
		return nil, err
	}
	if !won {
		if _, err := s.Repo.Get(tokenID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidState
	}
	return s.Repo.Get(tokenID)
}

// ----- Queries -----

func (s *TokenService) MyLatest(userID uint) (*entity.BreakdownToken, error) {
	t, err := s.Repo.LatestForUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TokenService) Assigned(mechanicID uint) ([]entity.BreakdownToken, error) {
	return s.Repo.ListForMechanic(mechanicID)
}
