package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/pkg/mailer"
	"github.com/FawazNazmo/MechLink/repository"

	"gorm.io/gorm"
)

type BookingService struct {
	DB         *gorm.DB
	Repo       *repository.BookingRepository
	UserRepo   *repository.UserRepository
	RecordRepo *repository.ServiceRecordRepository
	AlertRepo  *repository.AlertSettingRepository
	Pricing    *PricingService
	Mail       *mailer.Mailer
}

func NewBookingService(
	db *gorm.DB,
	repo *repository.BookingRepository,
	userRepo *repository.UserRepository,
	recordRepo *repository.ServiceRecordRepository,
	alertRepo *repository.AlertSettingRepository,
	pricing *PricingService,
	mail *mailer.Mailer,
) *BookingService {
	return &BookingService{
		DB: db, Repo: repo, UserRepo: userRepo, RecordRepo: recordRepo,
		AlertRepo: alertRepo, Pricing: pricing, Mail: mail,
	}
}

// ----- Create -----

type CreateBookingInput struct {
	MechanicID    uint
	Issue         string
	PreferredDate string // YYYY-MM-DD
	PreferredTime string // HH:mm
	Notes         string
}

func (s *BookingService) Create(userID uint, in CreateBookingInput) (*entity.Booking, error) {
	if in.MechanicID == 0 || in.Issue == "" || in.PreferredDate == "" || in.PreferredTime == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}

	isMech, err := s.UserRepo.IsMechanic(in.MechanicID)
	if err != nil {
		return nil, err
	}
	if !isMech {
		return nil, fmt.Errorf("%w: mechanic not found", ErrNotFound)
	}

	clash, err := s.Repo.HasClash(in.MechanicID, in.PreferredDate, in.PreferredTime)
	if err != nil {
		return nil, err
	}
	if clash {
		return nil, fmt.Errorf("%w: mechanic already booked for that date and time", ErrConflict)
	}

	b := &entity.Booking{
		UserID:        userID,
		MechanicID:    in.MechanicID,
		Issue:         in.Issue,
		PreferredDate: in.PreferredDate,
		PreferredTime: in.PreferredTime,
		Notes:         in.Notes,
		Status:        entity.BookingRequested,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, b); err != nil {
			return err
		}
		note := fmt.Sprintf("Booking requested for %s %s", in.PreferredDate, in.PreferredTime)
		return s.Repo.AddEvent(tx, b.ID, "created", "user", note)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ----- Slot check -----

type daySchedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
	On    bool   `json:"on"`
}

type SlotCheck struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// CheckSlot validates the mechanic's weekly schedule window and double booking.
func (s *BookingService) CheckSlot(mechanicID uint, date, timeOfDay string) (*SlotCheck, error) {
	mech, err := s.UserRepo.FindByID(mechanicID)
	if err != nil || mech.Role != "mechanic" {
		return nil, fmt.Errorf("%w: mechanic not found", ErrNotFound)
	}

	if mech.Schedule != "" {
		var schedule map[string]daySchedule
		if err := json.Unmarshal([]byte(mech.Schedule), &schedule); err == nil {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid date", ErrValidation)
			}
			keys := []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
			cfg, ok := schedule[keys[int(day.Weekday())]]
			if !ok || !cfg.On {
				return &SlotCheck{OK: false, Reason: "Mechanic is not available that day."}, nil
			}
			if cfg.Start != "" && cfg.End != "" && (timeOfDay < cfg.Start || timeOfDay > cfg.End) {
				return &SlotCheck{OK: false, Reason: fmt.Sprintf("Mechanic works between %s and %s on that day.", cfg.Start, cfg.End)}, nil
			}
		}
	}

	clash, err := s.Repo.HasClash(mechanicID, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	if clash {
		return &SlotCheck{OK: false, Reason: "Mechanic already booked for that time."}, nil
	}
	return &SlotCheck{OK: true}, nil
}

// ----- Lists -----

func (s *BookingService) ListForUser(userID uint) ([]entity.Booking, error) {
	return s.Repo.ListForUser(userID)
}

func (s *BookingService) ListForMechanic(mechanicID uint) ([]entity.Booking, error) {
	return s.Repo.ListForMechanic(mechanicID)
}

// ----- Complete -----

type CompleteBookingInput struct {
	Service         string
	Cost            float64
	Notes           string
	NextServiceDate *time.Time
	ServiceType     string
	CarSize         string
}

// Complete closes the job: fair-price classification, service record with
// reminder scheduling, return-visit detection, then a completion email.
func (s *BookingService) Complete(mechanicID, bookingID uint, in CompleteBookingInput) (*entity.Booking, *entity.ServiceRecord, error) {
	b, err := s.Repo.GetWithUser(bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if b.MechanicID != mechanicID {
		return nil, nil, ErrNotOwner
	}

	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = "diagnostic"
	}
	carSize := in.CarSize
	if carSize == "" {
		carSize = "any"
	}

	fair, err := s.Pricing.ComputeFairRange(serviceType, carSize)
	if err != nil {
		return nil, nil, err
	}
	flag := ClassifyPrice(in.Cost, fair)

	now := time.Now()
	nextDate := now.AddDate(0, 6, 0)
	if in.NextServiceDate != nil {
		nextDate = *in.NextServiceDate
	}
	remindAt := nextDate.AddDate(0, 0, -7)

	serviceName := in.Service
	if serviceName == "" {
		serviceName = b.Issue
	}

	var rec *entity.ServiceRecord
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, b.ID, []string{entity.BookingAccepted, entity.BookingRequested}, entity.BookingCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidState
		}

		pricing := map[string]any{
			"service_type": serviceType, "car_size": carSize,
			"estimated_cost": in.Cost, "fair_flag": flag,
		}
		if fair != nil {
			pricing["fair_min"] = fair.Min
			pricing["fair_max"] = fair.Max
		}
		if err := s.Repo.UpdatePricing(tx, b.ID, pricing); err != nil {
			return err
		}

		rec = &entity.ServiceRecord{
			UserID:          b.UserID,
			MechanicID:      b.MechanicID,
			Service:         serviceName,
			Notes:           in.Notes,
			Date:            now,
			Cost:            in.Cost,
			NextServiceDate: &nextDate,
			RemindAt:        &remindAt,
			ServiceType:     serviceType,
			CarSize:         carSize,
			FairFlag:        flag,
		}
		if fair != nil {
			rec.FairMin = &fair.Min
			rec.FairMax = &fair.Max
		}
		if err := s.RecordRepo.Create(tx, rec); err != nil {
			return err
		}

		// return-visit detector: same user + service type within 30 days
		prev, err := s.RecordRepo.PreviousSameType(tx, b.UserID, serviceType, rec.ID, now.AddDate(0, 0, -30))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if prev != nil {
			if err := s.RecordRepo.MarkReturnVisit(tx, rec.ID, prev.ID); err != nil {
				return err
			}
			rec.IsReturnVisit = true
			rec.LinkedRecordID = &prev.ID
		}

		note := fmt.Sprintf("Job completed at cost £%.2f", in.Cost)
		return s.Repo.AddEvent(tx, b.ID, "completed", "mechanic", note)
	})
	if err != nil {
		return nil, nil, err
	}

	s.sendCompletionEmail(b, rec, nextDate)

	b, err = s.Repo.Get(bookingID)
	if err != nil {
		return nil, nil, err
	}
	return b, rec, nil
}

func (s *BookingService) sendCompletionEmail(b *entity.Booking, rec *entity.ServiceRecord, nextDate time.Time) {
	setting, err := s.AlertRepo.FindByUser(b.UserID)
	if err != nil {
		return
	}
	// absent row means reminders are enabled
	if setting != nil && !setting.EmailReminders {
		return
	}

	to := b.User.Email
	if setting != nil && setting.Email != "" {
		to = setting.Email
	}
	if to == "" {
		return
	}

	name := b.User.FirstName
	if name == "" {
		name = "there"
	}
	s.Mail.SendAsync(
		to,
		"MechLink: Service Completed",
		fmt.Sprintf("Hello %s, your \"%s\" service has been completed.\n\nFinal cost: £%.2f.\nNext service due: %s.\nWe'll remind you a week before.",
			name, rec.Service, rec.Cost, nextDate.Format("Mon Jan 2 2006")),
	)
}
