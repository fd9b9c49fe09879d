// services/alert_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"
)

type AlertService struct {
	Repo         *repository.AlertSettingRepository
	ReminderRepo *repository.VehicleReminderRepository
}

func NewAlertService(repo *repository.AlertSettingRepository, reminderRepo *repository.VehicleReminderRepository) *AlertService {
	return &AlertService{Repo: repo, ReminderRepo: reminderRepo}
}

// GetSettings returns the stored preferences, or the defaults when the user
// never saved any.
func (s *AlertService) GetSettings(userID uint) (*entity.AlertSetting, error) {
	setting, err := s.Repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return &entity.AlertSetting{UserID: userID, EmailReminders: true}, nil
	}
	return setting, nil
}

func (s *AlertService) SaveSettings(userID uint, email string, emailReminders bool) (*entity.AlertSetting, error) {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	return s.Repo.Upsert(userID, email, emailReminders)
}

// ----- Vehicle legal-date reminders -----

type VehicleReminderInput struct {
	Registration    string
	MotExpiry       *time.Time
	InsuranceExpiry *time.Time
	TaxExpiry       *time.Time
}

func (s *AlertService) GetVehicleReminder(userID uint) (*entity.VehicleReminder, error) {
	rem, err := s.ReminderRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if rem == nil {
		return nil, ErrNotFound
	}
	return rem, nil
}

func (s *AlertService) SaveVehicleReminder(userID uint, in VehicleReminderInput) (*entity.VehicleReminder, error) {
	reg := strings.ToUpper(strings.TrimSpace(in.Registration))
	if reg == "" {
		return nil, fmt.Errorf("%w: registration is required", ErrValidation)
	}
	return s.ReminderRepo.Upsert(userID, reg, in.MotExpiry, in.InsuranceExpiry, in.TaxExpiry)
}

// DueStatus flags a legal date that is past or inside the warning window.
type DueStatus struct {
	Kind     string    `json:"kind"` // mot | insurance | tax
	DueDate  time.Time `json:"dueDate"`
	DaysLeft int       `json:"daysLeft"`
	Expired  bool      `json:"expired"`
}

// DueSoon lists the caller's legal dates expiring inside windowDays.
func (s *AlertService) DueSoon(userID uint, now time.Time, windowDays int) ([]DueStatus, error) {
	rem, err := s.ReminderRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if rem == nil {
		return []DueStatus{}, nil
	}

	out := []DueStatus{}
	check := func(kind string, due *time.Time) {
		if due == nil {
			return
		}
		days := int(due.Sub(now).Hours() / 24)
		if days > windowDays {
			return
		}
		out = append(out, DueStatus{Kind: kind, DueDate: *due, DaysLeft: days, Expired: due.Before(now)})
	}
	check("mot", rem.MotExpiry)
	check("insurance", rem.InsuranceExpiry)
	check("tax", rem.TaxExpiry)
	return out, nil
}
