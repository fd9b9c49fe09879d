// services/history_service.go
package services

import (
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"
)

type HistoryService struct {
	RecordRepo *repository.ServiceRecordRepository
	TokenRepo  *repository.TokenRepository
}

func NewHistoryService(recordRepo *repository.ServiceRecordRepository, tokenRepo *repository.TokenRepository) *HistoryService {
	return &HistoryService{RecordRepo: recordRepo, TokenRepo: tokenRepo}
}

const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

type UpcomingAlert struct {
	RecordID uint      `json:"recordId"`
	Service  string    `json:"service"`
	DueDate  time.Time `json:"dueDate"`
	DaysLeft int       `json:"daysLeft"`
}

type RiskAssessment struct {
	Score int    `json:"score"`
	Level string `json:"level"`
}

type UserHistory struct {
	Records []entity.ServiceRecord `json:"records"`
	Alerts  []UpcomingAlert        `json:"alerts"`
	Risk    RiskAssessment         `json:"risk"`
}

// ForUser returns the owner's service history with upcoming-service alerts
// (due inside 60 days) and a breakdown-risk estimate.
func (s *HistoryService) ForUser(userID uint, now time.Time) (*UserHistory, error) {
	records, err := s.RecordRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	resolved, err := s.TokenRepo.ListResolvedForUser(userID)
	if err != nil {
		return nil, err
	}

	alerts := []UpcomingAlert{}
	horizon := now.AddDate(0, 0, 60)
	for _, rec := range records {
		if rec.NextServiceDate == nil {
			continue
		}
		due := *rec.NextServiceDate
		if due.Before(now) || due.After(horizon) {
			continue
		}
		alerts = append(alerts, UpcomingAlert{
			RecordID: rec.ID,
			Service:  rec.Service,
			DueDate:  due,
			DaysLeft: int(due.Sub(now).Hours() / 24),
		})
	}

	return &UserHistory{
		Records: records,
		Alerts:  alerts,
		Risk:    assessRisk(records, len(resolved), now),
	}, nil
}

func (s *HistoryService) ForMechanic(mechanicID uint) ([]entity.ServiceRecord, error) {
	return s.RecordRepo.ListForMechanic(mechanicID)
}

// assessRisk scores how likely the owner is heading for another breakdown.
// No history at all reads as an unknown, which lands on Medium.
func assessRisk(records []entity.ServiceRecord, breakdownJobs int, now time.Time) RiskAssessment {
	if len(records) == 0 && breakdownJobs == 0 {
		return RiskAssessment{Score: 50, Level: RiskMedium}
	}

	score := 40
	if len(records) > 0 {
		latest := records[0].Date
		for _, rec := range records[1:] {
			if rec.Date.After(latest) {
				latest = rec.Date
			}
		}
		age := now.Sub(latest)
		switch {
		case age > 365*24*time.Hour:
			score += 40
		case age > 180*24*time.Hour:
			score += 25
		}
	}
	if breakdownJobs >= 2 {
		score += 20
	}

	level := RiskLow
	switch {
	case score >= 75:
		level = RiskHigh
	case score >= 50:
		level = RiskMedium
	}
	return RiskAssessment{Score: score, Level: level}
}
