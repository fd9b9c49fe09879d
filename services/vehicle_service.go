// services/vehicle_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"gorm.io/gorm"
)

type VehicleService struct {
	Repo       *repository.VehicleRepository
	RecordRepo *repository.ServiceRecordRepository
}

func NewVehicleService(repo *repository.VehicleRepository, recordRepo *repository.ServiceRecordRepository) *VehicleService {
	return &VehicleService{Repo: repo, RecordRepo: recordRepo}
}

type VehicleInput struct {
	Make             string
	Model            string
	Year             int
	Mileage          int
	LastServiceDate  *time.Time
	MotDueDate       *time.Time
	InsuranceDueDate *time.Time
	TaxDueDate       *time.Time
}

func (s *VehicleService) Create(userID uint, in VehicleInput) (*entity.Vehicle, error) {
	if in.Make == "" || in.Model == "" || in.Year == 0 {
		return nil, fmt.Errorf("%w: make, model and year are required", ErrValidation)
	}
	v := &entity.Vehicle{
		UserID:           userID,
		Make:             in.Make,
		VModel:           in.Model,
		Year:             in.Year,
		Mileage:          in.Mileage,
		LastServiceDate:  in.LastServiceDate,
		MotDueDate:       in.MotDueDate,
		InsuranceDueDate: in.InsuranceDueDate,
		TaxDueDate:       in.TaxDueDate,
		HealthScore:      100,
	}
	if err := s.Repo.Create(v); err != nil {
		return nil, err
	}
	s.refreshHealth(v, time.Now())
	return v, nil
}

func (s *VehicleService) List(userID uint) ([]entity.Vehicle, error) {
	vehicles, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range vehicles {
		s.refreshHealth(&vehicles[i], now)
	}
	return vehicles, nil
}

func (s *VehicleService) Get(userID, vehicleID uint) (*entity.Vehicle, error) {
	v, err := s.Repo.GetForUser(vehicleID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.refreshHealth(v, time.Now())
	return v, nil
}

func (s *VehicleService) Update(userID, vehicleID uint, in VehicleInput) (*entity.Vehicle, error) {
	if _, err := s.Get(userID, vehicleID); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if in.Make != "" {
		updates["make"] = in.Make
	}
	if in.Model != "" {
		updates["vehicle_model"] = in.Model
	}
	if in.Year != 0 {
		updates["year"] = in.Year
	}
	if in.Mileage != 0 {
		updates["mileage"] = in.Mileage
	}
	if in.LastServiceDate != nil {
		updates["last_service_date"] = in.LastServiceDate
	}
	if in.MotDueDate != nil {
		updates["mot_due_date"] = in.MotDueDate
	}
	if in.InsuranceDueDate != nil {
		updates["insurance_due_date"] = in.InsuranceDueDate
	}
	if in.TaxDueDate != nil {
		updates["tax_due_date"] = in.TaxDueDate
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(vehicleID, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(userID, vehicleID)
}

// HealthReport bundles the score with what the owner should do about it.
type HealthReport struct {
	Vehicle         *entity.Vehicle `json:"vehicle"`
	Score           int             `json:"score"`
	Recommendations []string        `json:"recommendations"`
}

func (s *VehicleService) Health(userID, vehicleID uint) (*HealthReport, error) {
	v, err := s.Get(userID, vehicleID)
	if err != nil {
		return nil, err
	}
	return &HealthReport{
		Vehicle:         v,
		Score:           v.HealthScore,
		Recommendations: HealthRecommendations(v, v.HealthScore),
	}, nil
}

// refreshHealth recomputes the score from the owner's recent service history
// and persists it when it moved.
func (s *VehicleService) refreshHealth(v *entity.Vehicle, now time.Time) {
	recent, err := s.RecordRepo.RecentForVehicleOwner(v.UserID, 20)
	if err != nil {
		return
	}
	score := VehicleHealthScore(v, recent, now)
	if score != v.HealthScore {
		_ = s.Repo.Update(v.ID, map[string]any{"health_score": score})
		v.HealthScore = score
	}
}
