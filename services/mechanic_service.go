// services/mechanic_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	geo "github.com/kellydunn/golang-geo"
	"gorm.io/gorm"
)

type MechanicService struct {
	UserRepo     *repository.UserRepository
	FeedbackRepo *repository.FeedbackRepository
	RecordRepo   *repository.ServiceRecordRepository
}

func NewMechanicService(
	userRepo *repository.UserRepository,
	feedbackRepo *repository.FeedbackRepository,
	recordRepo *repository.ServiceRecordRepository,
) *MechanicService {
	return &MechanicService{UserRepo: userRepo, FeedbackRepo: feedbackRepo, RecordRepo: recordRepo}
}

// ----- Profile: live location & weekly schedule -----

func (s *MechanicService) SaveLocation(mechanicID uint, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: lat/lng out of range", ErrValidation)
	}
	return s.UserRepo.Update(mechanicID, map[string]any{"lat": lat, "lng": lng})
}

// DaySchedule mirrors the shape the dashboard saves per weekday.
type DaySchedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
	On    bool   `json:"on"`
}

var weekdayKeys = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func (s *MechanicService) SaveSchedule(mechanicID uint, schedule map[string]DaySchedule) error {
	for key := range schedule {
		valid := false
		for _, k := range weekdayKeys {
			if key == k {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: unknown weekday %q", ErrValidation, key)
		}
	}
	raw, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	return s.UserRepo.Update(mechanicID, map[string]any{"schedule": string(raw)})
}

func (s *MechanicService) GetSchedule(mechanicID uint) (map[string]DaySchedule, error) {
	u, err := s.UserRepo.FindByID(mechanicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out := map[string]DaySchedule{}
	if u.Schedule != "" {
		if err := json.Unmarshal([]byte(u.Schedule), &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ----- Discovery -----

type MechanicListing struct {
	entity.User
	DistanceKm *float64 `json:"distanceKm,omitempty"`
	AvgRating  *float64 `json:"avgRating,omitempty"`
	Reviews    int64    `json:"reviews"`
}

// position prefers the garage pin, falling back to the live position.
func mechanicPoint(u *entity.User) *geo.Point {
	if u.GarageLat != nil && u.GarageLng != nil {
		return geo.NewPoint(*u.GarageLat, *u.GarageLng)
	}
	if u.Lat != nil && u.Lng != nil {
		return geo.NewPoint(*u.Lat, *u.Lng)
	}
	return nil
}

// Nearby lists mechanics within radiusKm of the caller, nearest first.
// When nobody has a usable position inside the radius the full directory is
// returned instead, so a sparse map never shows an empty screen.
func (s *MechanicService) Nearby(lat, lng, radiusKm float64) ([]MechanicListing, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: lat/lng out of range", ErrValidation)
	}
	if radiusKm <= 0 {
		radiusKm = 50
	}

	mechanics, err := s.UserRepo.ListMechanics()
	if err != nil {
		return nil, err
	}

	center := geo.NewPoint(lat, lng)
	within := make([]MechanicListing, 0, len(mechanics))
	for i := range mechanics {
		pt := mechanicPoint(&mechanics[i])
		if pt == nil {
			continue
		}
		d := center.GreatCircleDistance(pt)
		if d > radiusKm {
			continue
		}
		dist := d
		within = append(within, MechanicListing{User: mechanics[i], DistanceKm: &dist})
	}
	sort.Slice(within, func(i, j int) bool { return *within[i].DistanceKm < *within[j].DistanceKm })

	if len(within) == 0 {
		within = make([]MechanicListing, 0, len(mechanics))
		for i := range mechanics {
			within = append(within, MechanicListing{User: mechanics[i]})
		}
	}

	for i := range within {
		avg, count, err := s.FeedbackRepo.Summary(within[i].ID)
		if err != nil {
			return nil, err
		}
		within[i].AvgRating = avg
		within[i].Reviews = count
	}
	return within, nil
}

func (s *MechanicService) Search(q string) ([]entity.User, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.UserRepo.ListMechanics()
	}
	return s.UserRepo.SearchMechanics(q)
}

// ----- Scores -----

type IntegrityBreakdown struct {
	Score         int      `json:"score"`
	AvgRating     *float64 `json:"avgRating,omitempty"`
	Reviews       int64    `json:"reviews"`
	JobsDone      int      `json:"jobsDone"`
	OverpricedPct float64  `json:"overpricedPct"`
	ReturnPct     float64  `json:"returnPct"`
}

// IntegrityScore blends feedback with pricing and rework history. A mechanic
// with no history sits at the 60-point baseline plus whatever their rating
// contributes.
func (s *MechanicService) IntegrityScore(mechanicID uint) (*IntegrityBreakdown, error) {
	ok, err := s.UserRepo.IsMechanic(mechanicID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	avg, count, err := s.FeedbackRepo.Summary(mechanicID)
	if err != nil {
		return nil, err
	}
	records, err := s.RecordRepo.ListForMechanic(mechanicID)
	if err != nil {
		return nil, err
	}

	var highPct, returnPct float64
	if len(records) > 0 {
		high, returns := 0, 0
		for _, rec := range records {
			if rec.FairFlag == FairFlagHigh {
				high++
			}
			if rec.IsReturnVisit {
				returns++
			}
		}
		highPct = float64(high) / float64(len(records)) * 100
		returnPct = float64(returns) / float64(len(records)) * 100
	}

	rating := 0.0
	if avg != nil {
		rating = *avg
	}
	score := 60.0
	score += 25 * (rating / 5)
	score += 10 * (1 - math.Min(highPct/50, 1))
	score += 5 * (1 - math.Min(returnPct/40, 1))

	return &IntegrityBreakdown{
		Score:         int(math.Round(score)),
		AvgRating:     avg,
		Reviews:       count,
		JobsDone:      len(records),
		OverpricedPct: math.Round(highPct*10) / 10,
		ReturnPct:     math.Round(returnPct*10) / 10,
	}, nil
}

// MatchScore ranks a mechanic for a caller at (lat, lng) wanting serviceType.
// Response time has no tracked signal yet, so the neutral 30-minute default
// applies to everyone equally.
func (s *MechanicService) MatchScore(mechanicID uint, lat, lng float64, serviceType string) (int, error) {
	u, err := s.UserRepo.FindByID(mechanicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if u.Role != "mechanic" {
		return 0, ErrNotFound
	}

	avg, _, err := s.FeedbackRepo.Summary(mechanicID)
	if err != nil {
		return 0, err
	}
	rating := 0.0
	if avg != nil {
		rating = *avg
	}

	records, err := s.RecordRepo.ListForMechanic(mechanicID)
	if err != nil {
		return 0, err
	}
	similar := 0
	for _, rec := range records {
		if serviceType == "" || strings.EqualFold(rec.ServiceType, serviceType) {
			similar++
		}
	}

	distanceKm := 20.0 // worst-case when the mechanic has no position
	if pt := mechanicPoint(u); pt != nil {
		distanceKm = geo.NewPoint(lat, lng).GreatCircleDistance(pt)
	}

	return MechanicMatchScore(MatchInput{
		Rating:            rating,
		SimilarJobsCount:  similar,
		AvgResponseMinute: 30,
		DistanceKm:        distanceKm,
	}), nil
}
