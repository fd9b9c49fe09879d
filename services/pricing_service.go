package services

import (
	"github.com/FawazNazmo/MechLink/repository"
)

const (
	FairFlagUnknown      = "unknown"
	FairFlagLow          = "low"
	FairFlagFair         = "fair"
	FairFlagSlightlyHigh = "slightly_high"
	FairFlagHigh         = "high"
)

// FairRange is the expected cost band for a service.
type FairRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	SoftMax float64 `json:"softMax"`
}

type PricingService struct {
	Repo *repository.PricingRepository
}

func NewPricingService(repo *repository.PricingRepository) *PricingService {
	return &PricingService{Repo: repo}
}

// ComputeFairRange builds the band from the seeded profile; nil when no
// profile covers the service type.
func (s *PricingService) ComputeFairRange(serviceType, carSize string) (*FairRange, error) {
	p, err := s.Repo.FindProfile(serviceType, carSize)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	margin := p.MarginPercent
	if margin == 0 {
		margin = 0.25
	}
	min := p.BaseParts + p.BaseHours*p.LabourMin
	max := p.BaseParts + p.BaseHours*p.LabourMax
	return &FairRange{Min: min, Max: max, SoftMax: max * (1 + margin)}, nil
}

// ClassifyPrice flags a quoted cost against the fair band. Pure.
func ClassifyPrice(cost float64, fair *FairRange) string {
	if fair == nil || cost <= 0 {
		return FairFlagUnknown
	}
	switch {
	case cost < fair.Min*0.7:
		return FairFlagLow // suspiciously cheap
	case cost <= fair.Max*1.1:
		return FairFlagFair
	case cost <= fair.SoftMax:
		return FairFlagSlightlyHigh
	default:
		return FairFlagHigh
	}
}
