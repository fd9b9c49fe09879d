package configs

import (
	"log"

	"github.com/FawazNazmo/MechLink/entity"
)

// Seed fair-price profiles used by the booking completion flow.
func SeedPricingProfiles() error {
	db := DB()

	profiles := []entity.PricingProfile{
		{ServiceType: "front_brake_pads", CarSize: "small", BaseParts: 80, BaseHours: 1.5, LabourMin: 50, LabourMax: 80, MarginPercent: 0.25},
		{ServiceType: "oil_service", CarSize: "small", BaseParts: 60, BaseHours: 1.0, LabourMin: 40, LabourMax: 70, MarginPercent: 0.25},
		{ServiceType: "diagnostic", CarSize: "any", BaseParts: 0, BaseHours: 0.5, LabourMin: 50, LabourMax: 80, MarginPercent: 0.25},
	}
	for _, p := range profiles {
		if err := db.FirstOrCreate(&entity.PricingProfile{}, entity.PricingProfile{ServiceType: p.ServiceType, CarSize: p.CarSize}).Error; err != nil {
			return err
		}
		if err := db.Model(&entity.PricingProfile{}).
			Where("service_type = ? AND car_size = ?", p.ServiceType, p.CarSize).
			Updates(map[string]any{
				"base_parts": p.BaseParts, "base_hours": p.BaseHours,
				"labour_min": p.LabourMin, "labour_max": p.LabourMax,
				"margin_percent": p.MarginPercent,
			}).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Pricing profiles seeded")
	return nil
}
