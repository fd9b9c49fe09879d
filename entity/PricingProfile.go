package entity

import (
	"gorm.io/gorm"
)

// Static fair-price profile for a service type and car size.
// carSize "any" matches every size.
type PricingProfile struct {
	gorm.Model
	ServiceType string `gorm:"uniqueIndex:idx_pricing_key;not null" json:"serviceType"`
	CarSize     string `gorm:"uniqueIndex:idx_pricing_key;not null" json:"carSize"`

	BaseParts     float64 `json:"baseParts"`
	BaseHours     float64 `json:"baseHours"`
	LabourMin     float64 `json:"labourMin"`
	LabourMax     float64 `json:"labourMax"`
	MarginPercent float64 `json:"marginPercent"`
}
