package services

import (
	"testing"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPrice(t *testing.T) {
	fair := &FairRange{Min: 155, Max: 200, SoftMax: 250}

	assert.Equal(t, FairFlagLow, ClassifyPrice(100, fair))           // < 0.7*min
	assert.Equal(t, FairFlagFair, ClassifyPrice(160, fair))
	assert.Equal(t, FairFlagFair, ClassifyPrice(220, fair))          // <= 1.1*max
	assert.Equal(t, FairFlagSlightlyHigh, ClassifyPrice(240, fair))
	assert.Equal(t, FairFlagHigh, ClassifyPrice(300, fair))

	assert.Equal(t, FairFlagUnknown, ClassifyPrice(100, nil))
	assert.Equal(t, FairFlagUnknown, ClassifyPrice(0, fair))
}

func TestComputeFairRange(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&entity.PricingProfile{
		ServiceType:   "front_brake_pads",
		CarSize:       "small",
		BaseParts:     80,
		BaseHours:     1.5,
		LabourMin:     50,
		LabourMax:     80,
		MarginPercent: 0.25,
	}).Error)

	svc := NewPricingService(repository.NewPricingRepository(db))

	fair, err := svc.ComputeFairRange("front_brake_pads", "small")
	require.NoError(t, err)
	require.NotNil(t, fair)
	assert.InDelta(t, 155, fair.Min, 0.001) // 80 + 1.5*50
	assert.InDelta(t, 200, fair.Max, 0.001) // 80 + 1.5*80
	assert.InDelta(t, 250, fair.SoftMax, 0.001)

	// unknown service yields no band
	none, err := svc.ComputeFairRange("gearbox_rebuild", "small")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestComputeFairRangeFallsBackToAnySize(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&entity.PricingProfile{
		ServiceType: "diagnostic",
		CarSize:     "any",
		BaseParts:   0,
		BaseHours:   0.5,
		LabourMin:   50,
		LabourMax:   80,
	}).Error)

	svc := NewPricingService(repository.NewPricingRepository(db))

	fair, err := svc.ComputeFairRange("diagnostic", "large")
	require.NoError(t, err)
	require.NotNil(t, fair)
	assert.InDelta(t, 25, fair.Min, 0.001)
}
