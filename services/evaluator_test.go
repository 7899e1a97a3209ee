package services

import (
	"testing"

	"github.com/Siddhant-kochhar/goatfit/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHeartRateBands(t *testing.T) {
	band := DefaultBands()[models.VitalHeartRate]

	cases := []struct {
		value    float64
		expected string
	}{
		{72, models.SeverityNormal},
		{139, models.SeverityNormal},
		{140, models.SeverityWarning}, // boundary lands on the severe side
		{179, models.SeverityWarning},
		{180, models.SeverityCritical},
		{189, models.SeverityCritical},
		{190, models.SeverityEmergency},
		{250, models.SeverityEmergency},
		{51, models.SeverityNormal},
		{50, models.SeverityWarning},
		{41, models.SeverityWarning},
		{40, models.SeverityCritical},
		{36, models.SeverityCritical},
		{35, models.SeverityEmergency},
		{20, models.SeverityEmergency},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, Classify(tc.value, band), "value %.0f", tc.value)
	}
}

func TestClassifyUnsetBandNeverAlerts(t *testing.T) {
	// Vitals without configured bounds (steps, calories, ...) stay normal
	// no matter how extreme the value.
	var empty Band
	assert.Equal(t, models.SeverityNormal, Classify(1e6, empty))
	assert.Equal(t, models.SeverityNormal, Classify(-1e6, empty))
	assert.Equal(t, models.SeverityNormal, Classify(0, empty))
}

func TestClassifyPartialBand(t *testing.T) {
	// Only a warning-high configured: everything below it is normal, the
	// low side never fires.
	b := Band{WarningHigh: 10000}
	assert.Equal(t, models.SeverityNormal, Classify(1, b))
	assert.Equal(t, models.SeverityWarning, Classify(10000, b))
}

func TestCrossedBound(t *testing.T) {
	band := DefaultBands()[models.VitalHeartRate]

	assert.Equal(t, 190.0, CrossedBound(195, band))
	assert.Equal(t, 180.0, CrossedBound(183, band))
	assert.Equal(t, 140.0, CrossedBound(150, band))
	assert.Equal(t, 50.0, CrossedBound(45, band))
	assert.Equal(t, 40.0, CrossedBound(38, band))
	assert.Equal(t, 35.0, CrossedBound(30, band))
	// normal readings fall back to the value itself
	assert.Equal(t, 72.0, CrossedBound(72, band))
}

func TestBandsForUserWithoutDB(t *testing.T) {
	bands := BandsForUser(nil, 1)

	assert.Contains(t, bands, models.VitalHeartRate)
	assert.Contains(t, bands, models.VitalBloodPressure)
	assert.Equal(t, 190.0, bands[models.VitalHeartRate].EmergencyHigh)
	assert.Equal(t, 200.0, bands[models.VitalBloodPressure].EmergencyHigh)
	// no default bands for activity vitals
	assert.NotContains(t, bands, models.VitalSteps)
}
