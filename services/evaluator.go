package services

import (
	"errors"
	"math"

	"github.com/Siddhant-kochhar/goatfit/config"
	"github.com/Siddhant-kochhar/goatfit/models"

	"gorm.io/gorm"
)

// Band is the full set of alert bounds for one vital type. A zero bound
// means "unset": unset high bounds never match, unset low bounds never
// match.
type Band struct {
	WarningLow    float64
	WarningHigh   float64
	CriticalLow   float64
	CriticalHigh  float64
	EmergencyLow  float64
	EmergencyHigh float64
}

// DefaultBands returns the built-in bands. Only heart rate and systolic
// blood pressure alert out of the box; other vitals stay silent until the
// user configures bounds.
func DefaultBands() map[string]Band {
	return map[string]Band{
		models.VitalHeartRate: {
			WarningLow: 50, WarningHigh: 140,
			CriticalLow: 40, CriticalHigh: 180,
			EmergencyLow: 35, EmergencyHigh: 190,
		},
		models.VitalBloodPressure: {
			WarningLow: 90, WarningHigh: 140,
			CriticalLow: 70, CriticalHigh: 180,
			EmergencyLow: 60, EmergencyHigh: 200,
		},
	}
}

// Classify maps a value to a severity. Boundary values land on the more
// severe side (>= high, <= low).
func Classify(value float64, b Band) string {
	switch {
	case value >= high(b.EmergencyHigh) || value <= low(b.EmergencyLow):
		return models.SeverityEmergency
	case value >= high(b.CriticalHigh) || value <= low(b.CriticalLow):
		return models.SeverityCritical
	case value >= high(b.WarningHigh) || value <= low(b.WarningLow):
		return models.SeverityWarning
	}
	return models.SeverityNormal
}

// CrossedBound returns the specific bound a value breached, for the alert
// record. Falls back to the value itself when nothing matched.
func CrossedBound(value float64, b Band) float64 {
	switch Classify(value, b) {
	case models.SeverityEmergency:
		if value >= high(b.EmergencyHigh) {
			return b.EmergencyHigh
		}
		return b.EmergencyLow
	case models.SeverityCritical:
		if value >= high(b.CriticalHigh) {
			return b.CriticalHigh
		}
		return b.CriticalLow
	case models.SeverityWarning:
		if value >= high(b.WarningHigh) {
			return b.WarningHigh
		}
		return b.WarningLow
	}
	return value
}

func high(bound float64) float64 {
	if bound == 0 {
		return math.Inf(1)
	}
	return bound
}

func low(bound float64) float64 {
	if bound == 0 {
		return math.Inf(-1)
	}
	return bound
}

// BandsForUser merges the user's stored threshold overrides onto the
// defaults. A nil db (tests, dev tooling) yields the defaults.
func BandsForUser(db *gorm.DB, userID uint) map[string]Band {
	bands := DefaultBands()
	if db == nil {
		return bands
	}

	var settings []models.ThresholdSetting
	if err := db.Where("user_id = ?", userID).Find(&settings).Error; err != nil {
		return bands
	}
	for _, s := range settings {
		b := bands[s.VitalType]
		if s.WarningLow != 0 {
			b.WarningLow = s.WarningLow
		}
		if s.WarningHigh != 0 {
			b.WarningHigh = s.WarningHigh
		}
		if s.CriticalLow != 0 {
			b.CriticalLow = s.CriticalLow
		}
		if s.CriticalHigh != 0 {
			b.CriticalHigh = s.CriticalHigh
		}
		if s.EmergencyLow != 0 {
			b.EmergencyLow = s.EmergencyLow
		}
		if s.EmergencyHigh != 0 {
			b.EmergencyHigh = s.EmergencyHigh
		}
		bands[s.VitalType] = b
	}
	return bands
}

// UpsertThreshold stores a user's band overrides for one vital type.
func UpsertThreshold(userID uint, vitalType string, b Band) error {
	var setting models.ThresholdSetting
	err := config.DB.Where("user_id = ? AND vital_type = ?", userID, vitalType).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.ThresholdSetting{
			UserID:        userID,
			VitalType:     vitalType,
			WarningLow:    b.WarningLow,
			WarningHigh:   b.WarningHigh,
			CriticalLow:   b.CriticalLow,
			CriticalHigh:  b.CriticalHigh,
			EmergencyLow:  b.EmergencyLow,
			EmergencyHigh: b.EmergencyHigh,
		}
		return config.DB.Create(&setting).Error
	}
	if err != nil {
		return err
	}

	setting.WarningLow = b.WarningLow
	setting.WarningHigh = b.WarningHigh
	setting.CriticalLow = b.CriticalLow
	setting.CriticalHigh = b.CriticalHigh
	setting.EmergencyLow = b.EmergencyLow
	setting.EmergencyHigh = b.EmergencyHigh

	return config.DB.Save(&setting).Error
}
