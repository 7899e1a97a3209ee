package models

import "time"

// Vital types fetched from Google Fit.
const (
	VitalHeartRate     = "heart_rate"
	VitalSteps         = "steps"
	VitalSleepDuration = "sleep_duration"
	VitalCalories      = "calories"
	VitalBloodPressure = "blood_pressure_systolic"
)

// Severity of a classified reading, ordered from benign to worst.
const (
	SeverityNormal    = "normal"
	SeverityWarning   = "warning"
	SeverityCritical  = "critical"
	SeverityEmergency = "emergency"
)

type VitalReading struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Type       string    `gorm:"size:32;index" json:"type"`
	Value      float64   `json:"value"`
	Unit       string    `gorm:"size:16" json:"unit"`
	Severity   string    `gorm:"size:16" json:"severity"`
	RecordedAt time.Time `gorm:"index" json:"recorded_at"`
	CreatedAt  time.Time `json:"-"`
}

// UnitFor returns the display unit for a vital type.
func UnitFor(vitalType string) string {
	switch vitalType {
	case VitalHeartRate:
		return "BPM"
	case VitalSteps:
		return "steps"
	case VitalSleepDuration:
		return "hours"
	case VitalCalories:
		return "kcal"
	case VitalBloodPressure:
		return "mmHg"
	}
	return ""
}

// SeverityRank orders severities so the worst reading in a cycle can be
// picked with a plain comparison.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityEmergency:
		return 3
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	}
	return 0
}
