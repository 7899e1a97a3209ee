package models

import (
    "gorm.io/gorm"
)

// ThresholdSetting holds a user's override bands for one vital type.
// A zero bound means "use the built-in default for that vital".
type ThresholdSetting struct {
    gorm.Model
    UserID    uint   `gorm:"index;not null;uniqueIndex:idx_user_vital"`
    VitalType string `gorm:"size:32;not null;uniqueIndex:idx_user_vital"`

    WarningLow    float64
    WarningHigh   float64
    CriticalLow   float64
    CriticalHigh  float64
    EmergencyLow  float64
    EmergencyHigh float64
}
