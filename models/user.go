package models

import (
    "time"

    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Email    string `gorm:"uniqueIndex;not null"`
    Password string `gorm:"not null"`
    FullName string

    // Google Fit link. GoogleToken holds the oauth2 token JSON as returned
    // by the callback exchange; empty until the account is linked.
    GoogleToken   string `gorm:"type:text"`
    FitnessLinked bool

    MonitoringEnabled bool `gorm:"default:true"`
    CheckIntervalSec  int  `gorm:"default:60"`
    LastHealthCheck   *time.Time
}
