package models

import (
    "gorm.io/gorm"
)

type EmergencyContact struct {
    gorm.Model
    UserID               uint   `gorm:"index;not null" json:"user_id"`
    Name                 string `gorm:"not null" json:"name"`
    Email                string `gorm:"not null" json:"email"`
    Phone                string `json:"phone"`
    Relationship         string `json:"relationship"`
    NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`
}
