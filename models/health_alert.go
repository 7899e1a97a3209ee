package models

import "time"

// HealthAlert records one qualifying threshold breach and who was told
// about it. ContactsNotified is a JSON array of the contact emails that
// were actually reached.
type HealthAlert struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index" json:"user_id"`
	VitalType        string    `gorm:"size:32" json:"vital_type"`
	Severity         string    `gorm:"size:16" json:"severity"`
	Value            float64   `json:"value"`
	Threshold        float64   `json:"threshold"`
	Message          string    `gorm:"type:text" json:"message"`
	AICommentary     string    `gorm:"type:text" json:"ai_commentary,omitempty"`
	ContactsNotified string    `gorm:"type:text" json:"contacts_notified"`
	Status           string    `gorm:"size:16" json:"status"` // "sent" | "failed"
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}
