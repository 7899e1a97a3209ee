package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Siddhant-kochhar/goatfit/metrics"
	"github.com/Siddhant-kochhar/goatfit/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertMailer is the outbound email side of alert dispatch. Satisfied by
// utils.Mailer; tests substitute a recorder.
type AlertMailer interface {
	SendAlertEmail(to, userName, vitalType string, value, threshold float64, severity string, at time.Time) error
}

// AlertEvent is one qualifying threshold breach: the worst critical or
// emergency reading for a vital type in a check cycle.
type AlertEvent struct {
	Reading    models.VitalReading
	Threshold  float64
	Commentary string
}

// AlertDispatcher turns a qualifying event into an email per enabled
// emergency contact, a persisted alert record, a websocket broadcast and a
// push notification. db, hub and push may be nil; the email path is the
// one channel that must be configured.
type AlertDispatcher struct {
	db     *gorm.DB
	hub    *RealtimeHub
	push   *PushService
	mailer AlertMailer
	logger *zap.Logger
}

func NewAlertDispatcher(db *gorm.DB, hub *RealtimeHub, push *PushService, mailer AlertMailer, logger *zap.Logger) *AlertDispatcher {
	return &AlertDispatcher{db: db, hub: hub, push: push, mailer: mailer, logger: logger}
}

func (d *AlertDispatcher) Dispatch(ctx context.Context, user *models.User, contacts []models.EmergencyContact, ev AlertEvent) (*models.HealthAlert, error) {
	r := ev.Reading
	message := fmt.Sprintf("%s reading of %.1f %s crossed the %s threshold (%.1f)",
		r.Type, r.Value, r.Unit, r.Severity, ev.Threshold)

	// One email per enabled contact. A failure for one contact must not
	// block the rest.
	var notified []string
	for _, contact := range contacts {
		if !contact.NotificationsEnabled {
			continue
		}
		err := d.mailer.SendAlertEmail(contact.Email, user.FullName, r.Type, r.Value, ev.Threshold, r.Severity, r.RecordedAt)
		if err != nil {
			metrics.AlertEmailFailures.Inc()
			d.logger.Error("alert email failed",
				zap.Uint("user_id", user.ID),
				zap.String("contact", contact.Email),
				zap.Error(err),
			)
			continue
		}
		notified = append(notified, contact.Email)
	}

	status := "failed"
	if len(notified) > 0 || len(contacts) == 0 {
		status = "sent"
	}
	notifiedJSON, _ := json.Marshal(notified)
	if notified == nil {
		notifiedJSON = []byte("[]")
	}

	alert := &models.HealthAlert{
		UserID:           user.ID,
		VitalType:        r.Type,
		Severity:         r.Severity,
		Value:            r.Value,
		Threshold:        ev.Threshold,
		Message:          message,
		AICommentary:     ev.Commentary,
		ContactsNotified: string(notifiedJSON),
		Status:           status,
	}
	if d.db != nil {
		if err := d.db.Create(alert).Error; err != nil {
			d.logger.Error("failed to persist alert", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	if d.hub != nil {
		d.hub.Broadcast(user.ID, "alert.created", alert)
	}
	if d.push != nil {
		d.push.PushToUser(user.ID, "Health alert", message, map[string]string{
			"severity": r.Severity,
			"vital":    r.Type,
		})
	}

	metrics.AlertsDispatched.WithLabelValues(r.Severity).Inc()
	d.logger.Warn("alert dispatched",
		zap.Uint("user_id", user.ID),
		zap.String("vital", r.Type),
		zap.String("severity", r.Severity),
		zap.Float64("value", r.Value),
		zap.Int("contacts_notified", len(notified)),
	)
	return alert, nil
}
