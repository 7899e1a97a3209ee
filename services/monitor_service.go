package services

import (
	"context"
	"time"

	"github.com/Siddhant-kochhar/goatfit/metrics"
	"github.com/Siddhant-kochhar/goatfit/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FitnessClient fetches vital readings for a linked user. Satisfied by
// GoogleFitService.
type FitnessClient interface {
	FetchReadings(ctx context.Context, user *models.User, window time.Duration) ([]models.VitalReading, error)
}

// HealthAnalyzer is the optional AI commentary hook. Satisfied by
// GeminiService. Errors from Analyze never fail a check cycle.
type HealthAnalyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, readings []models.VitalReading, alertCount int) (string, error)
}

// AlertSink receives qualifying events. Satisfied by AlertDispatcher.
type AlertSink interface {
	Dispatch(ctx context.Context, user *models.User, contacts []models.EmergencyContact, ev AlertEvent) (*models.HealthAlert, error)
}

// MonitorService runs the periodic fetch → classify → alert loop.
type MonitorService struct {
	db         *gorm.DB
	fit        FitnessClient
	ai         HealthAnalyzer
	dispatcher AlertSink
	cache      *VitalsCache
	hub        *RealtimeHub
	logger     *zap.Logger
	interval   time.Duration
}

func NewMonitorService(
	db *gorm.DB,
	fit FitnessClient,
	ai HealthAnalyzer,
	dispatcher AlertSink,
	cache *VitalsCache,
	hub *RealtimeHub,
	logger *zap.Logger,
	interval time.Duration,
) *MonitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &MonitorService{
		db:         db,
		fit:        fit,
		ai:         ai,
		dispatcher: dispatcher,
		cache:      cache,
		hub:        hub,
		logger:     logger,
		interval:   interval,
	}
}

// Run drives the monitoring loop until the context is cancelled.
func (m *MonitorService) Run(ctx context.Context) {
	m.logger.Info("health monitor started", zap.Duration("interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("health monitor stopped")
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *MonitorService) tick(ctx context.Context) {
	if m.db == nil {
		return
	}
	var users []models.User
	if err := m.db.Where("monitoring_enabled = ? AND fitness_linked = ?", true, true).Find(&users).Error; err != nil {
		m.logger.Error("failed to list monitored users", zap.Error(err))
		return
	}

	now := time.Now()
	for i := range users {
		user := &users[i]

		// Users can slow their own cadence below the global tick.
		if user.LastHealthCheck != nil && user.CheckIntervalSec > 0 {
			due := user.LastHealthCheck.Add(time.Duration(user.CheckIntervalSec) * time.Second)
			if now.Before(due) {
				continue
			}
		}

		if err := m.CheckUser(ctx, user); err != nil {
			m.logger.Error("health check failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}
}

// CheckUser runs one complete check cycle for a user: fetch the trailing
// hour of readings and feed them through classification and dispatch.
func (m *MonitorService) CheckUser(ctx context.Context, user *models.User) error {
	start := time.Now()
	defer func() { metrics.CheckDuration.Observe(time.Since(start).Seconds()) }()
	metrics.ChecksTotal.Inc()

	readings, err := m.fit.FetchReadings(ctx, user, time.Hour)
	if err != nil {
		metrics.FetchFailures.Inc()
		return err
	}
	m.touchLastCheck(user)
	if len(readings) == 0 {
		m.logger.Debug("no new vital data", zap.Uint("user_id", user.ID))
		return nil
	}
	metrics.ReadingsFetched.Add(float64(len(readings)))

	return m.Process(ctx, user, readings)
}

// Process classifies readings against the user's bands, persists and
// caches them, and dispatches alerts for critical/emergency breaches.
// Also the entry point for the dev simulation route.
func (m *MonitorService) Process(ctx context.Context, user *models.User, readings []models.VitalReading) error {
	bands := BandsForUser(m.db, user.ID)
	for i := range readings {
		readings[i].UserID = user.ID
		readings[i].Severity = Classify(readings[i].Value, bands[readings[i].Type])
	}

	if m.db != nil {
		if err := m.db.Create(&readings).Error; err != nil {
			m.logger.Error("failed to persist readings", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}
	if err := m.cache.CacheLatest(ctx, user.ID, readings); err != nil {
		m.logger.Warn("vitals cache write failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	if m.hub != nil {
		m.hub.Broadcast(user.ID, "vitals.updated", readings)
	}

	if trend := heartRateTrend(readings); trend.Status == "analyzed" {
		m.logger.Info("heart rate trend",
			zap.Uint("user_id", user.ID),
			zap.String("trend", trend.Trend),
			zap.String("risk", trend.RiskLevel),
			zap.Float64("recent_avg", trend.RecentAverage),
		)
	}

	events := selectAlertEvents(readings, bands)
	if len(events) == 0 {
		return nil
	}
	m.logger.Warn("critical vitals detected", zap.Uint("user_id", user.ID), zap.Int("events", len(events)))

	// AI commentary is best-effort: a failure or missing key degrades to
	// threshold-only alerts.
	commentary := ""
	if m.ai != nil && m.ai.Enabled() {
		text, err := m.ai.Analyze(ctx, readings, len(events))
		if err != nil {
			metrics.AIFailures.Inc()
			m.logger.Warn("AI analysis failed, continuing without it", zap.Uint("user_id", user.ID), zap.Error(err))
		} else {
			commentary = text
		}
	}

	contacts := m.contactsFor(user.ID)
	for _, ev := range events {
		if !m.cache.AcquireAlertCooldown(ctx, user.ID, ev.Reading.Type, AlertCooldown) {
			m.logger.Info("alert suppressed by cooldown",
				zap.Uint("user_id", user.ID),
				zap.String("vital", ev.Reading.Type),
			)
			continue
		}
		ev.Commentary = commentary
		if _, err := m.dispatcher.Dispatch(ctx, user, contacts, ev); err != nil {
			m.logger.Error("alert dispatch failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

// selectAlertEvents keeps the worst critical-or-emergency reading per
// vital type so one cycle produces at most one alert per vital.
func selectAlertEvents(readings []models.VitalReading, bands map[string]Band) []AlertEvent {
	worst := map[string]models.VitalReading{}
	for _, r := range readings {
		if models.SeverityRank(r.Severity) < models.SeverityRank(models.SeverityCritical) {
			continue
		}
		cur, ok := worst[r.Type]
		if !ok || models.SeverityRank(r.Severity) > models.SeverityRank(cur.Severity) ||
			(models.SeverityRank(r.Severity) == models.SeverityRank(cur.Severity) && r.RecordedAt.After(cur.RecordedAt)) {
			worst[r.Type] = r
		}
	}

	events := make([]AlertEvent, 0, len(worst))
	for vitalType, r := range worst {
		events = append(events, AlertEvent{
			Reading:   r,
			Threshold: CrossedBound(r.Value, bands[vitalType]),
		})
	}
	return events
}

func heartRateTrend(readings []models.VitalReading) TrendAnalysis {
	var hr []models.VitalReading
	for _, r := range readings {
		if r.Type == models.VitalHeartRate {
			hr = append(hr, r)
		}
	}
	return AnalyzeHeartRateTrend(hr)
}

func (m *MonitorService) contactsFor(userID uint) []models.EmergencyContact {
	if m.db == nil {
		return nil
	}
	var contacts []models.EmergencyContact
	if err := m.db.Where("user_id = ?", userID).Find(&contacts).Error; err != nil {
		m.logger.Error("failed to load emergency contacts", zap.Uint("user_id", userID), zap.Error(err))
		return nil
	}
	return contacts
}

func (m *MonitorService) touchLastCheck(user *models.User) {
	now := time.Now()
	user.LastHealthCheck = &now
	if m.db != nil {
		_ = m.db.Model(&models.User{}).Where("id = ?", user.ID).Update("last_health_check", now).Error
	}
}
