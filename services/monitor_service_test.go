package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Siddhant-kochhar/goatfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFit struct {
	readings []models.VitalReading
	err      error
}

func (f *fakeFit) FetchReadings(ctx context.Context, user *models.User, window time.Duration) ([]models.VitalReading, error) {
	return f.readings, f.err
}

type fakeAnalyzer struct {
	text    string
	err     error
	enabled bool
	calls   int
}

func (a *fakeAnalyzer) Enabled() bool { return a.enabled }

func (a *fakeAnalyzer) Analyze(ctx context.Context, readings []models.VitalReading, alertCount int) (string, error) {
	a.calls++
	return a.text, a.err
}

type fakeSink struct {
	events []AlertEvent
}

func (s *fakeSink) Dispatch(ctx context.Context, user *models.User, contacts []models.EmergencyContact, ev AlertEvent) (*models.HealthAlert, error) {
	s.events = append(s.events, ev)
	return &models.HealthAlert{UserID: user.ID, VitalType: ev.Reading.Type, Severity: ev.Reading.Severity}, nil
}

func newTestMonitor(fit FitnessClient, ai HealthAnalyzer, sink AlertSink) *MonitorService {
	// nil db/cache/hub: classification and dispatch work without storage.
	return NewMonitorService(nil, fit, ai, sink, nil, nil, zap.NewNop(), time.Minute)
}

func reading(vitalType string, value float64, at time.Time) models.VitalReading {
	return models.VitalReading{
		Type:       vitalType,
		Value:      value,
		Unit:       models.UnitFor(vitalType),
		RecordedAt: at,
	}
}

func TestProcessNormalReadingsDispatchNothing(t *testing.T) {
	sink := &fakeSink{}
	m := newTestMonitor(nil, nil, sink)
	user := &models.User{FullName: "Test User"}
	now := time.Now()

	err := m.Process(context.Background(), user, []models.VitalReading{
		reading(models.VitalHeartRate, 72, now),
		reading(models.VitalHeartRate, 139, now.Add(time.Minute)),
		reading(models.VitalSteps, 5000, now),
	})

	require.NoError(t, err)
	assert.Empty(t, sink.events)
}

func TestProcessCriticalReadingDispatchesAlert(t *testing.T) {
	sink := &fakeSink{}
	m := newTestMonitor(nil, nil, sink)
	user := &models.User{FullName: "Test User"}

	err := m.Process(context.Background(), user, []models.VitalReading{
		reading(models.VitalHeartRate, 195, time.Now()),
	})

	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, models.VitalHeartRate, ev.Reading.Type)
	assert.Equal(t, models.SeverityEmergency, ev.Reading.Severity)
	assert.Equal(t, 190.0, ev.Threshold)
}

func TestProcessWarningReadingDoesNotAlert(t *testing.T) {
	sink := &fakeSink{}
	m := newTestMonitor(nil, nil, sink)

	err := m.Process(context.Background(), &models.User{}, []models.VitalReading{
		reading(models.VitalHeartRate, 150, time.Now()),
	})

	require.NoError(t, err)
	assert.Empty(t, sink.events)
}

func TestProcessAIFailureStillAlerts(t *testing.T) {
	sink := &fakeSink{}
	ai := &fakeAnalyzer{enabled: true, err: errors.New("gemini API error 500")}
	m := newTestMonitor(nil, ai, sink)

	err := m.Process(context.Background(), &models.User{}, []models.VitalReading{
		reading(models.VitalHeartRate, 200, time.Now()),
	})

	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	assert.Equal(t, 1, ai.calls)
	assert.Empty(t, sink.events[0].Commentary)
}

func TestProcessAICommentaryAttached(t *testing.T) {
	sink := &fakeSink{}
	ai := &fakeAnalyzer{enabled: true, text: "Heart rate is dangerously elevated."}
	m := newTestMonitor(nil, ai, sink)

	err := m.Process(context.Background(), &models.User{}, []models.VitalReading{
		reading(models.VitalHeartRate, 200, time.Now()),
	})

	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "Heart rate is dangerously elevated.", sink.events[0].Commentary)
}

func TestProcessDisabledAINeverCalled(t *testing.T) {
	sink := &fakeSink{}
	ai := &fakeAnalyzer{enabled: false}
	m := newTestMonitor(nil, ai, sink)

	err := m.Process(context.Background(), &models.User{}, []models.VitalReading{
		reading(models.VitalHeartRate, 200, time.Now()),
	})

	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	assert.Zero(t, ai.calls)
}

func TestSelectAlertEventsWorstPerType(t *testing.T) {
	now := time.Now()
	bands := DefaultBands()

	readings := []models.VitalReading{
		{Type: models.VitalHeartRate, Value: 150, Severity: models.SeverityWarning, RecordedAt: now},
		{Type: models.VitalHeartRate, Value: 185, Severity: models.SeverityCritical, RecordedAt: now.Add(time.Minute)},
		{Type: models.VitalHeartRate, Value: 195, Severity: models.SeverityEmergency, RecordedAt: now.Add(2 * time.Minute)},
		{Type: models.VitalBloodPressure, Value: 185, Severity: models.SeverityCritical, RecordedAt: now},
	}

	events := selectAlertEvents(readings, bands)
	require.Len(t, events, 2)

	byType := map[string]AlertEvent{}
	for _, ev := range events {
		byType[ev.Reading.Type] = ev
	}
	assert.Equal(t, 195.0, byType[models.VitalHeartRate].Reading.Value)
	assert.Equal(t, models.SeverityEmergency, byType[models.VitalHeartRate].Reading.Severity)
	assert.Equal(t, 185.0, byType[models.VitalBloodPressure].Reading.Value)
}

func TestSelectAlertEventsTieKeepsNewest(t *testing.T) {
	now := time.Now()
	readings := []models.VitalReading{
		{Type: models.VitalHeartRate, Value: 182, Severity: models.SeverityCritical, RecordedAt: now},
		{Type: models.VitalHeartRate, Value: 184, Severity: models.SeverityCritical, RecordedAt: now.Add(time.Minute)},
	}

	events := selectAlertEvents(readings, DefaultBands())
	require.Len(t, events, 1)
	assert.Equal(t, 184.0, events[0].Reading.Value)
}

func TestCheckUserFetchErrorPropagates(t *testing.T) {
	sink := &fakeSink{}
	fit := &fakeFit{err: errors.New("google fit API error 401")}
	m := newTestMonitor(fit, nil, sink)

	err := m.CheckUser(context.Background(), &models.User{})
	assert.Error(t, err)
	assert.Empty(t, sink.events)
}

func TestCheckUserNoReadingsIsNotAnError(t *testing.T) {
	sink := &fakeSink{}
	m := newTestMonitor(&fakeFit{}, nil, sink)

	err := m.CheckUser(context.Background(), &models.User{})
	assert.NoError(t, err)
	assert.Empty(t, sink.events)
}
