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

type recordingMailer struct {
	sent    []string
	failFor map[string]bool
}

func (m *recordingMailer) SendAlertEmail(to, userName, vitalType string, value, threshold float64, severity string, at time.Time) error {
	if m.failFor[to] {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, to)
	return nil
}

func testEvent() AlertEvent {
	return AlertEvent{
		Reading: models.VitalReading{
			Type:       models.VitalHeartRate,
			Value:      195,
			Unit:       "BPM",
			Severity:   models.SeverityEmergency,
			RecordedAt: time.Now(),
		},
		Threshold: 190,
	}
}

func contact(email string, enabled bool) models.EmergencyContact {
	return models.EmergencyContact{Name: "Contact", Email: email, NotificationsEnabled: enabled}
}

func TestDispatchEmailsEachEnabledContactOnce(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewAlertDispatcher(nil, nil, nil, mailer, zap.NewNop())
	user := &models.User{FullName: "Test User"}

	contacts := []models.EmergencyContact{
		contact("a@example.com", true),
		contact("b@example.com", true),
		contact("muted@example.com", false),
	}

	alert, err := d.Dispatch(context.Background(), user, contacts, testEvent())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, mailer.sent)
	assert.Equal(t, "sent", alert.Status)
	assert.Contains(t, alert.ContactsNotified, "a@example.com")
	assert.Contains(t, alert.ContactsNotified, "b@example.com")
	assert.NotContains(t, alert.ContactsNotified, "muted@example.com")
}

func TestDispatchContinuesPastMailFailure(t *testing.T) {
	mailer := &recordingMailer{failFor: map[string]bool{"a@example.com": true}}
	d := NewAlertDispatcher(nil, nil, nil, mailer, zap.NewNop())

	contacts := []models.EmergencyContact{
		contact("a@example.com", true),
		contact("b@example.com", true),
	}

	alert, err := d.Dispatch(context.Background(), &models.User{}, contacts, testEvent())
	require.NoError(t, err)

	assert.Equal(t, []string{"b@example.com"}, mailer.sent)
	assert.Equal(t, "sent", alert.Status)
}

func TestDispatchAllMailFailuresMarkAlertFailed(t *testing.T) {
	mailer := &recordingMailer{failFor: map[string]bool{"a@example.com": true}}
	d := NewAlertDispatcher(nil, nil, nil, mailer, zap.NewNop())

	alert, err := d.Dispatch(context.Background(), &models.User{},
		[]models.EmergencyContact{contact("a@example.com", true)}, testEvent())
	require.NoError(t, err)

	assert.Empty(t, mailer.sent)
	assert.Equal(t, "failed", alert.Status)
	assert.Equal(t, "[]", alert.ContactsNotified)
}

func TestDispatchWithoutContactsStillRecordsAlert(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewAlertDispatcher(nil, nil, nil, mailer, zap.NewNop())

	alert, err := d.Dispatch(context.Background(), &models.User{}, nil, testEvent())
	require.NoError(t, err)

	assert.Empty(t, mailer.sent)
	assert.Equal(t, "sent", alert.Status)
	assert.Equal(t, models.VitalHeartRate, alert.VitalType)
	assert.Equal(t, models.SeverityEmergency, alert.Severity)
	assert.Equal(t, 190.0, alert.Threshold)
}

func TestDispatchCarriesCommentary(t *testing.T) {
	d := NewAlertDispatcher(nil, nil, nil, &recordingMailer{}, zap.NewNop())

	ev := testEvent()
	ev.Commentary = "Sustained tachycardia, seek care."
	alert, err := d.Dispatch(context.Background(), &models.User{}, nil, ev)
	require.NoError(t, err)

	assert.Equal(t, "Sustained tachycardia, seek care.", alert.AICommentary)
}
