package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Siddhant-kochhar/goatfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newFitServer(t *testing.T, status int, body string) (*httptest.Server, *GoogleFitService) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/me/dataset:aggregate", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	svc := &GoogleFitService{
		oauth:   &oauth2.Config{},
		baseURL: srv.URL,
		client:  srv.Client(),
	}
	return srv, svc
}

func linkedUser() *models.User {
	// no expiry on the stored token keeps the token source static
	return &models.User{GoogleToken: `{"access_token":"test-token","token_type":"Bearer"}`}
}

func TestFetchReadingsParsesAggregateResponse(t *testing.T) {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	point := func(dataType string, at time.Time, valueField string) string {
		return fmt.Sprintf(`{
			"startTimeNanos": "%d",
			"endTimeNanos": "%d",
			"dataTypeName": %q,
			"value": [{%s}]
		}`, at.UnixNano(), at.Add(time.Minute).UnixNano(), dataType, valueField)
	}
	body := fmt.Sprintf(`{"bucket": [{"dataset": [{"point": [%s, %s, %s]}]}]}`,
		point("com.google.heart_rate.bpm", base.Add(time.Minute), `"fpVal": 72`),
		point("com.google.heart_rate.bpm", base, `"fpVal": 68`),
		point("com.google.step_count.delta", base, `"intVal": 30`),
	)
	_, svc := newFitServer(t, http.StatusOK, body)

	readings, err := svc.FetchReadings(context.Background(), linkedUser(), time.Hour)
	require.NoError(t, err)
	require.Len(t, readings, 3)

	// oldest first regardless of API ordering
	assert.Equal(t, 68.0, readings[0].Value)
	assert.Equal(t, models.VitalHeartRate, readings[0].Type)
	assert.Equal(t, "BPM", readings[0].Unit)
	assert.True(t, readings[0].RecordedAt.Equal(base))

	assert.Equal(t, models.VitalSteps, readings[1].Type)
	assert.Equal(t, 30.0, readings[1].Value)

	assert.Equal(t, 72.0, readings[2].Value)
}

func TestFetchReadingsSumsSleepSegments(t *testing.T) {
	base := time.Date(2026, 8, 29, 23, 0, 0, 0, time.UTC)
	segment := func(start time.Time, d time.Duration) string {
		return fmt.Sprintf(`{
			"startTimeNanos": "%d",
			"endTimeNanos": "%d",
			"dataTypeName": "com.google.sleep.segment",
			"value": [{"intVal": 2}]
		}`, start.UnixNano(), start.Add(d).UnixNano())
	}
	body := fmt.Sprintf(`{"bucket": [{"dataset": [{"point": [%s, %s]}]}]}`,
		segment(base, 30*time.Minute),
		segment(base.Add(time.Hour), 30*time.Minute),
	)
	_, svc := newFitServer(t, http.StatusOK, body)

	readings, err := svc.FetchReadings(context.Background(), linkedUser(), 8*time.Hour)
	require.NoError(t, err)
	require.Len(t, readings, 1)

	assert.Equal(t, models.VitalSleepDuration, readings[0].Type)
	assert.Equal(t, 1.0, readings[0].Value)
	assert.Equal(t, "hours", readings[0].Unit)
}

func TestFetchReadingsAPIError(t *testing.T) {
	_, svc := newFitServer(t, http.StatusUnauthorized, `{"error": {"code": 401}}`)

	_, err := svc.FetchReadings(context.Background(), linkedUser(), time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchReadingsRequiresLinkedAccount(t *testing.T) {
	svc := NewGoogleFitService()

	_, err := svc.FetchReadings(context.Background(), &models.User{}, time.Hour)
	assert.Error(t, err)

	_, err = svc.FetchReadings(context.Background(), &models.User{GoogleToken: "not-json"}, time.Hour)
	assert.Error(t, err)
}
