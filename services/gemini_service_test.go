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
)

func newGeminiServer(t *testing.T, status int, body string) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	return &GeminiService{
		apiKey:  "test-key",
		baseURL: srv.URL,
		model:   "gemini-1.5-flash",
		client:  srv.Client(),
	}
}

func geminiReadings() []models.VitalReading {
	return []models.VitalReading{
		{Type: models.VitalHeartRate, Value: 185, RecordedAt: time.Now().Add(-time.Minute)},
		{Type: models.VitalHeartRate, Value: 192, RecordedAt: time.Now()},
	}
}

func TestGeminiDisabledWithoutKey(t *testing.T) {
	svc := &GeminiService{}
	assert.False(t, svc.Enabled())

	var nilSvc *GeminiService
	assert.False(t, nilSvc.Enabled())
}

func TestGeminiAnalyzeReturnsCommentary(t *testing.T) {
	svc := newGeminiServer(t, http.StatusOK,
		`{"candidates": [{"content": {"parts": [{"text": "  Heart rate is elevated.\n"}]}}]}`)

	text, err := svc.Analyze(context.Background(), geminiReadings(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Heart rate is elevated.", text)
}

func TestGeminiAnalyzeAPIError(t *testing.T) {
	svc := newGeminiServer(t, http.StatusInternalServerError, `{"error": "overloaded"}`)

	_, err := svc.Analyze(context.Background(), geminiReadings(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGeminiAnalyzeEmptyCandidates(t *testing.T) {
	svc := newGeminiServer(t, http.StatusOK, `{"candidates": []}`)

	_, err := svc.Analyze(context.Background(), geminiReadings(), 1)
	assert.Error(t, err)
}

func TestGeminiPromptIncludesHeartRates(t *testing.T) {
	prompt := buildPrompt(geminiReadings(), 2)
	assert.Contains(t, prompt, "185, 192")
	assert.Contains(t, prompt, "Threshold alerts this cycle: 2")
}
