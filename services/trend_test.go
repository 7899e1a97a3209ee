package services

import (
	"testing"
	"time"

	"github.com/Siddhant-kochhar/goatfit/models"

	"github.com/stretchr/testify/assert"
)

func hrReadings(values ...float64) []models.VitalReading {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	out := make([]models.VitalReading, len(values))
	for i, v := range values {
		out[i] = models.VitalReading{
			Type:       models.VitalHeartRate,
			Value:      v,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestTrendInsufficientData(t *testing.T) {
	got := AnalyzeHeartRateTrend(hrReadings(70, 72))
	assert.Equal(t, "insufficient_data", got.Status)
	assert.Equal(t, "unknown", got.Trend)
}

func TestTrendIncreasing(t *testing.T) {
	got := AnalyzeHeartRateTrend(hrReadings(60, 60, 60, 70, 70, 70))

	assert.Equal(t, "analyzed", got.Status)
	assert.Equal(t, "increasing", got.Trend)
	assert.Equal(t, 70.0, got.RecentAverage)
	assert.Equal(t, 60.0, got.EarlierAverage)
	assert.Equal(t, "moderate", got.RiskLevel) // increasing trend alone is moderate
}

func TestTrendDecreasing(t *testing.T) {
	got := AnalyzeHeartRateTrend(hrReadings(90, 90, 90, 80, 80, 80))
	assert.Equal(t, "decreasing", got.Trend)
	assert.Equal(t, "low", got.RiskLevel)
}

func TestTrendStableWithinBand(t *testing.T) {
	// a 4 BPM shift stays inside the 5 BPM stability band
	got := AnalyzeHeartRateTrend(hrReadings(70, 70, 70, 74, 74, 74))
	assert.Equal(t, "stable", got.Trend)
}

func TestTrendThreeReadingsComparesAgainstItself(t *testing.T) {
	got := AnalyzeHeartRateTrend(hrReadings(100, 110, 120))

	assert.Equal(t, "analyzed", got.Status)
	assert.Equal(t, "stable", got.Trend)
	assert.Equal(t, got.RecentAverage, got.EarlierAverage)
	assert.Equal(t, 120.0, got.Highest)
	assert.Equal(t, 100.0, got.Lowest)
	assert.Equal(t, 20.0, got.Variance)
}

func TestTrendHighRisk(t *testing.T) {
	got := AnalyzeHeartRateTrend(hrReadings(165, 170, 168))
	assert.Equal(t, "high", got.RiskLevel)

	// a single reading above 180 in the last three also flags high
	got = AnalyzeHeartRateTrend(hrReadings(90, 90, 90, 90, 90, 185))
	assert.Equal(t, "high", got.RiskLevel)
}
