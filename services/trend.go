package services

import (
	"math"

	"github.com/Siddhant-kochhar/goatfit/models"
)

type TrendAnalysis struct {
	Status         string  `json:"status"` // "analyzed" | "insufficient_data"
	Trend          string  `json:"trend"`  // "increasing" | "decreasing" | "stable" | "unknown"
	RecentAverage  float64 `json:"recent_average,omitempty"`
	EarlierAverage float64 `json:"earlier_average,omitempty"`
	Highest        float64 `json:"highest,omitempty"`
	Lowest         float64 `json:"lowest,omitempty"`
	Variance       float64 `json:"variance,omitempty"`
	RiskLevel      string  `json:"risk_level,omitempty"` // "high" | "moderate" | "low"
}

// AnalyzeHeartRateTrend compares the average of the newest three readings
// against the three before them, with a 5 BPM stability band. Readings are
// expected oldest first.
func AnalyzeHeartRateTrend(readings []models.VitalReading) TrendAnalysis {
	if len(readings) < 3 {
		return TrendAnalysis{Status: "insufficient_data", Trend: "unknown"}
	}

	recent := avgOf(readings[len(readings)-3:])
	earlier := recent
	if len(readings) >= 6 {
		earlier = avgOf(readings[len(readings)-6 : len(readings)-3])
	}

	trend := "stable"
	if recent > earlier+5 {
		trend = "increasing"
	} else if recent < earlier-5 {
		trend = "decreasing"
	}

	highest, lowest := readings[0].Value, readings[0].Value
	for _, r := range readings {
		if r.Value > highest {
			highest = r.Value
		}
		if r.Value < lowest {
			lowest = r.Value
		}
	}

	risk := "low"
	switch {
	case recent > 160 || anyAbove(readings[len(readings)-3:], 180):
		risk = "high"
	case recent > 120 || trend == "increasing":
		risk = "moderate"
	}

	return TrendAnalysis{
		Status:         "analyzed",
		Trend:          trend,
		RecentAverage:  round1(recent),
		EarlierAverage: round1(earlier),
		Highest:        highest,
		Lowest:         lowest,
		Variance:       round1(highest - lowest),
		RiskLevel:      risk,
	}
}

func avgOf(readings []models.VitalReading) float64 {
	var sum float64
	for _, r := range readings {
		sum += r.Value
	}
	return sum / float64(len(readings))
}

func anyAbove(readings []models.VitalReading, limit float64) bool {
	for _, r := range readings {
		if r.Value > limit {
			return true
		}
	}
	return false
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
