package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Siddhant-kochhar/goatfit/models"

	"gorm.io/gorm"
)

type VitalsService struct {
	db    *gorm.DB
	cache *VitalsCache
}

func NewVitalsService(db *gorm.DB, cache *VitalsCache) *VitalsService {
	return &VitalsService{db: db, cache: cache}
}

// Latest returns the newest reading per vital type, served from the cache
// when warm with a DB fallback.
func (s *VitalsService) Latest(ctx context.Context, userID uint) (map[string]models.VitalReading, error) {
	if cached, err := s.cache.Latest(ctx, userID); err == nil && len(cached) > 0 {
		return cached, nil
	}

	out := map[string]models.VitalReading{}
	for _, vitalType := range []string{
		models.VitalHeartRate, models.VitalSteps, models.VitalSleepDuration,
		models.VitalCalories, models.VitalBloodPressure,
	} {
		var r models.VitalReading
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND type = ?", userID, vitalType).
			Order("recorded_at DESC").
			First(&r).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[vitalType] = r
	}
	return out, nil
}

// History returns stored readings for a vital type, newest first.
func (s *VitalsService) History(ctx context.Context, userID uint, vitalType string, hours int) ([]models.VitalReading, error) {
	if hours <= 0 {
		hours = 24
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	q := s.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ?", userID, since)
	if vitalType != "" {
		q = q.Where("type = ?", vitalType)
	}

	var readings []models.VitalReading
	err := q.Order("recorded_at DESC").Find(&readings).Error
	return readings, err
}

// ---------- Weekly overview ----------

type DayVital struct {
	Average       float64 `json:"average"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Count         int     `json:"count"`
	WorstSeverity string  `json:"worst_severity"`
}

type WeeklyDay struct {
	Date   string              `json:"date"`
	Vitals map[string]DayVital `json:"vitals"`
}

type WeeklyOverview struct {
	WeekStart string      `json:"week_start"`
	Days      []WeeklyDay `json:"days"`
}

// Weekly buckets a user's readings into the 7 days starting at weekStart.
func (s *VitalsService) Weekly(ctx context.Context, userID uint, weekStart time.Time) (*WeeklyOverview, error) {
	from := dayStart(weekStart)
	to := from.AddDate(0, 0, 6)

	var rows []models.VitalReading
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at BETWEEN ? AND ?", userID, from, dayEnd(to)).
		Order("recorded_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	type acc struct {
		sum, min, max float64
		count         int
		worst         string
	}
	byDay := map[string]map[string]*acc{}
	for _, r := range rows {
		key := r.RecordedAt.Format("2006-01-02")
		if byDay[key] == nil {
			byDay[key] = map[string]*acc{}
		}
		a := byDay[key][r.Type]
		if a == nil {
			a = &acc{min: r.Value, max: r.Value, worst: models.SeverityNormal}
			byDay[key][r.Type] = a
		}
		a.sum += r.Value
		a.count++
		if r.Value < a.min {
			a.min = r.Value
		}
		if r.Value > a.max {
			a.max = r.Value
		}
		if models.SeverityRank(r.Severity) > models.SeverityRank(a.worst) {
			a.worst = r.Severity
		}
	}

	out := &WeeklyOverview{WeekStart: from.Format("2006-01-02")}
	for i := 0; i < 7; i++ {
		d := from.AddDate(0, 0, i)
		key := d.Format("2006-01-02")
		day := WeeklyDay{Date: key, Vitals: map[string]DayVital{}}
		for vitalType, a := range byDay[key] {
			day.Vitals[vitalType] = DayVital{
				Average:       round2(a.sum / float64(a.count)),
				Min:           a.min,
				Max:           a.max,
				Count:         a.count,
				WorstSeverity: a.worst,
			}
		}
		out.Days = append(out.Days, day)
	}
	return out, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
