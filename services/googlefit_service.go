package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Siddhant-kochhar/goatfit/models"

	"golang.org/x/oauth2"
)

// Google Fit aggregate data types, keyed by the vital they map to.
var fitDataTypes = map[string]string{
	models.VitalHeartRate: "com.google.heart_rate.bpm",
	models.VitalSteps:     "com.google.step_count.delta",
	models.VitalCalories:  "com.google.calories.expended",
	models.VitalBloodPressure: "com.google.blood_pressure",
	models.VitalSleepDuration: "com.google.sleep.segment",
}

type GoogleFitService struct {
	oauth   *oauth2.Config
	baseURL string
	client  *http.Client
}

func NewGoogleFitService() *GoogleFitService {
	return &GoogleFitService{
		oauth: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes: []string{
				"https://www.googleapis.com/auth/fitness.heart_rate.read",
				"https://www.googleapis.com/auth/fitness.activity.read",
				"https://www.googleapis.com/auth/fitness.sleep.read",
				"https://www.googleapis.com/auth/fitness.blood_pressure.read",
			},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
		baseURL: "https://www.googleapis.com/fitness/v1",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthURL builds the Google consent URL. The state parameter carries the
// caller's identity back through the callback.
func (s *GoogleFitService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the callback code for a token and returns it as JSON
// suitable for storing on the user record.
func (s *GoogleFitService) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google token exchange failed: %w", err)
	}
	raw, err := json.Marshal(tok)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type aggregateRequest struct {
	AggregateBy     []map[string]string `json:"aggregateBy"`
	BucketByTime    map[string]int64    `json:"bucketByTime"`
	StartTimeMillis int64               `json:"startTimeMillis"`
	EndTimeMillis   int64               `json:"endTimeMillis"`
}

type aggregateResponse struct {
	Bucket []struct {
		Dataset []struct {
			Point []struct {
				StartTimeNanos string `json:"startTimeNanos"`
				EndTimeNanos   string `json:"endTimeNanos"`
				DataTypeName   string `json:"dataTypeName"`
				Value          []struct {
					FpVal  float64 `json:"fpVal"`
					IntVal int64   `json:"intVal"`
				} `json:"value"`
			} `json:"point"`
		} `json:"dataset"`
	} `json:"bucket"`
}

// FetchReadings pulls the user's vitals for the trailing window in
// 1-minute buckets and returns them oldest first, unclassified.
func (s *GoogleFitService) FetchReadings(ctx context.Context, user *models.User, window time.Duration) ([]models.VitalReading, error) {
	if user.GoogleToken == "" {
		return nil, fmt.Errorf("user %d has no linked fitness account", user.ID)
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(user.GoogleToken), &tok); err != nil {
		return nil, fmt.Errorf("stored google token is invalid: %w", err)
	}

	end := time.Now()
	start := end.Add(-window)

	var aggregateBy []map[string]string
	for _, dataType := range fitDataTypes {
		aggregateBy = append(aggregateBy, map[string]string{"dataTypeName": dataType})
	}
	reqBody := aggregateRequest{
		AggregateBy:     aggregateBy,
		BucketByTime:    map[string]int64{"durationMillis": 60000},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   end.UnixMilli(),
	}
	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	u := s.baseURL + "/users/me/dataset:aggregate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, s.client),
		s.oauth.TokenSource(ctx, &tok),
	)
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Google Fit aggregate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Google Fit response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google fit API error %d: %s", resp.StatusCode, string(body))
	}

	var ar aggregateResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("failed to parse Google Fit JSON: %w", err)
	}

	return s.flatten(user.ID, ar), nil
}

func (s *GoogleFitService) flatten(userID uint, ar aggregateResponse) []models.VitalReading {
	vitalFor := make(map[string]string, len(fitDataTypes))
	for vital, dataType := range fitDataTypes {
		vitalFor[dataType] = vital
	}

	var readings []models.VitalReading
	var sleepNanos int64
	var sleepEnd time.Time

	for _, bucket := range ar.Bucket {
		for _, ds := range bucket.Dataset {
			for _, p := range ds.Point {
				vital, ok := vitalFor[p.DataTypeName]
				if !ok || len(p.Value) == 0 {
					continue
				}
				startNs, _ := strconv.ParseInt(p.StartTimeNanos, 10, 64)
				at := time.Unix(0, startNs)

				// Sleep segments are summed into a single duration reading.
				if vital == models.VitalSleepDuration {
					endNs, _ := strconv.ParseInt(p.EndTimeNanos, 10, 64)
					if endNs > startNs {
						sleepNanos += endNs - startNs
						sleepEnd = time.Unix(0, endNs)
					}
					continue
				}

				value := p.Value[0].FpVal
				if value == 0 {
					value = float64(p.Value[0].IntVal)
				}
				readings = append(readings, models.VitalReading{
					UserID:     userID,
					Type:       vital,
					Value:      value,
					Unit:       models.UnitFor(vital),
					RecordedAt: at,
				})
			}
		}
	}

	if sleepNanos > 0 {
		readings = append(readings, models.VitalReading{
			UserID:     userID,
			Type:       models.VitalSleepDuration,
			Value:      time.Duration(sleepNanos).Hours(),
			Unit:       models.UnitFor(models.VitalSleepDuration),
			RecordedAt: sleepEnd,
		})
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].RecordedAt.Before(readings[j].RecordedAt)
	})
	return readings
}
