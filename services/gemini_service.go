package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Siddhant-kochhar/goatfit/models"
)

// GeminiService produces optional natural-language commentary on a cycle's
// readings. It is best-effort everywhere: a missing key disables it and
// callers ignore its errors.
type GeminiService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: "https://generativelanguage.googleapis.com",
		model:   "gemini-1.5-flash",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *GeminiService) Enabled() bool {
	return s != nil && s.apiKey != ""
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Analyze asks Gemini for a short health commentary over the readings.
func (s *GeminiService) Analyze(ctx context.Context, readings []models.VitalReading, alertCount int) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("gemini not configured")
	}
	if len(readings) == 0 {
		return "", fmt.Errorf("no readings to analyze")
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildPrompt(readings, alertCount)}}},
		},
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text), nil
}

func buildPrompt(readings []models.VitalReading, alertCount int) string {
	var heartRates []string
	for _, r := range readings {
		if r.Type == models.VitalHeartRate {
			heartRates = append(heartRates, fmt.Sprintf("%.0f", r.Value))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a health monitoring assistant. Analyze this patient's recent vital signs.\n\n")
	fmt.Fprintf(&b, "Readings: %d over %s to %s\n",
		len(readings),
		readings[0].RecordedAt.Format(time.RFC3339),
		readings[len(readings)-1].RecordedAt.Format(time.RFC3339))
	if len(heartRates) > 0 {
		fmt.Fprintf(&b, "Heart rates (BPM): %s\n", strings.Join(heartRates, ", "))
	}
	fmt.Fprintf(&b, "Threshold alerts this cycle: %d\n\n", alertCount)
	fmt.Fprintf(&b, "Give a two-sentence plain-language assessment of the overall state and any immediate concern.")
	return b.String()
}
