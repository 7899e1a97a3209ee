package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends alert emails over SMTP using an app-password authenticated
// sender (Gmail by default).
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewMailer() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}
	return &Mailer{
		host:     host,
		port:     port,
		from:     os.Getenv("ALERT_EMAIL"),
		password: os.Getenv("ALERT_EMAIL_PASSWORD"),
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if m.from == "" || m.password == "" {
		return fmt.Errorf("mailer not configured: ALERT_EMAIL / ALERT_EMAIL_PASSWORD missing")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// SendAlertEmail notifies one emergency contact about a threshold breach.
func (m *Mailer) SendAlertEmail(to, userName, vitalType string, value, threshold float64, severity string, at time.Time) error {
	subject := fmt.Sprintf("%s HEALTH ALERT: %s for %s", strings.ToUpper(severity), vitalLabel(vitalType), userName)

	var b strings.Builder
	fmt.Fprintf(&b, "This is an automated health alert from GoatFit.\n\n")
	fmt.Fprintf(&b, "Patient:   %s\n", userName)
	fmt.Fprintf(&b, "Vital:     %s\n", vitalLabel(vitalType))
	fmt.Fprintf(&b, "Reading:   %.1f (threshold %.1f)\n", value, threshold)
	fmt.Fprintf(&b, "Severity:  %s\n", strings.ToUpper(severity))
	fmt.Fprintf(&b, "Time:      %s\n\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Please check on them as soon as possible.\n")

	return m.send(to, subject, b.String())
}

// SendTestEmail verifies a contact's address from the dashboard.
func (m *Mailer) SendTestEmail(to, userName string) error {
	subject := fmt.Sprintf("GoatFit test alert for %s", userName)
	body := fmt.Sprintf(
		"You are listed as an emergency contact for %s on GoatFit.\n\n"+
			"This is a test message - no action is needed.\n", userName)
	return m.send(to, subject, body)
}

func vitalLabel(vitalType string) string {
	switch vitalType {
	case "heart_rate":
		return "Heart Rate"
	case "blood_pressure_systolic":
		return "Blood Pressure (systolic)"
	case "sleep_duration":
		return "Sleep Duration"
	case "steps":
		return "Steps"
	case "calories":
		return "Calories"
	}
	return vitalType
}
