package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/radiushq/radius/internal/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// Message carries everything needed to compose a confirmation email for one
// registration.
type Message struct {
	ToEmail       string
	AttendeeName  string
	EventTitle    string
	EventDate     time.Time
	EventLocation *string
	EventSlug     string
	Status        string
}

type Mailer interface {
	SendConfirmation(ctx context.Context, msg Message) error
}

// ResendMailer sends transactional email through the Resend REST API. When no
// API key is configured it skips sending and reports success, so the
// registration flow works without live credentials.
type ResendMailer struct {
	apiKey    string
	fromEmail string
	appURL    string
	endpoint  string
	client    *http.Client
	log       zerolog.Logger
}

func NewResendMailer(apiKey, fromEmail, appURL string, log zerolog.Logger) *ResendMailer {
	if fromEmail == "" {
		fromEmail = "onboarding@resend.dev"
	}
	return &ResendMailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		appURL:    appURL,
		endpoint:  resendEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) SendConfirmation(ctx context.Context, msg Message) error {
	if m.apiKey == "" {
		m.log.Warn().Str("email", msg.ToEmail).Msg("no mail API key configured, skipping confirmation email")
		return nil
	}

	payload, err := json.Marshal(resendRequest{
		From:    fmt.Sprintf("Radius <%s>", m.fromEmail),
		To:      []string{msg.ToEmail},
		Subject: subjectFor(msg),
		HTML:    bodyFor(msg, m.appURL),
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, body)
	}

	m.log.Info().Str("email", msg.ToEmail).Str("status", msg.Status).Msg("confirmation email sent")
	return nil
}

func subjectFor(msg Message) string {
	if msg.Status == models.RegistrationStatusPending {
		return fmt.Sprintf("Registration Request Received: %s", msg.EventTitle)
	}
	return fmt.Sprintf("You're registered for %s!", msg.EventTitle)
}

func bodyFor(msg Message, appURL string) string {
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	eventURL := fmt.Sprintf("%s/events/%s", appURL, msg.EventSlug)
	formattedDate := msg.EventDate.Format("Monday, January 2, 2006 at 3:04 PM")

	intro := fmt.Sprintf("<p>You are officially registered for <strong>%s</strong>!</p>", msg.EventTitle)
	if msg.Status == models.RegistrationStatusPending {
		intro = fmt.Sprintf("<p>We've received your request to join <strong>%s</strong>. The host will review your registration and you'll receive another email once approved.</p>", msg.EventTitle)
	}

	location := ""
	if msg.EventLocation != nil && *msg.EventLocation != "" {
		location = fmt.Sprintf("<p><strong>Where:</strong> %s</p>", *msg.EventLocation)
	}

	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hi %s,</h2>
  %s
  <p><strong>When:</strong> %s</p>
  %s
  <p><a href="%s">View Event Details</a></p>
</div>`, msg.AttendeeName, intro, formattedDate, location, eventURL)
}
