// Package notify sends availability reminder SMS messages.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gatherly/internal/config"
	"gatherly/internal/middleware"
	"gatherly/internal/models"
)

// SMSSender delivers one SMS message.
type SMSSender interface {
	Send(ctx context.Context, toPhone, body string) error
}

// TwilioSender posts messages to the Twilio REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	fromNumber string
	client     *http.Client
}

// NewTwilioSender returns an SMSSender backed by Twilio.
func NewTwilioSender(cfg *config.Config) *TwilioSender {
	return &TwilioSender{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		fromNumber: cfg.TwilioFromNumber,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TwilioSender) Send(ctx context.Context, toPhone, body string) error {
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	form := url.Values{}
	form.Set("To", toPhone)
	form.Set("From", s.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return models.NewExternalServiceError("SMS", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.NewExternalServiceError("SMS", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.NewExternalServiceError("SMS", fmt.Errorf("twilio returned %d: %s", resp.StatusCode, detail))
	}
	return nil
}

// LogSender logs messages instead of delivering them. Used when Twilio
// credentials are not configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, toPhone, body string) error {
	middleware.Logger.InfoContext(ctx, "sms sender not configured, logging message",
		"to", toPhone,
		"body", body,
	)
	return nil
}
