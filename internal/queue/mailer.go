package queue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Mailer delivers one rendered message to one recipient. The
// consumer owns retry policy; implementations just report failure.
type Mailer interface {
	Send(to, subject, body string) error
}

const sendgridURL = "https://api.sendgrid.com/v3/mail/send"

// SendgridMailer sends mail through the SendGrid v3 API.
type SendgridMailer struct {
	APIKey string
	From   string
	Client *http.Client
}

func NewSendgridMailer(apiKey, from string) *SendgridMailer {
	return &SendgridMailer{
		APIKey: apiKey,
		From:   from,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a single plain-text mail. SendGrid answers 202 on
// acceptance; anything else is reported as an error.
func (m *SendgridMailer) Send(to, subject, body string) error {
	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": to}}},
		},
		"from":    map[string]string{"email": m.From},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": body},
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, sendgridURL, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// LogMailer appends rendered mail to logs/notify.log instead of
// sending it. Used when no SendGrid key is configured, so local
// setups can see what would have gone out.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "notify.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] to=%s | subject=%q | %q\n",
		time.Now().UTC().Format(time.RFC3339), to, subject, body)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	log.Printf("notify-consumer: logged mail for %s (no mail provider configured)", to)
	return nil
}
