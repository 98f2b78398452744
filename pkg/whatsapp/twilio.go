package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"booking-platform/pkg/utils"

	"go.uber.org/zap"
)

const defaultTwilioEndpoint = "https://api.twilio.com/2010-04-01"

// Sender is the one-message capability the outbox drainer consumes.
type Sender interface {
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}

type TwilioClient struct {
	accountSID string
	authToken  string
	from       string
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
}

func NewTwilioClient(config utils.TwilioConfig, log *zap.Logger) *TwilioClient {
	return &TwilioClient{
		accountSID: config.AccountSID,
		authToken:  config.AuthToken,
		from:       config.WhatsAppFrom,
		endpoint:   defaultTwilioEndpoint,
		httpClient: &http.Client{Timeout: 8 * time.Second},
		log:        log.With(zap.String("client", "twilio")),
	}
}

// SendWhatsApp delivers one message and returns the provider message SID.
func (c *TwilioClient) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	if c.accountSID == "" || c.authToken == "" || c.from == "" {
		return "", errors.New("twilio credentials are not configured")
	}
	if strings.TrimSpace(to) == "" {
		return "", errors.New("missing recipient phone")
	}
	if strings.TrimSpace(body) == "" {
		return "", errors.New("missing message body")
	}

	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	form := url.Values{}
	form.Set("From", c.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.endpoint, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send whatsapp to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Twilio returned non-2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("to", to),
		)
		return "", fmt.Errorf("send whatsapp to %s: status %d", to, resp.StatusCode)
	}

	var result struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode twilio response: %w", err)
	}

	return result.SID, nil
}
