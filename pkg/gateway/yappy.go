package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"booking-platform/pkg/utils"

	"go.uber.org/zap"
)

// Minimal client for the Yappy payment button API (Botón de Pago V2).
// The gateway flow is: validate merchant → create order → the customer pays
// in the Yappy app → the gateway calls our IPN webhook.

const (
	prodAPIBase = "https://apipagosbg.bgeneral.cloud"
	uatAPIBase  = "https://api-comecom-uat.yappycloud.com"
)

var ErrMissingSecret = errors.New("yappy secret key is not configured")

type YappyClient struct {
	apiBase        string
	merchantID     string
	secretKey      string
	domainOverride string
	httpClient     *http.Client
	log            *zap.Logger
}

func NewYappyClient(config utils.YappyConfig, log *zap.Logger) *YappyClient {
	apiBase := prodAPIBase
	if strings.EqualFold(config.Env, "uat") {
		apiBase = uatAPIBase
	}

	return &YappyClient{
		apiBase:        apiBase,
		merchantID:     config.MerchantID,
		secretKey:      config.SecretKey,
		domainOverride: config.DomainOverride,
		httpClient:     &http.Client{Timeout: 8 * time.Second},
		log:            log.With(zap.String("client", "yappy")),
	}
}

type MerchantSession struct {
	Token     string
	EpochTime int64
	URLDomain string
}

type CreateOrderArgs struct {
	Token      string
	OrderID    string // max 15 chars
	Domain     string
	AliasYappy string // Panamanian phone, local digits without 507
	Total      string // "0.01" etc.
	IPNURL     string
}

type OrderSession struct {
	TransactionID string
	Token         string
	DocumentName  string
}

type apiEnvelope struct {
	Body struct {
		Token         string `json:"token"`
		EpochTime     int64  `json:"epochTime"`
		TransactionID string `json:"transactionId"`
		DocumentName  string `json:"documentName"`
	} `json:"body"`
}

// ValidateMerchant exchanges the merchant id and domain for a short-lived
// token. The domain must match the one registered with the gateway exactly,
// so a configured override wins over the request origin.
func (c *YappyClient) ValidateMerchant(ctx context.Context, origin string) (*MerchantSession, error) {
	if c.merchantID == "" {
		return nil, errors.New("yappy merchant id is not configured")
	}

	urlDomain := origin
	if c.domainOverride != "" {
		urlDomain = c.domainOverride
	}

	payload := map[string]string{
		"merchantId": c.merchantID,
		"urlDomain":  urlDomain,
	}

	var envelope apiEnvelope
	if err := c.post(ctx, "/payments/validate/merchant", "", payload, &envelope); err != nil {
		return nil, fmt.Errorf("validate merchant: %w", err)
	}

	if envelope.Body.Token == "" {
		return nil, errors.New("validate merchant: response carried no token")
	}

	return &MerchantSession{
		Token:     envelope.Body.Token,
		EpochTime: envelope.Body.EpochTime,
		URLDomain: urlDomain,
	}, nil
}

// CreateOrder registers a payment order and returns the session the web
// button widget needs.
func (c *YappyClient) CreateOrder(ctx context.Context, args CreateOrderArgs) (*OrderSession, error) {
	payload := map[string]any{
		"merchantId":  c.merchantID,
		"orderId":     args.OrderID,
		"domain":      args.Domain,
		"paymentDate": time.Now().UnixMilli(),
		"aliasYappy":  args.AliasYappy,
		"ipnUrl":      args.IPNURL,
		"discount":    "0.00",
		"taxes":       "0.00",
		"subtotal":    args.Total,
		"total":       args.Total,
	}

	var envelope apiEnvelope
	if err := c.post(ctx, "/payments/payment-wc", args.Token, payload, &envelope); err != nil {
		return nil, fmt.Errorf("create order %s: %w", args.OrderID, err)
	}

	if envelope.Body.TransactionID == "" || envelope.Body.Token == "" || envelope.Body.DocumentName == "" {
		return nil, fmt.Errorf("create order %s: incomplete response", args.OrderID)
	}

	return &OrderSession{
		TransactionID: envelope.Body.TransactionID,
		Token:         envelope.Body.Token,
		DocumentName:  envelope.Body.DocumentName,
	}, nil
}

// VerifyIPNSignature recomputes the IPN hash and compares it in constant
// time. Per the gateway docs the HMAC-SHA256 key is the part before the
// first "." of the base64-decoded secret, and the signed text is the
// concatenation orderId+status+domain. A missing secret is a configuration
// error, never a silent pass.
func (c *YappyClient) VerifyIPNSignature(orderID, status, domain, hash string) (bool, error) {
	if c.secretKey == "" {
		return false, ErrMissingSecret
	}

	decoded, err := base64.StdEncoding.DecodeString(c.secretKey)
	if err != nil {
		return false, fmt.Errorf("decode yappy secret: %w", err)
	}

	key, _, _ := strings.Cut(string(decoded), ".")

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(orderID + status + domain))
	signature := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(hash)), nil
}

func (c *YappyClient) post(ctx context.Context, path, token string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Yappy API returned non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("call %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}
