package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/pkg/apperror"
)

// DefaultWebhookTolerance is the accepted clock skew between the provider and us.
const DefaultWebhookTolerance = 5 * time.Minute

const (
	webhookSecretPrefix = "whsec_"
	signatureVersion    = "v1"
)

// StandardWebhookVerifier implements ports.WebhookVerifier for Standard Webhooks
// signatures: base64(HMAC-SHA256(key, "{id}.{timestamp}.{body}")).
type StandardWebhookVerifier struct {
	key       []byte
	tolerance time.Duration
	now       func() time.Time
}

// VerifierOption configures a StandardWebhookVerifier.
type VerifierOption func(*StandardWebhookVerifier)

// WithClock replaces the time source used for the tolerance check.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *StandardWebhookVerifier) { v.now = now }
}

// NewStandardWebhookVerifier decodes the webhook secret. The secret may carry the
// "whsec_" prefix; the remainder must be standard base64.
func NewStandardWebhookVerifier(secret string, tolerance time.Duration, opts ...VerifierOption) (*StandardWebhookVerifier, error) {
	key, err := decodeWebhookSecret(secret)
	if err != nil {
		return nil, err
	}
	if tolerance <= 0 {
		tolerance = DefaultWebhookTolerance
	}

	v := &StandardWebhookVerifier{key: key, tolerance: tolerance, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func decodeWebhookSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, apperror.ErrConfig("webhook secret is not configured", nil)
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, webhookSecretPrefix))
	if err != nil {
		return nil, apperror.ErrConfig("webhook secret is not valid base64", err)
	}
	if len(key) == 0 {
		return nil, apperror.ErrConfig("webhook secret is empty after decoding", nil)
	}
	return key, nil
}

// Verify checks headers, timestamp and signature, then decodes the body.
func (v *StandardWebhookVerifier) Verify(env domain.WebhookEnvelope) (*domain.WebhookPayload, error) {
	if env.EventID == "" || env.Timestamp == "" || env.Signature == "" {
		return nil, apperror.ErrVerification("missing required webhook headers")
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(env.Timestamp), 10, 64)
	if err != nil {
		return nil, apperror.ErrVerification("invalid webhook timestamp")
	}
	skew := v.now().Sub(time.Unix(ts, 0))
	if skew > v.tolerance || skew < -v.tolerance {
		return nil, apperror.ErrVerification("webhook timestamp outside tolerance")
	}

	expected := v.sign(env.EventID, env.Timestamp, env.RawBody)
	if !matchSignature(env.Signature, expected) {
		return nil, apperror.ErrVerification("webhook signature mismatch")
	}

	var payload domain.WebhookPayload
	if err := json.Unmarshal(env.RawBody, &payload); err != nil {
		return nil, apperror.ErrMalformedPayload("webhook body is not valid JSON", err)
	}
	return &payload, nil
}

// Sign produces a webhook-signature header value for the given envelope parts.
func (v *StandardWebhookVerifier) Sign(eventID, timestamp string, body []byte) string {
	return signatureVersion + "," + v.sign(eventID, timestamp, body)
}

func (v *StandardWebhookVerifier) sign(eventID, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", eventID, timestamp)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// matchSignature walks the space-separated "version,signature" entries.
func matchSignature(header, expected string) bool {
	for _, entry := range strings.Fields(header) {
		version, sig, ok := strings.Cut(entry, ",")
		if !ok || version != signatureVersion {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return true
		}
	}
	return false
}
