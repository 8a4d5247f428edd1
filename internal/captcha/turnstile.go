package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	// ErrMissingToken means the visitor never completed the widget.
	ErrMissingToken = errors.New("challenge token missing")
	// ErrRejected means the verification service answered and said no.
	ErrRejected = errors.New("challenge rejected")
	// ErrUnavailable covers transport failures, timeouts and unreadable answers.
	ErrUnavailable = errors.New("verification service unavailable")
)

// Verifier checks a challenge token. Every non-nil error is a rejection.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
}

// Turnstile verifies tokens against Cloudflare's siteverify endpoint.
type Turnstile struct {
	secret   string
	endpoint string
	client   *http.Client
}

func NewTurnstile(secret, endpoint string, timeout time.Duration) *Turnstile {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultVerifyURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Turnstile{
		secret:   strings.TrimSpace(secret),
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (t *Turnstile) Verify(ctx context.Context, token, remoteIP string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}
	if t.secret == "" {
		logrus.Error("turnstile secret key is not configured")
		return fmt.Errorf("%w: secret key not configured", ErrUnavailable)
	}

	form := url.Values{}
	form.Set("secret", t.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("turnstile verification request failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Warn("turnstile verification returned non-200")
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result siteverifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !result.Success {
		logrus.WithField("error_codes", result.ErrorCodes).Info("turnstile token rejected")
		return ErrRejected
	}
	return nil
}
