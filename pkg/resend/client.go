// Package resend provides a minimal Resend API client for contact-form
// notification email. Uses raw HTTP calls (no SDK) to minimize external
// dependencies.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/estudiosur/site-backend/internal/model"
)

const defaultBaseURL = "https://api.resend.com"

// sendTimeout bounds one send attempt end to end.
const sendTimeout = 10 * time.Second

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("resend: not configured")
	// ErrTimeout is returned when the provider did not answer within the
	// send timeout. Distinct from a provider rejection so callers can tell
	// "slow" from "refused".
	ErrTimeout = errors.New("resend: send timed out")
)

// Client sends transactional email through the Resend API.
type Client struct {
	apiKey     string
	from       string
	to         string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client that notifies `to` about new submissions.
func NewClient(apiKey, from, to string) *Client {
	return &Client{
		apiKey:  apiKey,
		from:    from,
		to:      to,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: sendTimeout,
		},
	}
}

// Send renders the notification email for one submission and posts it to the
// Resend API. Returns the provider message id on success.
//
// Sending is not idempotent: a retried call delivers a duplicate email, so
// callers must not retry blindly.
func (c *Client) Send(ctx context.Context, sub model.ContactSubmission, meta model.SubmissionMetadata) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	html, err := renderBody(sub, meta)
	if err != nil {
		return "", fmt.Errorf("resend: render body: %w", err)
	}

	body := map[string]any{
		"from":     c.from,
		"to":       []string{c.to},
		"reply_to": sub.Email,
		"subject":  "Nuevo mensaje de contacto: " + sub.Subject,
		"html":     html,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("resend: status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("resend: decode response: %w", err)
	}
	if result.ID == "" {
		return "", errors.New("resend: empty message id in response")
	}
	return result.ID, nil
}
