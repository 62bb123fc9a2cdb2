// Package github triggers CI deployments through the GitHub
// repository_dispatch API. Uses raw HTTP calls (no SDK) to minimize external
// dependencies.
package github

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

const defaultBaseURL = "https://api.github.com"

const dispatchTimeout = 10 * time.Second

// EventType is the fixed repository_dispatch event tag the deploy workflow
// listens for.
const EventType = "sanity-content-update"

// ErrNotConfigured is returned when the token or target repository is unset.
var ErrNotConfigured = errors.New("github: not configured")

// DispatchError reports a non-2xx response from the dispatch endpoint,
// keeping the provider's status code and body text for diagnostics.
type DispatchError struct {
	StatusCode int
	Body       string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("github: dispatch failed with status %d: %s", e.StatusCode, e.Body)
}

// Client issues repository_dispatch events against one repository.
type Client struct {
	token       string
	repo        string // "owner/name"
	environment string
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a Client targeting repo ("owner/name").
func NewClient(token, repo, environment string) *Client {
	return &Client{
		token:       token,
		repo:        repo,
		environment: environment,
		baseURL:     defaultBaseURL,
		httpClient: &http.Client{
			Timeout: dispatchTimeout,
		},
	}
}

// Configured reports whether forwarding credentials are present. A missing
// token or repo is a server misconfiguration, not a client error.
func (c *Client) Configured() bool {
	return c.token != "" && c.repo != ""
}

// Dispatch issues exactly one repository_dispatch POST for the given event.
// Non-2xx responses come back as *DispatchError. No retries at this layer:
// the webhook source owns its own retry policy.
func (c *Client) Dispatch(ctx context.Context, event model.WebhookEvent) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	body := map[string]any{
		"event_type": EventType,
		"client_payload": map[string]any{
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"source":      "sanity-webhook",
			"environment": c.environment,
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/repos/"+c.repo+"/dispatches", bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &DispatchError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	return nil
}
