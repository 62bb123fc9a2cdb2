package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/estudiosur/site-backend/internal/model"
	"github.com/estudiosur/site-backend/internal/webhook"
	"github.com/estudiosur/site-backend/pkg/github"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "x-sanity-signature"

const maxWebhookBody = 1 << 20 // 1 MiB

// Dispatcher forwards one content-change event to the CI provider.
type Dispatcher interface {
	Configured() bool
	Dispatch(ctx context.Context, event model.WebhookEvent) error
}

// WebhookHandler receives CMS content-change notifications and forwards them
// as CI dispatch events.
type WebhookHandler struct {
	secret     string // empty disables signature checking (explicit opt-out)
	dispatcher Dispatcher
}

// NewWebhookHandler creates a WebhookHandler. An empty secret disables
// signature verification; that is a deployment decision, not a default.
func NewWebhookHandler(secret string, dispatcher Dispatcher) *WebhookHandler {
	return &WebhookHandler{secret: secret, dispatcher: dispatcher}
}

// webhookAck is the 200 body echoing what was forwarded.
type webhookAck struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Webhook   webhookAckEvent `json:"webhook"`
	Timestamp string          `json:"timestamp"`
}

type webhookAckEvent struct {
	Type       string `json:"type"`
	Action     string `json:"action"`
	DocumentID string `json:"documentId"`
}

// Receive handles POST /webhook/sanity.
//
// The raw body is read exactly once and those bytes are used byte-for-byte
// for HMAC verification; JSON parsing only happens after the signature check
// passes. Terminal states: 200 forwarded, 400 bad payload, 401 bad
// signature, 500 misconfigured, 502 upstream rejected. No retries at any
// stage; the webhook source owns its retry policy.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body", nil)
		return
	}

	if h.secret != "" {
		if !webhook.ValidateSignature(raw, r.Header.Get(SignatureHeader), h.secret) {
			writeError(w, http.StatusUnauthorized, "invalid webhook signature", nil)
			return
		}
	}

	if !h.dispatcher.Configured() {
		// Server-side misconfiguration; the sender did nothing wrong.
		slog.Error("webhook received but dispatch credentials are not configured")
		writeError(w, http.StatusInternalServerError, "dispatch is not configured", nil)
		return
	}

	event, err := webhook.ParseEvent(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), event); err != nil {
		requestID, _ := r.Context().Value(RequestIDKey).(string)
		slog.Error("dispatch failed", "error", err, "request_id", requestID,
			"event_type", event.Type, "document_id", event.Document.ID)

		var de *github.DispatchError
		if errors.As(err, &de) {
			writeError(w, http.StatusBadGateway, "CI provider rejected the dispatch",
				map[string]any{"providerStatus": de.StatusCode, "providerBody": de.Body})
			return
		}
		writeError(w, http.StatusBadGateway, "CI provider unreachable", nil)
		return
	}

	writeJSON(w, http.StatusOK, webhookAck{
		Success: true,
		Message: "deployment dispatched",
		Webhook: webhookAckEvent{
			Type:       event.Type,
			Action:     event.Action,
			DocumentID: event.Document.ID,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
