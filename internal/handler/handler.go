package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// DB is the subset of the pgx pool used by the base handler.
type DB interface {
	Ping(ctx context.Context) error
}

// Handler carries dependencies shared across endpoints.
type Handler struct {
	db          DB
	corsOrigin  string
	environment string
	version     string
}

// New creates the base Handler. corsOrigin is the single allowed origin
// ("*" allows any).
func New(db DB, corsOrigin, environment, version string) *Handler {
	return &Handler{db: db, corsOrigin: corsOrigin, environment: environment, version: version}
}

// CORS applies the configured allowed origin to every response and replies
// 204 to preflight requests without invoking the inner handler.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-sanity-signature")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// errorResponse is the envelope for every non-2xx JSON body.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details any) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg, Details: details})
}
