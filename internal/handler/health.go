package handler

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// Health handles GET /health. Reports unhealthy when the database does not
// answer a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "healthy",
		Version:     h.version,
		Environment: h.environment,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
