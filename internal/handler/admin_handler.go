package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/estudiosur/site-backend/internal/model"
	"github.com/estudiosur/site-backend/internal/repository"
)

// AdminHandler exposes stored submissions to site operators.
type AdminHandler struct {
	repo  repository.SubmissionRepository
	token string
}

// NewAdminHandler creates an AdminHandler guarded by token. An empty token
// disables the admin surface entirely.
func NewAdminHandler(repo repository.SubmissionRepository, token string) *AdminHandler {
	return &AdminHandler{repo: repo, token: token}
}

// authorized checks the bearer token on admin requests.
func (h *AdminHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	presented, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.token)) == 1
}

// listResponse is the JSON response for GET /api/admin/submissions.
type listResponse struct {
	Submissions []*model.SubmissionRecord `json:"submissions"`
}

// List handles GET /api/admin/submissions.
// Supports query params: status (all/new/read/archived), limit, offset.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	opts := model.SubmissionListOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  20,
		Offset: 0,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	records, err := h.repo.List(r.Context(), opts)
	if err != nil {
		slog.Error("submission list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed", nil)
		return
	}

	// Return [] not null for empty lists
	if records == nil {
		records = []*model.SubmissionRecord{}
	}
	writeJSON(w, http.StatusOK, listResponse{Submissions: records})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/submissions/{id}/status.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	id := r.PathValue("id")

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	switch req.Status {
	case model.StatusNew, model.StatusRead, model.StatusArchived:
	default:
		writeError(w, http.StatusBadRequest, "invalid status", nil)
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found", nil)
			return
		}
		slog.Error("submission status update failed", "error", err, "submission_id", id)
		writeError(w, http.StatusInternalServerError, "update failed", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
