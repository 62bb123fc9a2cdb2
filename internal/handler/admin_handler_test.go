package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estudiosur/site-backend/internal/model"
	"github.com/estudiosur/site-backend/internal/repository"
)

// adminMockRepo extends the contact-handler repo mock with list/status hooks.
type adminMockRepo struct {
	mockSubmissionRepo
	records      []*model.SubmissionRecord
	capturedOpts model.SubmissionListOptions
	statusID     string
	statusValue  string
	statusErr    error
}

func (m *adminMockRepo) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.SubmissionRecord, error) {
	m.capturedOpts = opts
	return m.records, nil
}

func (m *adminMockRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.statusID = id
	m.statusValue = status
	return m.statusErr
}

func TestAdminList_RequiresToken(t *testing.T) {
	h := NewAdminHandler(&adminMockRepo{}, "admin-token")

	req := httptest.NewRequest("GET", "/api/admin/submissions", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestAdminList_WrongToken(t *testing.T) {
	h := NewAdminHandler(&adminMockRepo{}, "admin-token")

	req := httptest.NewRequest("GET", "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer guessed")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with a wrong token, got %d", rec.Code)
	}
}

func TestAdminList_EmptyConfiguredTokenDisablesAccess(t *testing.T) {
	h := NewAdminHandler(&adminMockRepo{}, "")

	req := httptest.NewRequest("GET", "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("an empty configured token must reject everything, got %d", rec.Code)
	}
}

func TestAdminList_ForwardsOptionsAndReturnsEmptySlice(t *testing.T) {
	repo := &adminMockRepo{}
	h := NewAdminHandler(repo, "admin-token")

	req := httptest.NewRequest("GET", "/api/admin/submissions?status=new&limit=50&offset=10", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.capturedOpts.Status != "new" || repo.capturedOpts.Limit != 50 || repo.capturedOpts.Offset != 10 {
		t.Errorf("options = %+v", repo.capturedOpts)
	}
	// Return [] not null for empty lists
	if !strings.Contains(rec.Body.String(), `"submissions":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAdminUpdateStatus(t *testing.T) {
	repo := &adminMockRepo{}
	h := NewAdminHandler(repo, "admin-token")

	req := httptest.NewRequest("PATCH", "/api/admin/submissions/sub_1/status", strings.NewReader(`{"status":"read"}`))
	req.SetPathValue("id", "sub_1")
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.statusID != "sub_1" || repo.statusValue != model.StatusRead {
		t.Errorf("update = %q/%q", repo.statusID, repo.statusValue)
	}
}

func TestAdminUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := &adminMockRepo{}
	h := NewAdminHandler(repo, "admin-token")

	req := httptest.NewRequest("PATCH", "/api/admin/submissions/sub_1/status", strings.NewReader(`{"status":"spam"}`))
	req.SetPathValue("id", "sub_1")
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if repo.statusID != "" {
		t.Error("repository must not be touched for an invalid status")
	}
}

func TestAdminUpdateStatus_NotFound(t *testing.T) {
	repo := &adminMockRepo{statusErr: repository.ErrNotFound}
	h := NewAdminHandler(repo, "admin-token")

	req := httptest.NewRequest("PATCH", "/api/admin/submissions/missing/status", strings.NewReader(`{"status":"read"}`))
	req.SetPathValue("id", "missing")
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
