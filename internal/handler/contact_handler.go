package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/estudiosur/site-backend/internal/form"
	"github.com/estudiosur/site-backend/internal/ratelimit"
	"github.com/estudiosur/site-backend/internal/service"
)

// ContactHandler handles the public contact-form endpoint.
type ContactHandler struct {
	svc         *service.ContactService
	limiter     *ratelimit.Limiter
	development bool
}

// NewContactHandler creates a ContactHandler. development unlocks diagnostic
// detail in 500 responses; it must be false in production.
func NewContactHandler(svc *service.ContactService, limiter *ratelimit.Limiter, development bool) *ContactHandler {
	return &ContactHandler{svc: svc, limiter: limiter, development: development}
}

// submitResponse is the 200 body for POST /api/contact. Warning is present
// when exactly one of the two side effects failed; the surviving identifier
// accompanies it.
type submitResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Warning      string `json:"warning,omitempty"`
	SubmissionID string `json:"submissionId,omitempty"`
	EmailID      string `json:"emailId,omitempty"`
}

// Submit handles POST /api/contact.
//
// Order matters: rate limiting runs before the body is even read, and
// validation before any side effect, so rejected requests never reach the
// email provider or the database.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	meta := requestMetadata(r)

	rl := h.limiter.Check(meta.IP)
	if !rl.Allowed {
		retryAfter := int(math.Ceil(rl.RetryAfter.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeError(w, http.StatusTooManyRequests,
			"Demasiadas solicitudes. Inténtalo de nuevo más tarde.",
			map[string]any{
				"retryAfter": retryAfter,
				"resetAt":    rl.ResetAt.UTC().Format(time.RFC3339),
			})
		return
	}

	var raw form.RawSubmission
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "El cuerpo de la solicitud no es JSON válido", nil)
		return
	}

	sub, fieldErrs := form.Validate(form.Sanitize(raw))
	if len(fieldErrs) > 0 {
		writeError(w, http.StatusBadRequest, "Hay errores en el formulario", fieldErrs)
		return
	}

	out := h.svc.Process(r.Context(), sub, meta)

	requestID, _ := r.Context().Value(RequestIDKey).(string)
	if out.EmailErr != nil {
		slog.Error("notification email failed", "error", out.EmailErr, "request_id", requestID)
	}
	if out.PersistErr != nil {
		slog.Error("submission insert failed", "error", out.PersistErr, "request_id", requestID)
	}

	// The status reflects whether the visitor's intent was durably
	// acknowledged, not whether every internal call succeeded.
	switch {
	case out.EmailOK() && out.PersistOK():
		writeJSON(w, http.StatusOK, submitResponse{
			Success:      true,
			Message:      "Tu mensaje se ha enviado correctamente.",
			SubmissionID: out.SubmissionID,
		})
	case out.PersistOK():
		writeJSON(w, http.StatusOK, submitResponse{
			Success:      true,
			Message:      "Tu mensaje se ha enviado correctamente.",
			Warning:      "La notificación por correo no pudo enviarse; tu mensaje quedó registrado.",
			SubmissionID: out.SubmissionID,
		})
	case out.EmailOK():
		writeJSON(w, http.StatusOK, submitResponse{
			Success: true,
			Message: "Tu mensaje se ha enviado correctamente.",
			Warning: "Tu mensaje no pudo guardarse, pero la notificación fue entregada.",
			EmailID: out.EmailID,
		})
	default:
		var details any
		if h.development {
			details = map[string]string{
				"email":    out.EmailErr.Error(),
				"database": out.PersistErr.Error(),
			}
		}
		writeError(w, http.StatusInternalServerError,
			"No pudimos procesar tu mensaje. Inténtalo de nuevo más tarde.", details)
	}
}
