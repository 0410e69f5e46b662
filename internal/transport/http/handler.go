package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"propworth/internal/lead"
	dErrors "propworth/pkg/domain-errors"
	"propworth/pkg/platform/httputil"
)

// Service defines the lead operations the transport layer depends on.
type Service interface {
	Submit(ctx context.Context, sub lead.Submission) (*lead.Outcome, error)
}

// Handler wires lead intake endpoints to the lead service.
type Handler struct {
	service Service
	store   lead.Store
	logger  *slog.Logger
}

// New constructs a lead handler with its dependencies.
func New(service Service, store lead.Store, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// Register mounts lead endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/leads", h.HandleSubmit)
	r.Get("/api/leads", h.HandleList)
	r.Patch("/api/leads/{id}/status", h.HandleUpdateStatus)
}

type submitResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId"`
	Message string `json:"message"`
}

type rateLimitedResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

type validationResponse struct {
	Error   string           `json:"error"`
	Details lead.FieldErrors `json:"details"`
}

const submitMessage = "Thank you! A local agent will be in touch shortly."

// HandleSubmit handles POST /api/leads requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var sub lead.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return
	}

	outcome, err := h.service.Submit(ctx, sub)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	switch outcome.Kind {
	case lead.OutcomeRateLimited:
		if rl := outcome.RateLimit; rl != nil {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(rl.ResetAt.Unix(), 10))
		}
		w.Header().Set("Retry-After", strconv.Itoa(outcome.RetryAfter))
		httputil.WriteJSON(w, http.StatusTooManyRequests, rateLimitedResponse{
			Error:      "Too many submissions. Please try again later.",
			RetryAfter: outcome.RetryAfter,
		})

	case lead.OutcomeInvalid:
		httputil.WriteJSON(w, http.StatusBadRequest, validationResponse{
			Error:   "Validation failed",
			Details: outcome.FieldErrors,
		})

	case lead.OutcomeNoConsent:
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Consent is required to proceed",
		})

	case lead.OutcomeBlocked:
		// Indistinguishable from a success on the wire.
		httputil.WriteJSON(w, http.StatusOK, submitResponse{
			Success: true,
			LeadID:  "blocked",
			Message: submitMessage,
		})

	case lead.OutcomeCompleted:
		h.logger.InfoContext(ctx, "lead submission accepted",
			"lead_id", outcome.Lead.ID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		httputil.WriteJSON(w, http.StatusOK, submitResponse{
			Success: true,
			LeadID:  outcome.Lead.ID,
			Message: submitMessage,
		})

	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "unexpected submission outcome"))
	}
}

// HandleList handles GET /api/leads requests. Filters: status, agentId,
// createdAfter and createdBefore (RFC 3339).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := lead.ListFilter{
		Status:          lead.Status(q.Get("status")),
		AssignedAgentID: q.Get("agentId"),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown status filter"))
		return
	}
	if raw := q.Get("createdAfter"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "createdAfter must be RFC 3339"))
			return
		}
		filter.CreatedAfter = t
	}
	if raw := q.Get("createdBefore"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "createdBefore must be RFC 3339"))
			return
		}
		filter.CreatedBefore = t
	}

	leads, err := h.store.ListLeads(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list leads", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list leads"))
		return
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

// HandleUpdateStatus handles PATCH /api/leads/{id}/status requests.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return
	}

	status := lead.Status(body.Status)
	if !status.IsValid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown lead status"))
		return
	}

	if !h.store.UpdateLeadStatus(ctx, id, status) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "lead not found"))
		return
	}

	h.logger.InfoContext(ctx, "lead status updated", "lead_id", id, "status", status)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
