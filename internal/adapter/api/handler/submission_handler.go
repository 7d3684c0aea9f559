package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/user/integration-board/internal/domain"
)

// SubmissionService is the use-case surface the submission handlers need.
type SubmissionService interface {
	Submit(ctx context.Context, csmName, companyName string, integrations []string) (string, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error)
	DistinctCSMs(ctx context.Context) ([]string, error)
}

// SubmissionHandler handles HTTP requests for creating, listing and deleting
// submissions.
type SubmissionHandler struct {
	svc    SubmissionService
	logger *slog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(svc SubmissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, logger: logger}
}

type createSubmissionRequest struct {
	CSMName      string   `json:"csm_name"`
	CompanyName  string   `json:"company_name"`
	Integrations []string `json:"integrations"`
}

// Create handles POST /api/submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.svc.Submit(r.Context(), req.CSMName, req.CompanyName, req.Integrations)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSubmission):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrMissingCSMName),
			errors.Is(err, domain.ErrMissingCompanyName),
			errors.Is(err, domain.ErrNoIntegrations):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to create submission", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// List handles GET /api/submissions with optional csm, company and
// (repeatable) integration query parameters.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ListFilter{
		CSM:          query.Get("csm"),
		Company:      query.Get("company"),
		Integrations: query["integration"],
	}

	subs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}

	respondWithJSON(w, http.StatusOK, subs)
}

// Delete handles DELETE /api/submissions/{id}. Unknown ids succeed, so the
// response is 204 either way.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete submission", "error", err, "id", id)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CSMs handles GET /api/csms, used to populate the CSM filter choices.
func (h *SubmissionHandler) CSMs(w http.ResponseWriter, r *http.Request) {
	csms, err := h.svc.DistinctCSMs(r.Context())
	if err != nil {
		h.logger.Error("failed to list distinct csms", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if csms == nil {
		csms = []string{}
	}

	respondWithJSON(w, http.StatusOK, csms)
}
