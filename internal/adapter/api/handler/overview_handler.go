package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/user/integration-board/internal/domain"
	"github.com/user/integration-board/internal/pkg/catalog"
)

// OverviewService is the use-case surface the overview handlers need.
type OverviewService interface {
	ByService(ctx context.Context) ([]domain.ServiceCount, error)
	ByCSM(ctx context.Context) ([]domain.CSMCount, error)
}

// OverviewHandler serves the two aggregate views and the integration catalog.
type OverviewHandler struct {
	svc     OverviewService
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewOverviewHandler creates a new OverviewHandler.
func NewOverviewHandler(svc OverviewService, cat *catalog.Catalog, logger *slog.Logger) *OverviewHandler {
	return &OverviewHandler{svc: svc, catalog: cat, logger: logger}
}

type serviceCountView struct {
	Integration string `json:"integration"`
	Count       int    `json:"count"`
	Color       string `json:"color"`
}

// ByService handles GET /api/overview/services.
func (h *OverviewHandler) ByService(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.ByService(r.Context())
	if err != nil {
		h.logger.Error("failed to compute service overview", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	out := make([]serviceCountView, 0, len(counts))
	for _, c := range counts {
		out = append(out, serviceCountView{
			Integration: c.Integration,
			Count:       c.Count,
			Color:       h.catalog.ColorFor(c.Integration),
		})
	}

	respondWithJSON(w, http.StatusOK, out)
}

// ByCSM handles GET /api/overview/csms.
func (h *OverviewHandler) ByCSM(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.ByCSM(r.Context())
	if err != nil {
		h.logger.Error("failed to compute csm overview", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if counts == nil {
		counts = []domain.CSMCount{}
	}

	respondWithJSON(w, http.StatusOK, counts)
}

// Catalog handles GET /api/catalog: the configured integrations with their
// display colors, in catalog order.
func (h *OverviewHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Entries())
}
