package api

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/user/integration-board/internal/adapter/api/handler"
	"github.com/user/integration-board/internal/adapter/api/middleware"
	"github.com/user/integration-board/internal/pkg/catalog"
)

// NewRouter creates and configures the main HTTP router for the leaderboard
// service.
func NewRouter(
	logger *slog.Logger,
	cat *catalog.Catalog,
	submissions handler.SubmissionService,
	overview handler.OverviewService,
	writeLimiter *rate.Limiter,
) http.Handler {
	mux := http.NewServeMux()

	submissionHandler := handler.NewSubmissionHandler(submissions, logger)
	overviewHandler := handler.NewOverviewHandler(overview, cat, logger)

	// Only the mutating endpoints are rate limited.
	limit := middleware.RateLimit(writeLimiter)

	mux.Handle("POST /api/submissions", limit(http.HandlerFunc(submissionHandler.Create)))
	mux.Handle("DELETE /api/submissions/{id}", limit(http.HandlerFunc(submissionHandler.Delete)))
	mux.HandleFunc("GET /api/submissions", submissionHandler.List)
	mux.HandleFunc("GET /api/csms", submissionHandler.CSMs)

	mux.HandleFunc("GET /api/overview/services", overviewHandler.ByService)
	mux.HandleFunc("GET /api/overview/csms", overviewHandler.ByCSM)
	mux.HandleFunc("GET /api/catalog", overviewHandler.Catalog)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
