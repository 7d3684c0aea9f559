package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/user/integration-board/internal/adapter/metrics"
	"github.com/user/integration-board/internal/domain"
)

// SubmissionUseCase handles the business logic around recording, listing and
// deleting submissions.
type SubmissionUseCase struct {
	repo    domain.SubmissionRepository
	metrics *metrics.LeaderboardMetrics
	logger  *slog.Logger
}

// NewSubmissionUseCase creates a new SubmissionUseCase.
func NewSubmissionUseCase(repo domain.SubmissionRepository, m *metrics.LeaderboardMetrics, logger *slog.Logger) *SubmissionUseCase {
	return &SubmissionUseCase{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// Submit validates the input, blocks duplicates and persists the submission.
// Nothing is persisted on any rejection.
//
// The existence check and the create are two separate storage calls; two
// writers racing on the same pair can both pass the check. Accepted for the
// expected usage volume.
func (uc *SubmissionUseCase) Submit(ctx context.Context, csmName, companyName string, integrations []string) (string, error) {
	csm := strings.TrimSpace(csmName)
	company := strings.TrimSpace(companyName)

	if csm == "" {
		uc.rejected("missing_csm")
		return "", domain.ErrMissingCSMName
	}
	if company == "" {
		uc.rejected("missing_company")
		return "", domain.ErrMissingCompanyName
	}

	names := make([]string, 0, len(integrations))
	for _, name := range integrations {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		uc.rejected("no_integrations")
		return "", domain.ErrNoIntegrations
	}

	exists, err := uc.exists(ctx, csm, company)
	if err != nil {
		uc.logger.Error("failed to check for duplicate submission", "error", err, "csm", csm, "company", company)
		return "", err
	}
	if exists {
		uc.rejected("duplicate")
		return "", domain.ErrDuplicateSubmission
	}

	start := time.Now()
	id, err := uc.repo.Create(ctx, csm, company, names)
	uc.observe("create", start)
	if err != nil {
		uc.logger.Error("failed to create submission", "error", err, "csm", csm, "company", company)
		return "", err
	}

	if uc.metrics != nil {
		uc.metrics.SubmissionsCreated.Inc()
	}
	uc.logger.Info("recorded submission", "id", id, "csm", csm, "company", company, "integrations", len(names))
	return id, nil
}

// Delete removes a submission as a whole. Unknown ids succeed silently.
func (uc *SubmissionUseCase) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := uc.repo.Delete(ctx, id)
	uc.observe("delete", start)
	if err != nil {
		uc.logger.Error("failed to delete submission", "error", err, "id", id)
		return err
	}

	if uc.metrics != nil {
		uc.metrics.SubmissionsDeleted.Inc()
	}
	uc.logger.Info("deleted submission", "id", id)
	return nil
}

// List returns submissions matching the filter, most recent first.
func (uc *SubmissionUseCase) List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
	start := time.Now()
	subs, err := uc.repo.List(ctx, filter)
	uc.observe("list", start)
	return subs, err
}

// DistinctCSMs returns the unique CSM names for filter choices.
func (uc *SubmissionUseCase) DistinctCSMs(ctx context.Context) ([]string, error) {
	start := time.Now()
	csms, err := uc.repo.DistinctCSMs(ctx)
	uc.observe("distinct_csms", start)
	return csms, err
}

func (uc *SubmissionUseCase) exists(ctx context.Context, csm, company string) (bool, error) {
	start := time.Now()
	defer uc.observe("exists", start)
	return uc.repo.Exists(ctx, csm, company)
}

func (uc *SubmissionUseCase) rejected(reason string) {
	if uc.metrics != nil {
		uc.metrics.ValidationFailures.WithLabelValues(reason).Inc()
	}
}

func (uc *SubmissionUseCase) observe(op string, start time.Time) {
	if uc.metrics != nil {
		uc.metrics.StorageOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
