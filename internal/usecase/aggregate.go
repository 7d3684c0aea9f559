package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/user/integration-board/internal/domain"
)

// CountsByService counts membership records per integration name across all
// submissions, ordered by count descending with ties broken by name ascending
// (case-insensitive).
func CountsByService(subs []domain.Submission) []domain.ServiceCount {
	counts := make(map[string]int)
	for _, sub := range subs {
		for _, name := range sub.Integrations {
			counts[name]++
		}
	}

	out := make([]domain.ServiceCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, domain.ServiceCount{Integration: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Integration) < strings.ToLower(out[j].Integration)
	})
	return out
}

// CountsByCSM builds the leaderboard: per CSM, the number of distinct
// companies submitted and the total integration memberships across them.
// Ordered by total integrations descending, then companies descending, then
// CSM name ascending (case-insensitive). CSMs with no submissions are absent.
func CountsByCSM(subs []domain.Submission) []domain.CSMCount {
	type tally struct {
		companies    map[string]bool
		integrations int
	}

	per := make(map[string]*tally)
	for _, sub := range subs {
		t, ok := per[sub.CSMName]
		if !ok {
			t = &tally{companies: make(map[string]bool)}
			per[sub.CSMName] = t
		}
		t.companies[sub.CompanyName] = true
		t.integrations += len(sub.Integrations)
	}

	out := make([]domain.CSMCount, 0, len(per))
	for name, t := range per {
		out = append(out, domain.CSMCount{
			CSMName:      name,
			Companies:    len(t.companies),
			Integrations: t.integrations,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Integrations != out[j].Integrations {
			return out[i].Integrations > out[j].Integrations
		}
		if out[i].Companies != out[j].Companies {
			return out[i].Companies > out[j].Companies
		}
		return strings.ToLower(out[i].CSMName) < strings.ToLower(out[j].CSMName)
	})
	return out
}

// OverviewUseCase computes the two overview projections. Both read the full
// submission set at call time; nothing is cached between requests.
type OverviewUseCase struct {
	repo   domain.SubmissionRepository
	logger *slog.Logger
}

// NewOverviewUseCase creates a new OverviewUseCase.
func NewOverviewUseCase(repo domain.SubmissionRepository, logger *slog.Logger) *OverviewUseCase {
	return &OverviewUseCase{repo: repo, logger: logger}
}

// ByService returns the per-integration counts over all stored submissions.
func (uc *OverviewUseCase) ByService(ctx context.Context) ([]domain.ServiceCount, error) {
	subs, err := uc.repo.List(ctx, domain.ListFilter{})
	if err != nil {
		uc.logger.Error("failed to load submissions for service overview", "error", err)
		return nil, err
	}
	return CountsByService(subs), nil
}

// ByCSM returns the per-CSM leaderboard over all stored submissions.
func (uc *OverviewUseCase) ByCSM(ctx context.Context) ([]domain.CSMCount, error) {
	subs, err := uc.repo.List(ctx, domain.ListFilter{})
	if err != nil {
		uc.logger.Error("failed to load submissions for csm overview", "error", err)
		return nil, err
	}
	return CountsByCSM(subs), nil
}
