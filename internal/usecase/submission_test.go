package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/user/integration-board/internal/domain"
	"github.com/user/integration-board/internal/domain/mocks"
)

func TestSubmissionUseCase_Submit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Successful Submission", func(t *testing.T) {
		mockRepo := &mocks.MockSubmissionRepository{}
		uc := NewSubmissionUseCase(mockRepo, nil, logger)

		id, err := uc.Submit(context.Background(), " Manny ", " Acme Inc. ", []string{"GitHub", " Datadog "})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id == "" {
			t.Error("expected a submission id")
		}
		if len(mockRepo.Submissions) != 1 {
			t.Fatalf("expected 1 submission persisted, got %d", len(mockRepo.Submissions))
		}
		got := mockRepo.Submissions[0]
		if got.CSMName != "Manny" || got.CompanyName != "Acme Inc." {
			t.Errorf("expected trimmed names, got %q / %q", got.CSMName, got.CompanyName)
		}
		if len(got.Integrations) != 2 || got.Integrations[1] != "Datadog" {
			t.Errorf("expected trimmed integration names, got %v", got.Integrations)
		}
	})

	t.Run("Validation Failures", func(t *testing.T) {
		tests := []struct {
			name         string
			csm          string
			company      string
			integrations []string
			wantErr      error
		}{
			{"Empty CSM", "", "Acme Inc.", []string{"GitHub"}, domain.ErrMissingCSMName},
			{"Whitespace CSM", "   ", "Acme Inc.", []string{"GitHub"}, domain.ErrMissingCSMName},
			{"Empty Company", "Manny", "", []string{"GitHub"}, domain.ErrMissingCompanyName},
			{"Whitespace Company", "Manny", " \t ", []string{"GitHub"}, domain.ErrMissingCompanyName},
			{"No Integrations", "Manny", "Acme Inc.", nil, domain.ErrNoIntegrations},
			{"Blank Integrations", "Manny", "Acme Inc.", []string{" ", ""}, domain.ErrNoIntegrations},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				mockRepo := &mocks.MockSubmissionRepository{}
				uc := NewSubmissionUseCase(mockRepo, nil, logger)

				_, err := uc.Submit(context.Background(), tc.csm, tc.company, tc.integrations)
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if len(mockRepo.Submissions) != 0 {
					t.Error("expected nothing persisted on rejection")
				}
			})
		}
	})

	t.Run("Duplicate Pair Rejected", func(t *testing.T) {
		mockRepo := &mocks.MockSubmissionRepository{ExistsResult: true}
		uc := NewSubmissionUseCase(mockRepo, nil, logger)

		_, err := uc.Submit(context.Background(), "manny", " acme inc. ", []string{"Cursor"})
		if !errors.Is(err, domain.ErrDuplicateSubmission) {
			t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
		}
		if len(mockRepo.Submissions) != 0 {
			t.Error("expected nothing persisted for a duplicate")
		}
	})

	t.Run("Existence Check Error Propagates", func(t *testing.T) {
		mockRepo := &mocks.MockSubmissionRepository{ExistsErr: errors.New("store unreachable")}
		uc := NewSubmissionUseCase(mockRepo, nil, logger)

		_, err := uc.Submit(context.Background(), "Manny", "Acme Inc.", []string{"GitHub"})
		if err == nil || err.Error() != "store unreachable" {
			t.Fatalf("expected store error to propagate, got %v", err)
		}
	})

	t.Run("Create Error Propagates", func(t *testing.T) {
		mockRepo := &mocks.MockSubmissionRepository{CreateErr: errors.New("write failed")}
		uc := NewSubmissionUseCase(mockRepo, nil, logger)

		_, err := uc.Submit(context.Background(), "Manny", "Acme Inc.", []string{"GitHub"})
		if err == nil || err.Error() != "write failed" {
			t.Fatalf("expected write error to propagate, got %v", err)
		}
	})
}

func TestSubmissionUseCase_Delete(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Delete Passes Through", func(t *testing.T) {
		mockRepo := &mocks.MockSubmissionRepository{}
		uc := NewSubmissionUseCase(mockRepo, nil, logger)

		if err := uc.Delete(context.Background(), "some-id"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mockRepo.DeletedIDs) != 1 || mockRepo.DeletedIDs[0] != "some-id" {
			t.Errorf("expected delete forwarded to repository, got %v", mockRepo.DeletedIDs)
		}
	})

	t.Run("Repository Error Propagates", func(t *testing.T) {
		mockRepo := &mocks.MockSubmissionRepository{DeleteErr: errors.New("delete failed")}
		uc := NewSubmissionUseCase(mockRepo, nil, logger)

		if err := uc.Delete(context.Background(), "some-id"); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})
}
