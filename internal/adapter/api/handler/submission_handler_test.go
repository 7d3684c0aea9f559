package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/integration-board/internal/domain"
)

// MockSubmissionService is a mock implementation of SubmissionService.
type MockSubmissionService struct {
	SubmitFunc   func(ctx context.Context, csmName, companyName string, integrations []string) (string, error)
	DeleteFunc   func(ctx context.Context, id string) error
	ListFunc     func(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error)
	DistinctFunc func(ctx context.Context) ([]string, error)
}

func (m *MockSubmissionService) Submit(ctx context.Context, csmName, companyName string, integrations []string) (string, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, csmName, companyName, integrations)
	}
	return "new-id", nil
}

func (m *MockSubmissionService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockSubmissionService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockSubmissionService) DistinctCSMs(ctx context.Context) ([]string, error) {
	if m.DistinctFunc != nil {
		return m.DistinctFunc(ctx)
	}
	return nil, nil
}

func TestSubmissionHandler_Create(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		submitErr      error
		expectedStatus int
	}{
		{
			name:           "Valid Submission",
			body:           `{"csm_name": "Manny", "company_name": "Acme Inc.", "integrations": ["GitHub"]}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Invalid JSON",
			body:           `{"csm_name": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing CSM Name",
			body:           `{"company_name": "Acme Inc.", "integrations": ["GitHub"]}`,
			submitErr:      domain.ErrMissingCSMName,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "No Integrations",
			body:           `{"csm_name": "Manny", "company_name": "Acme Inc.", "integrations": []}`,
			submitErr:      domain.ErrNoIntegrations,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Duplicate Pair",
			body:           `{"csm_name": "manny", "company_name": " acme inc. ", "integrations": ["Cursor"]}`,
			submitErr:      domain.ErrDuplicateSubmission,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Storage Failure",
			body:           `{"csm_name": "Manny", "company_name": "Acme Inc.", "integrations": ["GitHub"]}`,
			submitErr:      errors.New("store unreachable"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &MockSubmissionService{
				SubmitFunc: func(ctx context.Context, csmName, companyName string, integrations []string) (string, error) {
					if tc.submitErr != nil {
						return "", tc.submitErr
					}
					return "new-id", nil
				},
			}
			h := NewSubmissionHandler(svc, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}

			if tc.expectedStatus == http.StatusCreated {
				var resp map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp["id"] != "new-id" {
					t.Errorf("expected id in response, got %v", resp)
				}
			}
		})
	}
}

func TestSubmissionHandler_List(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Passes Filters Through", func(t *testing.T) {
		var gotFilter domain.ListFilter
		svc := &MockSubmissionService{
			ListFunc: func(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
				gotFilter = filter
				return []domain.Submission{{ID: "a", CSMName: "Manny"}}, nil
			},
		}
		h := NewSubmissionHandler(svc, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/submissions?csm=Manny&company=acm&integration=GitHub&integration=Datadog", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.CSM != "Manny" || gotFilter.Company != "acm" {
			t.Errorf("unexpected filter: %+v", gotFilter)
		}
		if len(gotFilter.Integrations) != 2 {
			t.Errorf("expected 2 integration filters, got %v", gotFilter.Integrations)
		}

		var subs []domain.Submission
		if err := json.NewDecoder(rec.Body).Decode(&subs); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(subs) != 1 || subs[0].ID != "a" {
			t.Errorf("unexpected response: %v", subs)
		}
	})

	t.Run("Empty Result Is An Empty Array", func(t *testing.T) {
		h := NewSubmissionHandler(&MockSubmissionService{}, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("expected empty JSON array, got %q", got)
		}
	})
}

func TestSubmissionHandler_Delete(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Delete Returns 204", func(t *testing.T) {
		var deletedID string
		svc := &MockSubmissionService{
			DeleteFunc: func(ctx context.Context, id string) error {
				deletedID = id
				return nil
			},
		}
		h := NewSubmissionHandler(svc, logger)

		req := httptest.NewRequest(http.MethodDelete, "/api/submissions/abc-123", nil)
		req.SetPathValue("id", "abc-123")
		rec := httptest.NewRecorder()
		h.Delete(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if deletedID != "abc-123" {
			t.Errorf("expected delete for abc-123, got %q", deletedID)
		}
	})

	t.Run("Unknown Id Still Returns 204", func(t *testing.T) {
		h := NewSubmissionHandler(&MockSubmissionService{}, logger)

		req := httptest.NewRequest(http.MethodDelete, "/api/submissions/no-such-id", nil)
		req.SetPathValue("id", "no-such-id")
		rec := httptest.NewRecorder()
		h.Delete(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}
