package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/user/integration-board/internal/domain"
)

// MockSubmissionRepository is a mock implementation of
// domain.SubmissionRepository for testing.
type MockSubmissionRepository struct {
	mu          sync.Mutex
	Submissions []domain.Submission
	DeletedIDs  []string

	ExistsResult bool
	ExistsErr    error
	CreateErr    error
	DeleteErr    error
	ListErr      error
	DistinctErr  error
}

func (m *MockSubmissionRepository) Exists(ctx context.Context, csmName, companyName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	return m.ExistsResult, nil
}

func (m *MockSubmissionRepository) Create(ctx context.Context, csmName, companyName string, integrations []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	id := fmt.Sprintf("mock-%d", len(m.Submissions)+1)
	m.Submissions = append(m.Submissions, domain.Submission{
		ID:           id,
		CSMName:      strings.TrimSpace(csmName),
		CompanyName:  strings.TrimSpace(companyName),
		CreatedAt:    time.Now().UTC(),
		Integrations: integrations,
	})
	return id, nil
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedIDs = append(m.DeletedIDs, id)
	kept := m.Submissions[:0]
	for _, s := range m.Submissions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.Submissions = kept
	return nil
}

func (m *MockSubmissionRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]domain.Submission, len(m.Submissions))
	copy(out, m.Submissions)
	return out, nil
}

func (m *MockSubmissionRepository) DistinctCSMs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DistinctErr != nil {
		return nil, m.DistinctErr
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range m.Submissions {
		if !seen[s.CSMName] {
			seen[s.CSMName] = true
			out = append(out, s.CSMName)
		}
	}
	return out, nil
}
