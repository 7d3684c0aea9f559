package sheets

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/user/integration-board/internal/domain"
)

// sheetHeader is the required header row of the backing worksheet. One sheet
// row per (submission, integration) membership.
var sheetHeader = []string{"submission_id", "csm_name", "company_name", "integration_name", "created_at"}

// createdAtLayout matches how creation timestamps are serialized into cells.
const createdAtLayout = time.RFC3339

// HeaderMismatchError reports a worksheet whose first row does not carry the
// expected columns. It is fatal; the sheet must be fixed by hand.
type HeaderMismatchError struct {
	Found []string
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf(
		"sheet header row must be: %s; found: %s; fix the header row (row 1) and retry",
		strings.Join(sheetHeader, ", "), strings.Join(e.Found, ", "),
	)
}

// row is one worksheet data row.
type row struct {
	SubmissionID    string
	CSMName         string
	CompanyName     string
	IntegrationName string
	CreatedAt       string
}

// validateHeader checks the first sheet row against sheetHeader,
// case-insensitively and ignoring surrounding whitespace.
func validateHeader(cells []interface{}) error {
	found := make([]string, 0, len(cells))
	for _, c := range cells {
		found = append(found, cellString(c))
	}

	if len(found) < len(sheetHeader) {
		return &HeaderMismatchError{Found: found}
	}
	for i, want := range sheetHeader {
		if strings.ToLower(strings.TrimSpace(found[i])) != want {
			return &HeaderMismatchError{Found: found}
		}
	}
	return nil
}

// parseRows converts raw cell values (without the header row) into rows.
// Short rows are padded with empty cells.
func parseRows(values [][]interface{}) []row {
	rows := make([]row, 0, len(values))
	for _, cells := range values {
		get := func(i int) string {
			if i < len(cells) {
				return cellString(cells[i])
			}
			return ""
		}
		rows = append(rows, row{
			SubmissionID:    get(0),
			CSMName:         get(1),
			CompanyName:     get(2),
			IntegrationName: get(3),
			CreatedAt:       get(4),
		})
	}
	return rows
}

func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// groupSubmissions filters and groups membership rows into submissions,
// most recent first. A submission matches when its header fields satisfy the
// csm/company filters and any of its rows carries a filtered integration;
// matching submissions keep their full integration set.
func groupSubmissions(rows []row, filter domain.ListFilter) []domain.Submission {
	wantCSM := foldName(filter.CSM)
	wantCompany := foldName(filter.Company)
	wantIntegrations := make(map[string]bool, len(filter.Integrations))
	for _, name := range filter.Integrations {
		wantIntegrations[name] = true
	}

	matched := make(map[string]bool)
	for _, r := range rows {
		if r.SubmissionID == "" {
			continue
		}
		if wantCSM != "" && foldName(r.CSMName) != wantCSM {
			continue
		}
		if wantCompany != "" && !strings.Contains(foldName(r.CompanyName), wantCompany) {
			continue
		}
		if len(wantIntegrations) > 0 && !wantIntegrations[strings.TrimSpace(r.IntegrationName)] {
			continue
		}
		matched[r.SubmissionID] = true
	}

	var (
		order []string
		byID  = make(map[string]*domain.Submission)
		seen  = make(map[string]map[string]bool)
	)
	for _, r := range rows {
		if !matched[r.SubmissionID] {
			continue
		}
		sub, ok := byID[r.SubmissionID]
		if !ok {
			sub = &domain.Submission{
				ID:          r.SubmissionID,
				CSMName:     r.CSMName,
				CompanyName: r.CompanyName,
				CreatedAt:   parseCreatedAt(r.CreatedAt),
			}
			byID[r.SubmissionID] = sub
			seen[r.SubmissionID] = make(map[string]bool)
			order = append(order, r.SubmissionID)
		}
		name := strings.TrimSpace(r.IntegrationName)
		if name == "" || seen[r.SubmissionID][name] {
			continue
		}
		seen[r.SubmissionID][name] = true
		sub.Integrations = append(sub.Integrations, name)
	}

	out := make([]domain.Submission, 0, len(order))
	for _, id := range order {
		sub := byID[id]
		sort.Slice(sub.Integrations, func(i, j int) bool {
			return strings.ToLower(sub.Integrations[i]) < strings.ToLower(sub.Integrations[j])
		})
		out = append(out, *sub)
	}
	// Unparseable timestamps come back as the zero time and sort last.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// distinctCSMs returns the unique trimmed CSM names across all rows,
// case-insensitive lexicographic order.
func distinctCSMs(rows []row) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range rows {
		name := strings.TrimSpace(r.CSMName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(createdAtLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
