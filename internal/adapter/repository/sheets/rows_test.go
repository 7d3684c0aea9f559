package sheets

import (
	"errors"
	"reflect"
	"testing"

	"github.com/user/integration-board/internal/domain"
)

func TestValidateHeader(t *testing.T) {
	t.Run("Exact Header", func(t *testing.T) {
		cells := []interface{}{"submission_id", "csm_name", "company_name", "integration_name", "created_at"}
		if err := validateHeader(cells); err != nil {
			t.Fatalf("expected header to validate, got %v", err)
		}
	})

	t.Run("Case And Whitespace Insensitive", func(t *testing.T) {
		cells := []interface{}{" Submission_ID ", "CSM_NAME", "company_name", "Integration_Name", "created_at "}
		if err := validateHeader(cells); err != nil {
			t.Fatalf("expected header to validate, got %v", err)
		}
	})

	t.Run("Wrong Columns", func(t *testing.T) {
		cells := []interface{}{"id", "csm", "company"}
		err := validateHeader(cells)
		var mismatch *HeaderMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected HeaderMismatchError, got %v", err)
		}
		if len(mismatch.Found) != 3 {
			t.Errorf("expected found columns in error, got %v", mismatch.Found)
		}
	})
}

func testRows() []row {
	// Two submissions for Manny, one for Alex; B is the most recent.
	return []row{
		{SubmissionID: "a", CSMName: "Manny", CompanyName: "Acme Inc.", IntegrationName: "GitHub", CreatedAt: "2026-08-20T10:00:00Z"},
		{SubmissionID: "a", CSMName: "Manny", CompanyName: "Acme Inc.", IntegrationName: "Datadog", CreatedAt: "2026-08-20T10:00:00Z"},
		{SubmissionID: "b", CSMName: "Manny", CompanyName: "Other Co", IntegrationName: "GitHub", CreatedAt: "2026-08-21T09:00:00Z"},
		{SubmissionID: "c", CSMName: "Alex", CompanyName: "Globex", IntegrationName: "Cursor", CreatedAt: "2026-08-19T08:00:00Z"},
	}
}

func TestGroupSubmissions(t *testing.T) {
	t.Run("Groups And Orders Most Recent First", func(t *testing.T) {
		subs := groupSubmissions(testRows(), domain.ListFilter{})
		if len(subs) != 3 {
			t.Fatalf("expected 3 submissions, got %d", len(subs))
		}
		gotIDs := []string{subs[0].ID, subs[1].ID, subs[2].ID}
		if !reflect.DeepEqual(gotIDs, []string{"b", "a", "c"}) {
			t.Errorf("unexpected order: %v", gotIDs)
		}
		if !reflect.DeepEqual(subs[1].Integrations, []string{"Datadog", "GitHub"}) {
			t.Errorf("expected sorted integration set, got %v", subs[1].Integrations)
		}
	})

	t.Run("CSM Filter", func(t *testing.T) {
		subs := groupSubmissions(testRows(), domain.ListFilter{CSM: " manny "})
		if len(subs) != 2 {
			t.Fatalf("expected 2 submissions, got %d", len(subs))
		}
	})

	t.Run("Company Substring Filter", func(t *testing.T) {
		subs := groupSubmissions(testRows(), domain.ListFilter{Company: "acm"})
		if len(subs) != 1 || subs[0].CompanyName != "Acme Inc." {
			t.Fatalf("expected only Acme Inc., got %v", subs)
		}
	})

	t.Run("Integration Filter Keeps Full Set", func(t *testing.T) {
		subs := groupSubmissions(testRows(), domain.ListFilter{Integrations: []string{"Datadog"}})
		if len(subs) != 1 || subs[0].ID != "a" {
			t.Fatalf("expected only submission a, got %v", subs)
		}
		// The matching submission carries all of its integrations, not just
		// the filtered one.
		if !reflect.DeepEqual(subs[0].Integrations, []string{"Datadog", "GitHub"}) {
			t.Errorf("expected full integration set, got %v", subs[0].Integrations)
		}
	})

	t.Run("Unparseable Timestamp Sorts Last", func(t *testing.T) {
		rows := append(testRows(), row{SubmissionID: "d", CSMName: "Zoe", CompanyName: "Initech", IntegrationName: "OpenAI", CreatedAt: "yesterday"})
		subs := groupSubmissions(rows, domain.ListFilter{})
		if subs[len(subs)-1].ID != "d" {
			t.Errorf("expected d last, got order ending in %s", subs[len(subs)-1].ID)
		}
	})
}

func TestParseRowsPadsShortRows(t *testing.T) {
	values := [][]interface{}{
		{"a", "Manny", "Acme Inc."},
	}
	rows := parseRows(values)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].IntegrationName != "" || rows[0].CreatedAt != "" {
		t.Errorf("expected missing cells to be empty, got %+v", rows[0])
	}
}

func TestDistinctCSMs(t *testing.T) {
	rows := []row{
		{SubmissionID: "a", CSMName: " Zoe "},
		{SubmissionID: "b", CSMName: "alex"},
		{SubmissionID: "c", CSMName: "Zoe"},
		{SubmissionID: "d", CSMName: ""},
	}
	got := distinctCSMs(rows)
	if !reflect.DeepEqual(got, []string{"alex", "Zoe"}) {
		t.Errorf("unexpected distinct csms: %v", got)
	}
}
