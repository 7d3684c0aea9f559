package domain

import "context"

// ListFilter narrows a List call. Zero-value fields are ignored; provided
// dimensions are ANDed together.
type ListFilter struct {
	// CSM matches csm_name exactly, case-insensitive and trimmed.
	CSM string
	// Company matches company_name by case-insensitive substring.
	Company string
	// Integrations matches submissions containing any of the given names.
	Integrations []string
}

// SubmissionRepository defines the storage contract for submissions.
// This abstracts away the specific backends (SQLite file, PostgreSQL,
// Google Sheets); calling code treats them identically.
type SubmissionRepository interface {
	// Exists reports whether a submission is already recorded for the given
	// (csm_name, company_name) pair, compared case-insensitively after
	// trimming whitespace on both sides.
	Exists(ctx context.Context, csmName, companyName string) (bool, error)

	// Create persists a new submission header plus one membership record per
	// integration name and returns the generated submission id. Names are
	// stored trimmed; the creation timestamp is stamped in UTC.
	Create(ctx context.Context, csmName, companyName string, integrations []string) (string, error)

	// Delete removes the submission header and all of its membership records.
	// Deleting an unknown id is a no-op, not an error.
	Delete(ctx context.Context, id string) error

	// List returns submissions matching the filter, most recent first. Each
	// submission carries its full integration set sorted case-insensitively.
	List(ctx context.Context, filter ListFilter) ([]Submission, error)

	// DistinctCSMs returns the unique CSM names across all submissions in
	// case-insensitive lexicographic order.
	DistinctCSMs(ctx context.Context) ([]string, error)
}
