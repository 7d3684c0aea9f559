package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/user/integration-board/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	csm_name TEXT NOT NULL,
	company_name TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS submission_integrations (
	submission_id TEXT NOT NULL REFERENCES submissions(id),
	integration_name TEXT NOT NULL,
	PRIMARY KEY (submission_id, integration_name)
);

CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);
`

// SubmissionRepository implements domain.SubmissionRepository on top of an
// embedded SQLite database file.
type SubmissionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSubmissionRepository opens (or creates) the database file and ensures
// the schema exists.
func NewSubmissionRepository(path string, logger *slog.Logger) (*SubmissionRepository, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The file permits one active connection per process; serializing through
	// a single pooled connection avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SubmissionRepository{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (r *SubmissionRepository) Close() error {
	return r.db.Close()
}

// Exists reports whether a submission exists for the pair, case-insensitive
// and trimmed on both fields.
func (r *SubmissionRepository) Exists(ctx context.Context, csmName, companyName string) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM submissions
			WHERE LOWER(TRIM(csm_name)) = LOWER(TRIM(?))
			  AND LOWER(TRIM(company_name)) = LOWER(TRIM(?))
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, csmName, companyName).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create persists the submission header and its membership rows in a single
// transaction so they appear together or not at all.
func (r *SubmissionRepository) Create(ctx context.Context, csmName, companyName string, integrations []string) (string, error) {
	names := dedupeNames(integrations)
	if len(names) == 0 {
		return "", domain.ErrNoIntegrations
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback() // Rollback is a no-op if Commit() is called

	_, err = tx.ExecContext(ctx,
		`INSERT INTO submissions (id, csm_name, company_name, created_at) VALUES (?, ?, ?, ?)`,
		id, strings.TrimSpace(csmName), strings.TrimSpace(companyName), createdAt.UnixNano(),
	)
	if err != nil {
		return "", err
	}

	for _, name := range names {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO submission_integrations (submission_id, integration_name) VALUES (?, ?)`,
			id, name,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes the header and all membership rows. Unknown ids are a no-op.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM submission_integrations WHERE submission_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// List returns submissions matching the filter, most recent first.
func (r *SubmissionRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
	query := `
		SELECT s.id, s.csm_name, s.company_name, s.created_at, m.integration_name
		FROM submissions s
		JOIN submission_integrations m ON m.submission_id = s.id`

	var conds []string
	var args []any

	if filter.CSM != "" {
		conds = append(conds, `LOWER(TRIM(s.csm_name)) = LOWER(TRIM(?))`)
		args = append(args, filter.CSM)
	}
	if filter.Company != "" {
		conds = append(conds, `INSTR(LOWER(s.company_name), LOWER(TRIM(?))) > 0`)
		args = append(args, filter.Company)
	}
	if len(filter.Integrations) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Integrations)), ",")
		conds = append(conds, `s.id IN (SELECT submission_id FROM submission_integrations WHERE integration_name IN (`+placeholders+`))`)
		for _, name := range filter.Integrations {
			args = append(args, name)
		}
	}

	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY s.created_at DESC, s.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		order []string
		byID  = make(map[string]*domain.Submission)
	)
	for rows.Next() {
		var (
			id, csm, company, integration string
			createdAt                     int64
		)
		if err := rows.Scan(&id, &csm, &company, &createdAt, &integration); err != nil {
			return nil, err
		}
		sub, ok := byID[id]
		if !ok {
			sub = &domain.Submission{
				ID:          id,
				CSMName:     csm,
				CompanyName: company,
				CreatedAt:   time.Unix(0, createdAt).UTC(),
			}
			byID[id] = sub
			order = append(order, id)
		}
		sub.Integrations = append(sub.Integrations, integration)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Submission, 0, len(order))
	for _, id := range order {
		sub := byID[id]
		sortNames(sub.Integrations)
		out = append(out, *sub)
	}
	return out, nil
}

// DistinctCSMs returns the unique trimmed CSM names, case-insensitive
// lexicographic order.
func (r *SubmissionRepository) DistinctCSMs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT TRIM(csm_name) FROM submissions WHERE TRIM(csm_name) <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortNames(names)
	return names, nil
}

// dedupeNames trims, drops empty names and removes duplicates while keeping
// first-seen order.
func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}
