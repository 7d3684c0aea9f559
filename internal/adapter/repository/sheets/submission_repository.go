package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/user/integration-board/internal/domain"
)

// SubmissionRepository implements domain.SubmissionRepository on top of a
// Google Sheets worksheet, one row per (submission, integration) membership.
// Every operation round-trips to the Sheets API; the spreadsheet is the only
// persisted state.
type SubmissionRepository struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	sheetID       int64
	logger        *slog.Logger
}

// NewSubmissionRepository builds the Sheets client, resolves the worksheet
// and validates (or bootstraps) its header row.
func NewSubmissionRepository(ctx context.Context, spreadsheetID, worksheet, credentialsFile string, logger *slog.Logger) (*SubmissionRepository, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	meta, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	var sheetID int64 = -1
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == worksheet {
			sheetID = s.Properties.SheetId
			break
		}
	}
	if sheetID < 0 {
		return nil, fmt.Errorf("worksheet %q not found in spreadsheet %s", worksheet, spreadsheetID)
	}

	r := &SubmissionRepository{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		sheetID:       sheetID,
		logger:        logger,
	}

	if err := r.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureHeader writes the header row into an empty worksheet and rejects a
// worksheet whose existing header does not match.
func (r *SubmissionRepository) ensureHeader(ctx context.Context) error {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.rangeRef("A1:E1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	if len(resp.Values) == 0 {
		header := make([]interface{}, len(sheetHeader))
		for i, h := range sheetHeader {
			header[i] = h
		}
		_, err := r.svc.Spreadsheets.Values.
			Update(r.spreadsheetID, r.rangeRef("A1:E1"), &sheets.ValueRange{Values: [][]interface{}{header}}).
			ValueInputOption("RAW").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
		return nil
	}

	return validateHeader(resp.Values[0])
}

// Exists reports whether a submission exists for the pair, case-insensitive
// and trimmed on both fields.
func (r *SubmissionRepository) Exists(ctx context.Context, csmName, companyName string) (bool, error) {
	rows, err := r.fetchRows(ctx)
	if err != nil {
		return false, err
	}

	csm := foldName(csmName)
	company := foldName(companyName)
	for _, row := range rows {
		if foldName(row.CSMName) == csm && foldName(row.CompanyName) == company {
			return true, nil
		}
	}
	return false, nil
}

// Create appends one row per integration name in a single append call, which
// is the closest the Sheets API offers to an atomic write.
func (r *SubmissionRepository) Create(ctx context.Context, csmName, companyName string, integrations []string) (string, error) {
	names := dedupeNames(integrations)
	if len(names) == 0 {
		return "", domain.ErrNoIntegrations
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(createdAtLayout)
	csm := strings.TrimSpace(csmName)
	company := strings.TrimSpace(companyName)

	values := make([][]interface{}, 0, len(names))
	for _, name := range names {
		values = append(values, []interface{}{id, csm, company, name, createdAt})
	}

	_, err := r.svc.Spreadsheets.Values.
		Append(r.spreadsheetID, r.rangeRef("A:E"), &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to append submission rows: %w", err)
	}
	return id, nil
}

// Delete removes every row carrying the submission id, bottom-up so earlier
// row indexes stay valid while the batch is applied. Unknown ids are a no-op.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.rangeRef("A:A")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read id column: %w", err)
	}

	var rowNums []int64
	for i, cells := range resp.Values {
		if i == 0 {
			continue // header
		}
		if len(cells) > 0 && cellString(cells[0]) == id {
			rowNums = append(rowNums, int64(i+1)) // sheet rows are 1-indexed
		}
	}
	if len(rowNums) == 0 {
		return nil
	}

	sort.Slice(rowNums, func(i, j int) bool { return rowNums[i] > rowNums[j] })
	requests := make([]*sheets.Request, 0, len(rowNums))
	for _, rowNum := range rowNums {
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    r.sheetID,
					Dimension:  "ROWS",
					StartIndex: rowNum - 1,
					EndIndex:   rowNum,
				},
			},
		})
	}

	_, err = r.svc.Spreadsheets.
		BatchUpdate(r.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete submission rows: %w", err)
	}
	return nil
}

// List returns submissions matching the filter, most recent first.
func (r *SubmissionRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
	rows, err := r.fetchRows(ctx)
	if err != nil {
		return nil, err
	}
	return groupSubmissions(rows, filter), nil
}

// DistinctCSMs returns the unique CSM names, case-insensitive lexicographic
// order.
func (r *SubmissionRepository) DistinctCSMs(ctx context.Context) ([]string, error) {
	rows, err := r.fetchRows(ctx)
	if err != nil {
		return nil, err
	}
	return distinctCSMs(rows), nil
}

func (r *SubmissionRepository) fetchRows(ctx context.Context) ([]row, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.rangeRef("A:E")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return parseRows(resp.Values[1:]), nil
}

func (r *SubmissionRepository) rangeRef(cells string) string {
	return "'" + r.worksheet + "'!" + cells
}

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
