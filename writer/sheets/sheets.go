// Package sheets stores transaction rows in a Google Sheets tab. It is the
// storage collaborator of the pipeline: stored IDs and the latest date are
// read at the start of a run, the assembled block is appended at the end, and
// cleanup keeps the tab sorted descending by date so the next run can take
// the latest date from the first data row.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/plaidsheets/plaidsheets"
)

// Dates are written as plain YYYY-MM-DD strings with RAW input so that the
// stored values sort lexically the same as chronologically.
const valueInputOption = "RAW"

type Writer struct {
	Config *plaidsheets.Config
	svc    *sheets.Service
	logger *slog.Logger

	// numeric sheet ID, resolved once for the sort request
	sheetID *int64
}

// NewWriter returns a writer for the spreadsheet named in config. With no
// credentials file configured, application default credentials are used.
func NewWriter(ctx context.Context, cfg *plaidsheets.Config) (*Writer, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.Sheets.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Sheets.CredentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Writer{
		Config: cfg,
		svc:    svc,
		logger: slog.Default().With("writer", "sheets"),
	}, nil
}

// TransactionIDs reads the ID column from the first data row down, skipping
// blanks.
func (w *Writer) TransactionIDs(ctx context.Context) (plaidsheets.IDSet, error) {
	column := w.Config.Sheets.IDColumn
	readRange := fmt.Sprintf("%s!%s2:%s", w.Config.Sheets.SheetName, column, column)
	resp, err := w.svc.Spreadsheets.Values.Get(w.Config.Sheets.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading id column: %w", err)
	}
	return idSet(resp.Values), nil
}

// LatestDate reads the date cell of the first data row. The tab is kept
// sorted descending by date, so that cell holds the most recent stored date.
func (w *Writer) LatestDate(ctx context.Context) (time.Time, bool, error) {
	cell := fmt.Sprintf("%s!%s2", w.Config.Sheets.SheetName, columnLetter(w.Config.Sheets.DateColumn))
	resp, err := w.svc.Spreadsheets.Values.Get(w.Config.Sheets.SpreadsheetID, cell).Context(ctx).Do()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading date cell: %w", err)
	}

	value := cellString(resp.Values)
	if value == "" {
		return time.Time{}, false, nil
	}
	date, err := plaidsheets.ParseDate(value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing stored date %q: %w", value, err)
	}
	return date, true, nil
}

// Headers returns the header row, empty when the tab is blank.
func (w *Writer) Headers(ctx context.Context) ([]string, error) {
	readRange := fmt.Sprintf("%s!1:1", w.Config.Sheets.SheetName)
	resp, err := w.svc.Spreadsheets.Values.Get(w.Config.Sheets.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	headers := make([]string, 0, len(resp.Values[0]))
	for _, v := range resp.Values[0] {
		headers = append(headers, fmt.Sprint(v))
	}
	return headers, nil
}

// Append writes block below the existing rows. An empty block is a no-op,
// even with clearFirst set.
func (w *Writer) Append(ctx context.Context, block [][]any, clearFirst bool) error {
	if len(block) == 0 {
		w.logger.Info("no data to write")
		return nil
	}
	if clearFirst {
		if err := w.clear(ctx); err != nil {
			return plaidsheets.WriteError{Err: err}
		}
	}

	writeRange := fmt.Sprintf("%s!A1", w.Config.Sheets.SheetName)
	values := &sheets.ValueRange{Values: block}
	_, err := w.svc.Spreadsheets.Values.Append(w.Config.Sheets.SpreadsheetID, writeRange, values).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return plaidsheets.WriteError{Err: err}
	}
	w.logger.Info("appended block", "rows", len(block))
	return nil
}

// Cleanup sorts the data rows descending by the date column.
func (w *Writer) Cleanup(ctx context.Context) error {
	sheetID, err := w.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			SortRange: &sheets.SortRangeRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 1, // keep the header in place
				},
				SortSpecs: []*sheets.SortSpec{{
					DimensionIndex: int64(w.Config.Sheets.DateColumn - 1),
					SortOrder:      "DESCENDING",
				}},
			},
		}},
	}
	_, err = w.svc.Spreadsheets.BatchUpdate(w.Config.Sheets.SpreadsheetID, request).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sorting by date: %w", err)
	}
	w.logger.Debug("sorted rows by date")
	return nil
}

// Reset removes every row except the header.
func (w *Writer) Reset(ctx context.Context) error {
	return w.clear(ctx)
}

func (w *Writer) clear(ctx context.Context) error {
	clearRange := fmt.Sprintf("%s!A2:ZZ", w.Config.Sheets.SheetName)
	_, err := w.svc.Spreadsheets.Values.Clear(w.Config.Sheets.SpreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clearing rows: %w", err)
	}
	return nil
}

func (w *Writer) resolveSheetID(ctx context.Context) (int64, error) {
	if w.sheetID != nil {
		return *w.sheetID, nil
	}
	spreadsheet, err := w.svc.Spreadsheets.Get(w.Config.Sheets.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("reading spreadsheet metadata: %w", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == w.Config.Sheets.SheetName {
			w.sheetID = &sheet.Properties.SheetId
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q: %w", w.Config.Sheets.SheetName, plaidsheets.ErrNotFound)
}

// idSet flattens a single-column read into the set of non-blank IDs.
func idSet(values [][]any) plaidsheets.IDSet {
	set := plaidsheets.IDSet{}
	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		if id := fmt.Sprint(row[0]); id != "" {
			set[id] = true
		}
	}
	return set
}

// cellString returns the first cell of a single-cell read, or "".
func cellString(values [][]any) string {
	if len(values) == 0 || len(values[0]) == 0 {
		return ""
	}
	return fmt.Sprint(values[0][0])
}

// columnLetter converts a 1-based column position to its A1 letter, e.g.
// 2 -> B, 27 -> AA.
func columnLetter(position int) string {
	letters := ""
	for position > 0 {
		position--
		letters = string(rune('A'+position%26)) + letters
		position /= 26
	}
	return letters
}
