package repository

import (
	"context"
	"fmt"

	"studyquiz_backend/internal/config"
	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/util"
	"studyquiz_backend/pkg/logger"
	"studyquiz_backend/pkg/monitoring"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsHistoryRepository keeps attempt history in a shared Google
// spreadsheet. One row per attempt, header row first, columns per
// HistoryColumns. There are no transactions: every find-then-write pair can
// race a concurrent writer, which the tool accepts for its single-user sheets.
type SheetsHistoryRepository struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
	sheetID       int64
	sheetIDKnown  bool
}

func NewSheetsHistoryRepository(ctx context.Context, cfg config.SheetsConfig) (*SheetsHistoryRepository, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	return &SheetsHistoryRepository{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheet:         cfg.SheetName,
	}, nil
}

// readRows fetches the whole table including the header row.
func (r *SheetsHistoryRepository) readRows(ctx context.Context) ([][]string, error) {
	rng := fmt.Sprintf("%s!A1:I", r.sheet)
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// findRow returns the 1-based sheet row of the first data row matching the
// key, or 0 when absent. Row 1 is the header.
func (r *SheetsHistoryRepository) findRow(ctx context.Context, userID, dateLabel string) (int, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) >= 2 && row[0] == userID && row[1] == dateLabel {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (r *SheetsHistoryRepository) EnsureArchivedColumn(ctx context.Context) error {
	rng := fmt.Sprintf("%s!1:1", r.sheet)
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		logger.Log.Warn("archived column check skipped", zap.Error(err))
		return nil
	}

	var headers []string
	if len(resp.Values) > 0 {
		for _, cell := range resp.Values[0] {
			headers = append(headers, fmt.Sprint(cell))
		}
	}
	for _, h := range headers {
		if h == "archived" {
			return nil
		}
	}

	cell := fmt.Sprintf("%s!%s1", r.sheet, columnLetter(len(headers)+1))
	vr := &sheets.ValueRange{Values: [][]interface{}{{"archived"}}}
	_, err = r.svc.Spreadsheets.Values.Update(r.spreadsheetID, cell, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		// Reads then fall back to archived=false; never fail the caller.
		logger.Log.Warn("could not add archived column", zap.Error(err))
	}
	return nil
}

func (r *SheetsHistoryRepository) LoadAll(ctx context.Context, userID string) ([]model.HistoryRecord, error) {
	if err := r.EnsureArchivedColumn(ctx); err != nil {
		return nil, err
	}
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}

	var records []model.HistoryRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 || row[0] != userID {
			continue
		}
		records = append(records, recordFromCells(row))
	}
	return records, nil
}

func (r *SheetsHistoryRepository) Append(ctx context.Context, rec model.HistoryRecord) error {
	if err := r.EnsureArchivedColumn(ctx); err != nil {
		return err
	}

	cells := recordToCells(rec)
	// New rows are never born archived.
	cells[8] = ""

	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}

	rng := fmt.Sprintf("%s!A1:I", r.sheet)
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("append").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SheetsHistoryRepository) Upsert(ctx context.Context, rec model.HistoryRecord) error {
	row, err := r.findRow(ctx, rec.UserID, rec.DateLabel)
	if err != nil {
		return err
	}
	if row == 0 {
		return r.Append(ctx, rec)
	}

	cells := recordToCells(rec)
	// Overwrite columns C..H in place; archived (I) is left untouched.
	rng := fmt.Sprintf("%s!C%d:H%d", r.sheet, row, row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{
		cells[2], cells[3], cells[4], cells[5], cells[6], cells[7],
	}}}
	_, err = r.svc.Spreadsheets.Values.Update(r.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("upsert").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SheetsHistoryRepository) UpdateTitle(ctx context.Context, userID, dateLabel, title string) error {
	row, err := r.findRow(ctx, userID, dateLabel)
	if err != nil {
		return err
	}
	if row == 0 {
		return util.ErrHistoryNotFound
	}

	rng := fmt.Sprintf("%s!C%d", r.sheet, row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{title}}}
	_, err = r.svc.Spreadsheets.Values.Update(r.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("update_title").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SheetsHistoryRepository) SetArchived(ctx context.Context, userID, dateLabel string, archived bool) error {
	if err := r.EnsureArchivedColumn(ctx); err != nil {
		return err
	}
	row, err := r.findRow(ctx, userID, dateLabel)
	if err != nil {
		return err
	}
	if row == 0 {
		return util.ErrHistoryNotFound
	}

	rng := fmt.Sprintf("%s!I%d", r.sheet, row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{archivedCell(archived)}}}
	_, err = r.svc.Spreadsheets.Values.Update(r.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("set_archived").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SheetsHistoryRepository) Delete(ctx context.Context, userID, dateLabel string) error {
	row, err := r.findRow(ctx, userID, dateLabel)
	if err != nil {
		return err
	}
	if row == 0 {
		return util.ErrHistoryNotFound
	}
	return r.deleteRow(ctx, row)
}

func (r *SheetsHistoryRepository) DeleteAll(ctx context.Context, userID string) error {
	rows, err := r.readRows(ctx)
	if err != nil {
		return err
	}

	// Collect matches and delete bottom-up so earlier deletes do not shift
	// the remaining indexes.
	var targets []int
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 0 && row[0] == userID {
			targets = append(targets, i+1)
		}
	}
	for i := len(targets) - 1; i >= 0; i-- {
		if err := r.deleteRow(ctx, targets[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SheetsHistoryRepository) deleteRow(ctx context.Context, row int) error {
	gid, err := r.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    gid,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}
	_, err = r.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SheetsHistoryRepository) resolveSheetID(ctx context.Context) (int64, error) {
	if r.sheetIDKnown {
		return r.sheetID, nil
	}
	ss, err := r.svc.Spreadsheets.Get(r.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == r.sheet {
			r.sheetID = s.Properties.SheetId
			r.sheetIDKnown = true
			return r.sheetID, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet", r.sheet)
}

// columnLetter converts a 1-based column number to its A1 letter.
func columnLetter(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
