package repository

import (
	"context"
	"strconv"
	"strings"

	"studyquiz_backend/internal/model"
)

// Column layout of the history table, 1-indexed:
// 1 user_id, 2 date, 3 title, 4 score, 5 correct, 6 total,
// 7 quiz_data, 8 summary_data, 9 archived.
var HistoryColumns = []string{
	"user_id", "date", "title", "score", "correct", "total",
	"quiz_data", "summary_data", "archived",
}

// HistoryRepository is the tabular store adapter. Rows are keyed by the pair
// (user_id, date label); lookups are linear scans and the first match wins,
// which keeps the same-minute collision semantics of the sheet.
type HistoryRepository interface {
	// EnsureArchivedColumn self-migrates the archived column into the header.
	// It never fails the caller; a missing column only makes archived-state
	// reads default to false.
	EnsureArchivedColumn(ctx context.Context) error

	// LoadAll returns the user's records in stored order.
	LoadAll(ctx context.Context, userID string) ([]model.HistoryRecord, error)

	// Append adds a new row at the end of the table, archived left blank.
	Append(ctx context.Context, rec model.HistoryRecord) error

	// Upsert overwrites title/score/correct/total/quiz_data/summary_data of
	// the row keyed by (rec.UserID, rec.DateLabel), never touching archived,
	// or appends a fresh row when the key is absent.
	Upsert(ctx context.Context, rec model.HistoryRecord) error

	UpdateTitle(ctx context.Context, userID, dateLabel, title string) error
	SetArchived(ctx context.Context, userID, dateLabel string, archived bool) error

	// Delete removes the row outright; irreversible.
	Delete(ctx context.Context, userID, dateLabel string) error

	// DeleteAll removes every row owned by userID.
	DeleteAll(ctx context.Context, userID string) error
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseIntCell(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// The sheet stores TRUE for archived and a blank cell for active. Older rows
// written before the column existed read back as active.
func archivedCell(archived bool) string {
	if archived {
		return "TRUE"
	}
	return ""
}

func parseArchivedCell(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "1":
		return true
	}
	return false
}

func recordToCells(rec model.HistoryRecord) []string {
	title := rec.Title
	if title == "" {
		title = model.DefaultTitle
	}
	return []string{
		rec.UserID,
		rec.DateLabel,
		title,
		intCell(rec.Score),
		intCell(rec.Correct),
		intCell(rec.Total),
		model.EncodeQuizItems(rec.QuizData),
		rec.SummaryData,
		archivedCell(rec.Archived),
	}
}

func recordFromCells(cells []string) model.HistoryRecord {
	get := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	title := get(2)
	if title == "" {
		title = model.DefaultTitle
	}
	return model.HistoryRecord{
		UserID:      get(0),
		DateLabel:   get(1),
		Title:       title,
		Score:       parseIntCell(get(3)),
		Correct:     parseIntCell(get(4)),
		Total:       parseIntCell(get(5)),
		QuizData:    model.DecodeQuizItems(get(6)),
		SummaryData: get(7),
		Archived:    parseArchivedCell(get(8)),
	}
}
