package repository

import (
	"testing"

	"studyquiz_backend/internal/model"
)

func TestRecordCellsRoundTrip(t *testing.T) {
	score, correct, total := 80, 12, 15
	rec := model.HistoryRecord{
		UserID:      "yuki",
		DateLabel:   "2026/08/30 14:05",
		Title:       "物理の復習",
		Score:       &score,
		Correct:     &correct,
		Total:       &total,
		QuizData:    []model.QuizItem{{Question: "q", Answer: "a"}},
		SummaryData: "summary text",
		Archived:    true,
	}

	got := recordFromCells(recordToCells(rec))

	if got.UserID != rec.UserID || got.DateLabel != rec.DateLabel || got.Title != rec.Title {
		t.Errorf("key fields changed: %+v", got)
	}
	if got.Score == nil || *got.Score != 80 || got.Total == nil || *got.Total != 15 {
		t.Errorf("numeric cells changed: %+v", got)
	}
	if !got.Archived {
		t.Error("archived flag lost")
	}
	if len(got.QuizData) != 1 || got.QuizData[0].Question != "q" {
		t.Errorf("quiz data changed: %+v", got.QuizData)
	}
}

func TestRecordToCellsUngraded(t *testing.T) {
	cells := recordToCells(model.HistoryRecord{UserID: "u", DateLabel: "2026/08/30 14:05"})

	if len(cells) != len(HistoryColumns) {
		t.Fatalf("got %d cells, want %d", len(cells), len(HistoryColumns))
	}
	// score, correct, total stay blank until graded; archived blank while active
	for _, i := range []int{3, 4, 5, 8} {
		if cells[i] != "" {
			t.Errorf("cell %s = %q, want blank", HistoryColumns[i], cells[i])
		}
	}
	if cells[2] != model.DefaultTitle {
		t.Errorf("blank title should store as %q, got %q", model.DefaultTitle, cells[2])
	}
	if cells[6] != "[]" {
		t.Errorf("empty quiz should store as [], got %q", cells[6])
	}
}

func TestRecordFromCellsShortRow(t *testing.T) {
	// rows written before the archived column existed have 8 cells
	rec := recordFromCells([]string{"u", "2026/01/01 09:00", "t", "50", "1", "2", "[]", "s"})
	if rec.Archived {
		t.Error("missing archived cell should read as active")
	}
	if rec.Score == nil || *rec.Score != 50 {
		t.Errorf("score = %v", rec.Score)
	}
}

func TestParseArchivedCell(t *testing.T) {
	cases := map[string]bool{
		"TRUE": true, "true": true, " True ": true, "1": true,
		"": false, "FALSE": false, "0": false, "no": false,
	}
	for in, want := range cases {
		if got := parseArchivedCell(in); got != want {
			t.Errorf("parseArchivedCell(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseIntCell(t *testing.T) {
	if v := parseIntCell(" 42 "); v == nil || *v != 42 {
		t.Errorf("parseIntCell(\" 42 \") = %v", v)
	}
	for _, in := range []string{"", "abc", "1.5"} {
		if v := parseIntCell(in); v != nil {
			t.Errorf("parseIntCell(%q) = %v, want nil", in, *v)
		}
	}
}
