package service_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/service"
	"studyquiz_backend/internal/util"
	"studyquiz_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeHistoryRepo keeps rows in a slice so stored order is observable, like
// the sheet it stands in for.
type fakeHistoryRepo struct {
	rows    []model.HistoryRecord
	loadErr error
}

func (f *fakeHistoryRepo) EnsureArchivedColumn(ctx context.Context) error { return nil }

func (f *fakeHistoryRepo) LoadAll(ctx context.Context, userID string) ([]model.HistoryRecord, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	var out []model.HistoryRecord
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) Append(ctx context.Context, rec model.HistoryRecord) error {
	f.rows = append(f.rows, rec)
	return nil
}

func (f *fakeHistoryRepo) Upsert(ctx context.Context, rec model.HistoryRecord) error {
	for i, r := range f.rows {
		if r.UserID == rec.UserID && r.DateLabel == rec.DateLabel {
			rec.Archived = r.Archived
			f.rows[i] = rec
			return nil
		}
	}
	return f.Append(ctx, rec)
}

func (f *fakeHistoryRepo) UpdateTitle(ctx context.Context, userID, dateLabel, title string) error {
	i, err := f.find(userID, dateLabel)
	if err != nil {
		return err
	}
	f.rows[i].Title = title
	return nil
}

func (f *fakeHistoryRepo) SetArchived(ctx context.Context, userID, dateLabel string, archived bool) error {
	i, err := f.find(userID, dateLabel)
	if err != nil {
		return err
	}
	f.rows[i].Archived = archived
	return nil
}

func (f *fakeHistoryRepo) Delete(ctx context.Context, userID, dateLabel string) error {
	i, err := f.find(userID, dateLabel)
	if err != nil {
		return err
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

func (f *fakeHistoryRepo) DeleteAll(ctx context.Context, userID string) error {
	var kept []model.HistoryRecord
	for _, r := range f.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeHistoryRepo) find(userID, dateLabel string) (int, error) {
	for i, r := range f.rows {
		if r.UserID == userID && r.DateLabel == dateLabel {
			return i, nil
		}
	}
	return 0, util.ErrHistoryNotFound
}

func newHistoryService(repo *fakeHistoryRepo) *service.HistoryService {
	return service.NewHistoryService(repo, nil)
}

func TestListFiltersArchived(t *testing.T) {
	repo := &fakeHistoryRepo{rows: []model.HistoryRecord{
		{UserID: "u", DateLabel: "2026/01/01 10:00", Title: "A"},
		{UserID: "u", DateLabel: "2026/01/02 10:00", Title: "B", Archived: true},
		{UserID: "u", DateLabel: "2026/01/03 10:00", Title: "C"},
		{UserID: "other", DateLabel: "2026/01/04 10:00", Title: "D"},
	}}
	svc := newHistoryService(repo)
	ctx := context.Background()

	visible := svc.List(ctx, "u", false)
	if len(visible) != 2 || visible[0].Title != "A" || visible[1].Title != "C" {
		t.Fatalf("default listing = %+v, want [A C] in stored order", visible)
	}

	all := svc.List(ctx, "u", true)
	if len(all) != 3 || all[1].Title != "B" {
		t.Fatalf("include_archived listing = %+v, want [A B C]", all)
	}
}

func TestListDegradesToEmptyOnStoreFailure(t *testing.T) {
	repo := &fakeHistoryRepo{loadErr: errors.New("sheet unreachable")}
	svc := newHistoryService(repo)

	records := svc.List(context.Background(), "u", true)
	if records == nil || len(records) != 0 {
		t.Fatalf("got %#v, want empty non-nil slice", records)
	}
}

func TestSaveGradedArchivesPrevious(t *testing.T) {
	repo := &fakeHistoryRepo{rows: []model.HistoryRecord{
		{UserID: "u", DateLabel: "2026/01/01 10:00", Title: "draft"},
	}}
	svc := newHistoryService(repo)

	sum := service.GradeSummary{Correct: 3, Total: 4, Score: 75}
	rec, err := svc.SaveGraded(context.Background(), "u", "2026/01/01 10:00", "draft", "summary", nil, sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.rows) != 2 {
		t.Fatalf("got %d rows, want previous plus new", len(repo.rows))
	}
	if !repo.rows[0].Archived {
		t.Error("previous attempt should be archived")
	}
	latest := repo.rows[1]
	if latest.Archived {
		t.Error("new attempt should be active")
	}
	if latest.Score == nil || *latest.Score != 75 || latest.Correct == nil || *latest.Correct != 3 {
		t.Errorf("graded fields not persisted: %+v", latest)
	}
	if rec.DateLabel == "" {
		t.Error("saved record should carry its date label")
	}
}

func TestSaveGradedWithoutPrevious(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newHistoryService(repo)

	_, err := svc.SaveGraded(context.Background(), "u", "2026/01/01 10:00", "t", "", nil, service.GradeSummary{Total: 1})
	if err != nil {
		t.Fatalf("missing previous row should not block saving: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(repo.rows))
	}
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	repo := &fakeHistoryRepo{rows: []model.HistoryRecord{
		{UserID: "u", DateLabel: "2026/01/01 10:00", Title: "A", SummaryData: "s"},
	}}
	svc := newHistoryService(repo)
	ctx := context.Background()

	before := svc.List(ctx, "u", true)[0]

	if err := svc.Archive(ctx, "u", "2026/01/01 10:00"); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(svc.List(ctx, "u", false)) != 0 {
		t.Error("archived record should be hidden from default listing")
	}

	if err := svc.Restore(ctx, "u", "2026/01/01 10:00"); err != nil {
		t.Fatalf("restore: %v", err)
	}

	after := svc.List(ctx, "u", false)
	if len(after) != 1 {
		t.Fatal("restored record should be visible again")
	}
	after[0].Archived = before.Archived
	if after[0].Title != before.Title || after[0].SummaryData != before.SummaryData || after[0].DateLabel != before.DateLabel {
		t.Errorf("restore changed the record: before=%+v after=%+v", before, after[0])
	}
}

func TestArchiveMissingRecord(t *testing.T) {
	svc := newHistoryService(&fakeHistoryRepo{})
	err := svc.Archive(context.Background(), "u", "2026/01/01 10:00")
	if !errors.Is(err, util.ErrHistoryNotFound) {
		t.Fatalf("err = %v, want ErrHistoryNotFound", err)
	}
}

func TestPurgeAndClearAll(t *testing.T) {
	repo := &fakeHistoryRepo{rows: []model.HistoryRecord{
		{UserID: "u", DateLabel: "2026/01/01 10:00"},
		{UserID: "u", DateLabel: "2026/01/02 10:00"},
		{UserID: "other", DateLabel: "2026/01/03 10:00"},
	}}
	svc := newHistoryService(repo)
	ctx := context.Background()

	if err := svc.Purge(ctx, "u", "2026/01/01 10:00"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("got %d rows after purge, want 2", len(repo.rows))
	}

	if err := svc.ClearAll(ctx, "u"); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if len(repo.rows) != 1 || repo.rows[0].UserID != "other" {
		t.Errorf("clear all should only touch the caller's rows: %+v", repo.rows)
	}
}

func TestCreateDraftLeavesScoreUnset(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newHistoryService(repo)

	items := []model.QuizItem{{Question: "q", Answer: "a"}}
	rec, err := svc.CreateDraft(context.Background(), "u", "タイトル", "要約", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Score != nil || rec.Correct != nil || rec.Total != nil {
		t.Error("draft should have no grading fields")
	}
	if len(repo.rows) != 1 || repo.rows[0].Title != "タイトル" {
		t.Errorf("draft not persisted: %+v", repo.rows)
	}
}
