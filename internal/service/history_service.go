package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/repository"
	"studyquiz_backend/internal/util"
	"studyquiz_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HistoryService owns the lifecycle of quiz attempts: creation at generation
// time, the archive-old/append-new policy on grading, archive/restore/purge
// transitions, and the listing filter.
//
// Error policy follows the store contract: read paths degrade to an empty
// history (a user with an unreachable sheet sees no history, not an error),
// write paths surface their failure.
type HistoryService struct {
	repo     repository.HistoryRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewHistoryService(repo repository.HistoryRepository, rdb *redis.Client) *HistoryService {
	return &HistoryService{
		repo:     repo,
		rdb:      rdb,
		cacheTTL: 5 * time.Minute,
	}
}

func (s *HistoryService) cacheKey(userID string) string {
	return "history:" + userID
}

// List returns the user's attempts in stored order. Archived entries are
// hidden unless includeArchived is set.
func (s *HistoryService) List(ctx context.Context, userID string, includeArchived bool) []model.HistoryRecord {
	records := s.loadAll(ctx, userID)
	if includeArchived {
		return records
	}

	visible := make([]model.HistoryRecord, 0, len(records))
	for _, r := range records {
		if !r.Archived {
			visible = append(visible, r)
		}
	}
	return visible
}

func (s *HistoryService) loadAll(ctx context.Context, userID string) []model.HistoryRecord {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, s.cacheKey(userID)).Result(); err == nil {
			var records []model.HistoryRecord
			if json.Unmarshal([]byte(cached), &records) == nil {
				return records
			}
		}
	}

	records, err := s.repo.LoadAll(ctx, userID)
	if err != nil {
		logger.Log.Warn("history load degraded to empty",
			zap.String("user", userID), zap.Error(err))
		return []model.HistoryRecord{}
	}
	if records == nil {
		records = []model.HistoryRecord{}
	}

	if s.rdb != nil {
		if b, err := json.Marshal(records); err == nil {
			s.rdb.Set(ctx, s.cacheKey(userID), b, s.cacheTTL)
		}
	}
	return records
}

func (s *HistoryService) invalidate(ctx context.Context, userID string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, s.cacheKey(userID))
	}
}

// CreateDraft persists a freshly generated quiz under a new date label, with
// score left unset until grading.
func (s *HistoryService) CreateDraft(ctx context.Context, userID, title, summary string, items []model.QuizItem) (model.HistoryRecord, error) {
	rec := model.HistoryRecord{
		UserID:      userID,
		DateLabel:   model.NowDateLabel(),
		Title:       title,
		QuizData:    items,
		SummaryData: summary,
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return rec, err
	}
	s.invalidate(ctx, userID)
	return rec, nil
}

// SaveGraded implements the keep-every-attempt policy: the attempt is written
// as a new row under a fresh date label, and the previous label's row, when
// one exists, is archived rather than overwritten. Archiving is best-effort;
// a missing previous row does not block saving the new one.
func (s *HistoryService) SaveGraded(ctx context.Context, userID, prevDateLabel, title, summary string, items []model.QuizItem, sum GradeSummary) (model.HistoryRecord, error) {
	score, correct, total := sum.Score, sum.Correct, sum.Total
	rec := model.HistoryRecord{
		UserID:      userID,
		DateLabel:   model.NowDateLabel(),
		Title:       title,
		Score:       &score,
		Correct:     &correct,
		Total:       &total,
		QuizData:    items,
		SummaryData: summary,
	}

	if prevDateLabel != "" {
		err := s.repo.SetArchived(ctx, userID, prevDateLabel, true)
		if err != nil && !errors.Is(err, util.ErrHistoryNotFound) {
			logger.Log.Warn("could not archive previous attempt",
				zap.String("user", userID), zap.String("date", prevDateLabel), zap.Error(err))
		}
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return rec, err
	}
	s.invalidate(ctx, userID)
	return rec, nil
}

func (s *HistoryService) RenameTitle(ctx context.Context, userID, dateLabel, title string) error {
	if err := s.repo.UpdateTitle(ctx, userID, dateLabel, title); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Archive hides a record from the default listing. Safe to retry: archiving
// an archived record is a no-op by value.
func (s *HistoryService) Archive(ctx context.Context, userID, dateLabel string) error {
	if err := s.repo.SetArchived(ctx, userID, dateLabel, true); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Restore returns an archived record to the default listing.
func (s *HistoryService) Restore(ctx context.Context, userID, dateLabel string) error {
	if err := s.repo.SetArchived(ctx, userID, dateLabel, false); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Purge deletes a record's row outright. Irreversible.
func (s *HistoryService) Purge(ctx context.Context, userID, dateLabel string) error {
	if err := s.repo.Delete(ctx, userID, dateLabel); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// ClearAll deletes every record owned by the user.
func (s *HistoryService) ClearAll(ctx context.Context, userID string) error {
	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}
