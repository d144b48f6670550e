package repository

import (
	"context"
	"errors"
	"fmt"

	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/util"
	"studyquiz_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// MySQLHistoryRepository maps the same flat 9-column row onto a single table
// for deployments without a shared spreadsheet. Semantics match the sheets
// driver: string-keyed rows, first match wins, blank cells for unset values.
type MySQLHistoryRepository struct {
	db *gorm.DB
}

func NewMySQLHistoryRepository(db *gorm.DB) *MySQLHistoryRepository {
	return &MySQLHistoryRepository{db: db}
}

// EnsureArchivedColumn is a no-op: the column is part of the migrated schema.
func (r *MySQLHistoryRepository) EnsureArchivedColumn(ctx context.Context) error {
	return nil
}

func (r *MySQLHistoryRepository) LoadAll(ctx context.Context, userID string) ([]model.HistoryRecord, error) {
	var rows []model.HistoryRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	records := make([]model.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToRecord(row))
	}
	return records, nil
}

func (r *MySQLHistoryRepository) Append(ctx context.Context, rec model.HistoryRecord) error {
	row := recordToRow(rec)
	row.Archived = ""
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("append").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *MySQLHistoryRepository) Upsert(ctx context.Context, rec model.HistoryRecord) error {
	row, err := r.findRow(ctx, rec.UserID, rec.DateLabel)
	if err != nil {
		if errors.Is(err, util.ErrHistoryNotFound) {
			return r.Append(ctx, rec)
		}
		return err
	}

	updated := recordToRow(rec)
	err = r.db.WithContext(ctx).Model(&model.HistoryRow{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			// archived is deliberately not part of an upsert
			"title":        updated.Title,
			"score":        updated.Score,
			"correct":      updated.Correct,
			"total":        updated.Total,
			"quiz_data":    updated.QuizData,
			"summary_data": updated.SummaryData,
		}).Error
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("upsert").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *MySQLHistoryRepository) UpdateTitle(ctx context.Context, userID, dateLabel, title string) error {
	return r.updateField(ctx, userID, dateLabel, "update_title", "title", title)
}

func (r *MySQLHistoryRepository) SetArchived(ctx context.Context, userID, dateLabel string, archived bool) error {
	value := ""
	if archived {
		value = "TRUE"
	}
	return r.updateField(ctx, userID, dateLabel, "set_archived", "archived", value)
}

func (r *MySQLHistoryRepository) Delete(ctx context.Context, userID, dateLabel string) error {
	row, err := r.findRow(ctx, userID, dateLabel)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&model.HistoryRow{}, row.ID).Error; err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *MySQLHistoryRepository) DeleteAll(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.HistoryRow{}).Error
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *MySQLHistoryRepository) updateField(ctx context.Context, userID, dateLabel, op, column string, value string) error {
	row, err := r.findRow(ctx, userID, dateLabel)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&model.HistoryRow{}).
		Where("id = ?", row.ID).
		Update(column, value).Error
	if err != nil {
		monitoring.HistoryStoreErrors.WithLabelValues(op).Inc()
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *MySQLHistoryRepository) findRow(ctx context.Context, userID, dateLabel string) (*model.HistoryRow, error) {
	var row model.HistoryRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_label = ?", userID, dateLabel).
		Order("id asc").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHistoryNotFound
		}
		monitoring.HistoryStoreErrors.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return &row, nil
}

func recordToRow(rec model.HistoryRecord) model.HistoryRow {
	cells := recordToCells(rec)
	return model.HistoryRow{
		UserID:      cells[0],
		DateLabel:   cells[1],
		Title:       cells[2],
		Score:       cells[3],
		Correct:     cells[4],
		Total:       cells[5],
		QuizData:    cells[6],
		SummaryData: cells[7],
		Archived:    cells[8],
	}
}

func rowToRecord(row model.HistoryRow) model.HistoryRecord {
	return recordFromCells([]string{
		row.UserID, row.DateLabel, row.Title,
		row.Score, row.Correct, row.Total,
		row.QuizData, row.SummaryData, row.Archived,
	})
}
