package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"delvelife/internal/adapter/repo/gorm/model"
	"delvelife/internal/app/ports"
)

type RunRecordRepo struct {
	db *gorm.DB
}

func NewRunRecordRepo(db *gorm.DB) RunRecordRepo {
	return RunRecordRepo{db: db}
}

func (r RunRecordRepo) Save(ctx context.Context, record ports.RunRecord) error {
	m := model.RunRecord{
		RunID:       record.RunID,
		Levels:      record.Levels,
		Cleared:     record.Cleared,
		Aborted:     record.Aborted,
		RewardCoins: record.RewardCoins,
		FinishedAt:  record.FinishedAt,
	}
	err := getDBFromCtx(ctx, r.db).Create(&m).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}

func (r RunRecordRepo) GetByRunID(ctx context.Context, runID string) (ports.RunRecord, error) {
	var m model.RunRecord
	err := getDBFromCtx(ctx, r.db).
		Where(&model.RunRecord{RunID: runID}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RunRecord{}, ports.ErrNotFound
		}
		return ports.RunRecord{}, err
	}
	return recordFromModel(m), nil
}

func (r RunRecordRepo) List(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	rows := []model.RunRecord{}
	query := getDBFromCtx(ctx, r.db).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "finished_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.RunRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, recordFromModel(m))
	}
	return out, nil
}

func recordFromModel(m model.RunRecord) ports.RunRecord {
	return ports.RunRecord{
		RunID:       m.RunID,
		Levels:      m.Levels,
		Cleared:     m.Cleared,
		Aborted:     m.Aborted,
		RewardCoins: m.RewardCoins,
		FinishedAt:  m.FinishedAt,
	}
}
