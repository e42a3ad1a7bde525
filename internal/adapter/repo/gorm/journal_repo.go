package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"delvelife/internal/adapter/repo/gorm/model"
	"delvelife/internal/app/ports"
)

type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) JournalRepo {
	return JournalRepo{db: db}
}

func (r JournalRepo) Append(ctx context.Context, entries []ports.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]model.JournalEntry, 0, len(entries))
	for _, e := range entries {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.JournalEntry{
			ID:         e.ID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r JournalRepo) List(ctx context.Context, limit int) ([]ports.JournalEntry, error) {
	rows := []model.JournalEntry{}
	query := getDBFromCtx(ctx, r.db).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.JournalEntry, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, ports.JournalEntry{
			ID:         row.ID,
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
