package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"delvelife/internal/adapter/repo/gorm/model"
	"delvelife/internal/app/ports"
)

type RewardLedgerRepo struct {
	db *gorm.DB
}

func NewRewardLedgerRepo(db *gorm.DB) RewardLedgerRepo {
	return RewardLedgerRepo{db: db}
}

func (r RewardLedgerRepo) Add(ctx context.Context, runID string, coins int, grantedAt time.Time) error {
	m := model.RewardEntry{
		RunID:     runID,
		Coins:     coins,
		GrantedAt: grantedAt,
	}
	err := getDBFromCtx(ctx, r.db).Create(&m).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}

func (r RewardLedgerRepo) Balance(ctx context.Context) (int, error) {
	var total int64
	err := getDBFromCtx(ctx, r.db).
		Model(&model.RewardEntry{}).
		Select("COALESCE(SUM(coins), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}
