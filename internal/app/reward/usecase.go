package reward

import (
	"context"
	"errors"
	"time"

	"delvelife/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid reward request")

const (
	CoinsPerLevel  = 10
	FullClearBonus = 25
)

type GrantRequest struct {
	RunID   string
	Levels  int
	Cleared int
	Aborted bool
}

type GrantResponse struct {
	Coins   int
	Replay  bool // true when the run was already credited
	Balance int
}

// UseCase settles the bookkeeping for one finished run: a run record plus a
// ledger credit, written in one transaction. Granting the same run twice is
// idempotent and returns the recorded amount.
type UseCase struct {
	Tx     ports.TxManager
	Runs   ports.RunRecordRepository
	Ledger ports.RewardLedgerRepository
	Now    func() time.Time
}

func (u UseCase) Grant(ctx context.Context, req GrantRequest) (GrantResponse, error) {
	if req.RunID == "" || req.Levels <= 0 || req.Cleared < 0 || req.Cleared > req.Levels {
		return GrantResponse{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	coins := req.Cleared * CoinsPerLevel
	if !req.Aborted && req.Cleared == req.Levels {
		coins += FullClearBonus
	}

	var out GrantResponse
	err := u.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := u.Runs.GetByRunID(txCtx, req.RunID)
		if err == nil {
			balance, err := u.Ledger.Balance(txCtx)
			if err != nil {
				return err
			}
			out = GrantResponse{Coins: existing.RewardCoins, Replay: true, Balance: balance}
			return nil
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		now := nowFn()
		if err := u.Runs.Save(txCtx, ports.RunRecord{
			RunID:       req.RunID,
			Levels:      req.Levels,
			Cleared:     req.Cleared,
			Aborted:     req.Aborted,
			RewardCoins: coins,
			FinishedAt:  now,
		}); err != nil {
			return err
		}
		if err := u.Ledger.Add(txCtx, req.RunID, coins, now); err != nil {
			return err
		}
		balance, err := u.Ledger.Balance(txCtx)
		if err != nil {
			return err
		}
		out = GrantResponse{Coins: coins, Balance: balance}
		return nil
	})
	if err != nil {
		return GrantResponse{}, err
	}
	return out, nil
}

type HistoryRequest struct {
	Limit int
}

type HistoryResponse struct {
	Runs []ports.RunRecord `json:"runs"`
}

const defaultHistoryLimit = 20

func (u UseCase) History(ctx context.Context, req HistoryRequest) (HistoryResponse, error) {
	if req.Limit < 0 {
		return HistoryResponse{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	runs, err := u.Runs.List(ctx, limit)
	if err != nil {
		return HistoryResponse{}, err
	}
	return HistoryResponse{Runs: runs}, nil
}
