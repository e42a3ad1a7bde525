package observe

import (
	"context"

	"delvelife/internal/app/ports"
)

type UseCase struct {
	Sim    ports.Simulation
	Ledger ports.RewardLedgerRepository
}

func (u UseCase) Execute(ctx context.Context) (Response, error) {
	snap := u.Sim.Snapshot()

	resp := Response{
		Name:     snap.Name,
		State:    snap.State,
		Position: snap.Position,
		Target:   snap.Target,
		Needs:    snap.Needs,
	}
	if snap.Pending != nil {
		resp.PendingNeed = &NeedView{Kind: string(snap.Pending.Kind), Seconds: snap.Pending.Duration}
	}
	if snap.Active != nil {
		resp.ActiveNeed = &NeedView{Kind: string(snap.Active.Kind), Seconds: snap.Active.Remaining}
	}
	if snap.Run != nil {
		resp.Run = &RunView{
			ID:         snap.Run.ID,
			Phase:      string(snap.Run.Phase),
			LevelIndex: snap.Run.LevelIndex,
			LevelCount: snap.Run.LevelCount,
			Progress:   snap.Run.Progress,
			Cleared:    snap.Run.Cleared,
		}
	}
	if u.Ledger != nil {
		balance, err := u.Ledger.Balance(ctx)
		if err != nil {
			return Response{}, err
		}
		resp.RewardBalance = balance
	}
	return resp, nil
}
