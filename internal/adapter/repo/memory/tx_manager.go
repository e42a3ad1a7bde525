package memory

import (
	"context"
	"sync"
)

type TxManager struct {
	txMu *sync.Mutex
}

func NewTxManager(_ *Store) TxManager {
	return TxManager{txMu: &sync.Mutex{}}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	return fn(ctx)
}
