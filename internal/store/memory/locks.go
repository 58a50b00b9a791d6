package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hance08/ledger/internal/store"
)

// lockTable hands out one exclusive slot per account ID.
type lockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{slots: make(map[string]chan struct{})}
}

func (l *lockTable) slot(id string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[id]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[id] = ch
	}
	return ch
}

// acquire blocks until the slot is free, the context ends, or timeout passes.
func (l *lockTable) acquire(ctx context.Context, id string, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case l.slot(id) <- struct{}{}:
		return nil
	case <-timer.C:
		return fmt.Errorf("account %s: %w", id, store.ErrLockTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *lockTable) release(id string) {
	<-l.slot(id)
}
