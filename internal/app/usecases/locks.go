package usecases

import (
	"errors"
	"sync"
)

// ErrSyncInProgress is returned when a reconciliation for the same merchant is
// already running. Overlapping runs would interleave upserts.
var ErrSyncInProgress = errors.New("sync already running for merchant")

type merchantLocks struct {
	mu     sync.Mutex
	locked map[string]bool
}

func newMerchantLocks() *merchantLocks {
	return &merchantLocks{locked: make(map[string]bool)}
}

// tryAcquire takes the per-merchant lock or fails fast. The returned release
// function must be called exactly once.
func (l *merchantLocks) tryAcquire(merchantKey string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked[merchantKey] {
		return nil, ErrSyncInProgress
	}
	l.locked[merchantKey] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.locked, merchantKey)
	}, nil
}
