package services

import (
	"sync"
	"time"
)

// SyncGuard is a time-bounded mutual exclusion flag. Acquisition is a
// mutex-protected check-and-set against an expiry deadline, so a holder
// that crashes without releasing stops blocking once the TTL passes.
type SyncGuard struct {
	mu       sync.Mutex
	ttl      time.Duration
	deadline time.Time
	now      func() time.Time
}

func NewSyncGuard(ttl time.Duration) *SyncGuard {
	return &SyncGuard{
		ttl: ttl,
		now: time.Now,
	}
}

// TryAcquire takes the guard when it is free or expired. Exactly one of any
// set of concurrent callers succeeds.
func (v *SyncGuard) TryAcquire() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.now().Before(v.deadline) {
		return false
	}

	v.deadline = v.now().Add(v.ttl)
	return true
}

func (v *SyncGuard) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.deadline = time.Time{}
}
