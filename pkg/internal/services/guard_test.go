package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncGuardMutualExclusion(t *testing.T) {
	guard := NewSyncGuard(5 * time.Minute)

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = guard.TryAcquire()
		}(i)
	}
	wg.Wait()

	assert.NotEqual(t, results[0], results[1], "exactly one of two concurrent acquires should win")
}

func TestSyncGuardExpiry(t *testing.T) {
	current := time.Unix(1700000000, 0)
	guard := NewSyncGuard(5 * time.Minute)
	guard.now = func() time.Time { return current }

	assert.True(t, guard.TryAcquire())
	assert.False(t, guard.TryAcquire())

	current = current.Add(4 * time.Minute)
	assert.False(t, guard.TryAcquire(), "guard should still be held before the TTL passes")

	current = current.Add(2 * time.Minute)
	assert.True(t, guard.TryAcquire(), "guard should self-release after the TTL")
}

func TestSyncGuardRelease(t *testing.T) {
	guard := NewSyncGuard(5 * time.Minute)

	assert.True(t, guard.TryAcquire())
	assert.False(t, guard.TryAcquire())

	guard.Release()
	assert.True(t, guard.TryAcquire())
}
