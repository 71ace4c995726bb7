package services

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	ErrSyncAlreadyRunning = errors.New("synchronization is already running")
	ErrSyncNotConfigured  = errors.New("synchronization agent is not configured")
)

var (
	syncGuard     *SyncGuard
	syncGuardOnce sync.Once
)

func GetSyncGuard() *SyncGuard {
	syncGuardOnce.Do(func() {
		ttl := viper.GetDuration("sync.guard_ttl")
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		syncGuard = NewSyncGuard(ttl)
	})
	return syncGuard
}

// TriggerAgentSync kicks the external synchronization agent in the
// background. The guard makes overlapping triggers a no-op.
func TriggerAgentSync() error {
	command := strings.TrimSpace(viper.GetString("sync.agent_command"))
	if len(command) == 0 {
		return ErrSyncNotConfigured
	}

	if !GetSyncGuard().TryAcquire() {
		log.Debug().Msg("External sync agent is already running, skipped.")
		return ErrSyncAlreadyRunning
	}

	go runAgentSync(command)

	return nil
}

func runAgentSync(command string) {
	defer GetSyncGuard().Release()

	timeout := viper.GetDuration("sync.agent_timeout")
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	parts := strings.Fields(command)
	start := time.Now()

	if out, err := exec.CommandContext(ctx, parts[0], parts[1:]...).CombinedOutput(); err != nil {
		log.Warn().Err(err).Str("output", strings.TrimSpace(string(out))).Msg("External sync agent exited abnormally...")
		return
	}

	FlushDataSourceCache()

	log.Info().Dur("elapsed", time.Since(start)).Msg("External sync agent finished.")
}
