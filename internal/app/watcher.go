package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartWatcher polls the modification time of path and calls onChange
// when it moves. It returns immediately. Failed stats and reloads back off
// exponentially up to maxBackoff; a change that fails to load is retried.
func StartWatcher(ctx context.Context, path string, every time.Duration, onChange func() error) {
	if every <= 0 {
		every = defaultPollInterval
	}
	last, _ := modTime(path)
	go func() {
		timer := time.NewTimer(every)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			mod, err := modTime(path)
			if err == nil && !mod.Equal(last) {
				if err = onChange(); err == nil {
					last = mod
				}
			}
			if err != nil {
				failures++
				wait := calculateBackoff(failures, every)
				log.Warn("model reload failed", "path", path, "failures", failures, "retry_in", wait, "error", err)
				timer.Reset(wait)
				continue
			}
			failures = 0
			timer.Reset(every)
		}
	}()
}

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat model: %w", err)
	}
	return info.ModTime(), nil
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
