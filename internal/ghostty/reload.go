package ghostty

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/palettelabs/shade/internal/logging"
	"github.com/rs/zerolog"
)

// Reload rate limit: one request per second, small burst for the
// startup apply-then-sync sequence.
const (
	reloadRatePerSec = 1.0
	reloadBurst      = 3
)

// Runner executes reload commands.
type Runner interface {
	Exec(ctx context.Context, cmd string) (stdout, stderr []byte, err error)
}

// ReloadResult reports a best-effort reload request. Err is
// informational; callers log it at most and never propagate it.
type ReloadResult struct {
	// Attempted indicates a reload was actually requested. False when
	// the host has no reload mechanism or the rate limit suppressed it.
	Attempted bool

	// Err holds the failure, if any.
	Err error
}

// Reloader asks a running Ghostty instance to re-read its configuration.
type Reloader struct {
	runner Runner
	bucket *tokenBucket
	logger zerolog.Logger
}

// NewReloader creates a Reloader backed by the given runner.
func NewReloader(runner Runner) *Reloader {
	return &Reloader{
		runner: runner,
		bucket: newTokenBucket(reloadRatePerSec, reloadBurst),
		logger: logging.Component("ghostty"),
	}
}

// Reload requests a configuration reload from the running Ghostty
// instance.
func (r *Reloader) Reload(ctx context.Context) ReloadResult {
	if !r.bucket.allow() {
		r.logger.Debug().Msg("reload suppressed by rate limit")
		return ReloadResult{}
	}

	cmd, ok := reloadCommand()
	if !ok {
		return ReloadResult{}
	}

	if _, stderr, err := r.runner.Exec(ctx, cmd); err != nil {
		err = fmt.Errorf("ghostty reload: %v: %s", err, bytes.TrimSpace(stderr))
		r.logger.Debug().Err(err).Msg("reload request failed")
		return ReloadResult{Attempted: true, Err: err}
	}

	r.logger.Debug().Msg("reload requested")
	return ReloadResult{Attempted: true}
}

// reloadCommand returns the host-specific reload mechanism. Ghostty
// re-reads its config on SIGUSR2; on macOS the reload_config keybind is
// driven through System Events.
func reloadCommand() (string, bool) {
	switch runtime.GOOS {
	case "darwin":
		return `osascript -e 'tell application "Ghostty" to activate' -e 'tell application "System Events" to keystroke "," using {command down, shift down}'`, true
	case "linux":
		return "pkill -USR2 -x ghostty", true
	default:
		return "", false
	}
}
