// Package cli provides progress output for commands that touch files.
package cli

import (
	"fmt"
	"os"
	"time"
)

// task prints "label... done" progress on stderr. A nil task is inert,
// which keeps call sites free of enabled checks.
type task struct {
	started time.Time
}

func startProgress(label string) *task {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(os.Stderr, "%s... ", label)
	return &task{started: time.Now()}
}

func (t *task) Done() {
	if t == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "done (%s)\n", time.Since(t.started).Round(time.Millisecond))
}

func (t *task) Fail(err error) {
	if t == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "failed")
}

// Progress is suppressed for machine-readable output, where stderr
// noise would interleave with piped stdout in a terminal.
func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if noProgress {
		return false
	}
	if _, ok := os.LookupEnv("SHADE_NO_PROGRESS"); ok {
		return false
	}
	return true
}
