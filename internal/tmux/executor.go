package tmux

import (
	"bytes"
	"context"
	"os/exec"
)

// LocalExecutor runs commands through the local shell.
type LocalExecutor struct{}

func (LocalExecutor) Exec(ctx context.Context, cmd string) ([]byte, []byte, error) {
	c := exec.CommandContext(ctx, "sh", "-c", cmd)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
