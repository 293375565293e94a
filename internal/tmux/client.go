// Package tmux provides a small wrapper for tmux command execution.
package tmux

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/palettelabs/shade/internal/models"
)

// ErrNoServer indicates no tmux server is running for the current user.
var ErrNoServer = errors.New("tmux server not running")

// ThemeOption is the tmux user option holding the applied theme name.
const ThemeOption = "@shade_theme"

// Executor runs tmux commands.
type Executor interface {
	Exec(ctx context.Context, cmd string) (stdout, stderr []byte, err error)
}

// Client wraps tmux command helpers.
type Client struct {
	exec Executor
}

// NewClient creates a new tmux client.
func NewClient(exec Executor) *Client {
	return &Client{exec: exec}
}

// NewLocalClient creates a tmux client backed by the local shell.
func NewLocalClient() *Client {
	return NewClient(LocalExecutor{})
}

// ApplyTheme sets the global tmux style options from a palette and
// records the theme name in the @shade_theme user option.
func (c *Client) ApplyTheme(ctx context.Context, theme string, p models.Palette) error {
	options := []struct {
		name  string
		value string
	}{
		{ThemeOption, theme},
		{"status-style", fmt.Sprintf("bg=%s,fg=%s", p.SelectionBackground, p.Foreground)},
		{"message-style", fmt.Sprintf("bg=%s,fg=%s", p.SelectionBackground, p.Foreground)},
		{"mode-style", fmt.Sprintf("bg=%s,fg=%s", p.SelectionBackground, p.SelectionForeground)},
		{"pane-border-style", fmt.Sprintf("fg=%s", p.SelectionBackground)},
		{"pane-active-border-style", fmt.Sprintf("fg=%s", p.CursorColor)},
		{"window-status-current-style", fmt.Sprintf("bg=%s,fg=%s", p.CursorColor, p.Background)},
	}

	for _, opt := range options {
		cmd := fmt.Sprintf("tmux set -g %s %s", opt.name, quoteArg(opt.value))
		if _, stderr, err := c.exec.Exec(ctx, cmd); err != nil {
			if isNoServerRunning(stderr) {
				return ErrNoServer
			}
			return fmt.Errorf("tmux set %s failed: %w", opt.name, err)
		}
	}

	return nil
}

// CurrentTheme returns the theme name recorded in @shade_theme. The
// empty string means no theme has been applied.
func (c *Client) CurrentTheme(ctx context.Context) (string, error) {
	stdout, stderr, err := c.exec.Exec(ctx, "tmux show -gqv "+ThemeOption)
	if err != nil {
		if isNoServerRunning(stderr) {
			return "", ErrNoServer
		}
		return "", fmt.Errorf("tmux show failed: %w", err)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// DisplayMessage shows a transient message in the tmux status line.
func (c *Client) DisplayMessage(ctx context.Context, msg string) error {
	cmd := "tmux display-message " + quoteArg(msg)
	if _, stderr, err := c.exec.Exec(ctx, cmd); err != nil {
		if isNoServerRunning(stderr) {
			return ErrNoServer
		}
		return fmt.Errorf("tmux display-message failed: %w", err)
	}
	return nil
}

// Session describes a tmux session.
type Session struct {
	Name        string
	WindowCount int
}

// ListSessions returns all known tmux sessions. A missing server yields
// an empty list, not an error.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	stdout, stderr, err := c.exec.Exec(ctx, "tmux list-sessions -F '#{session_name}|#{session_windows}'")
	if err != nil {
		if isNoServerRunning(stderr) {
			return []Session{}, nil
		}
		return nil, fmt.Errorf("tmux list-sessions failed: %w", err)
	}

	output := strings.TrimSpace(string(stdout))
	if output == "" {
		return []Session{}, nil
	}

	lines := strings.Split(output, "\n")
	sessions := make([]Session, 0, len(lines))

	for _, line := range lines {
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unexpected tmux output line: %q", line)
		}

		count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid window count in tmux output: %q", line)
		}

		sessions = append(sessions, Session{
			Name:        strings.TrimSpace(parts[0]),
			WindowCount: count,
		})
	}

	return sessions, nil
}

// quoteArg single-quotes a shell argument.
func quoteArg(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isNoServerRunning(stderr []byte) bool {
	return strings.Contains(strings.ToLower(string(stderr)), "no server running")
}
