package mux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct{}

// NewTmux creates a new tmux multiplexer.
func NewTmux() *Tmux {
	return &Tmux{}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// HasSession reports whether a session named exactly name exists.
// The "=" prefix forces exact matching; tmux otherwise treats the
// target as a prefix pattern.
func (t *Tmux) HasSession(ctx context.Context, name string) (bool, error) {
	_, err := t.run(ctx, "has-session", "-t", "="+name)
	if err != nil {
		// Non-zero exit means "no such session" (or no server at all).
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewSession creates a tmux session per opts. Detached sessions run
// tmux non-interactively; attaching sessions inherit the terminal and
// block until the user detaches.
func (t *Tmux) NewSession(ctx context.Context, opts SessionOptions) error {
	args := []string{"new-session"}
	if opts.Detached {
		args = append(args, "-d")
	}
	if opts.AttachIfExists {
		args = append(args, "-A")
	}
	args = append(args, "-s", opts.Name)
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	args = append(args, opts.Command...)

	if opts.Detached {
		_, err := t.run(ctx, args...)
		return err
	}
	return t.runInteractive(ctx, args...)
}

// NewWindow opens a window in the current session.
func (t *Tmux) NewWindow(ctx context.Context, opts WindowOptions) error {
	args := []string{"new-window", "-n", opts.Name}
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	args = append(args, opts.Command...)
	_, err := t.run(ctx, args...)
	return err
}

// AttachSession attaches the terminal to an existing session.
func (t *Tmux) AttachSession(ctx context.Context, name string) error {
	return t.runInteractive(ctx, "attach-session", "-t", "="+name)
}

// SwitchClient switches the current tmux client to another session.
func (t *Tmux) SwitchClient(ctx context.Context, name string) error {
	_, err := t.run(ctx, "switch-client", "-t", "="+name)
	return err
}

// ListSessions returns all live tmux sessions. A stopped server yields an
// empty list.
func (t *Tmux) ListSessions(ctx context.Context) ([]Session, error) {
	format := "#{session_name}\t#{session_windows}\t#{session_attached}\t#{session_created}"
	out, err := t.run(ctx, "list-sessions", "-F", format)
	if err != nil {
		if strings.Contains(err.Error(), "no server running") {
			return nil, nil
		}
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}

	var sessions []Session
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		s, err := parseSessionLine(line)
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// parseSessionLine parses one list-sessions line in the format above.
func parseSessionLine(line string) (Session, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 4 {
		return Session{}, fmt.Errorf("invalid session line %q", line)
	}
	windows, err := strconv.Atoi(parts[1])
	if err != nil {
		return Session{}, fmt.Errorf("invalid window count in %q: %w", line, err)
	}
	attached, err := strconv.Atoi(parts[2])
	if err != nil {
		return Session{}, fmt.Errorf("invalid attached count in %q: %w", line, err)
	}
	created, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("invalid created timestamp in %q: %w", line, err)
	}
	return Session{
		Name:     parts[0],
		Windows:  windows,
		Attached: attached > 0,
		Created:  time.Unix(created, 0),
	}, nil
}

// run executes a tmux command and returns its stdout. The stderr of a
// failed command is folded into the returned error.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// runInteractive executes a tmux command with the controlling terminal
// attached, for attach-session and attaching new-session calls.
func (t *Tmux) runInteractive(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return nil
}
