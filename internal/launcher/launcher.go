// Package launcher reconciles a picked target against live multiplexer
// state: attach, switch, create a session, or open a window.
//
// The behavior depends on where muxer runs. Inside tmux a session cannot
// be attached, only switched to; outside tmux switching is meaningless and
// attaching is the goal. The launcher encodes that state table so the CLI
// does not have to.
package launcher

import (
	"context"
	"fmt"

	"github.com/timvw/muxer/internal/mux"
	"github.com/timvw/muxer/internal/target"
)

// Mode selects what the launcher creates for the picked target.
type Mode int

const (
	// ModeSession ensures a session exists and moves the user into it.
	ModeSession Mode = iota
	// ModeWindow opens a window in the current session instead. Outside
	// tmux there is no current session, so this falls back to ModeSession.
	ModeWindow
)

// String returns the mode name for metrics and error messages.
func (m Mode) String() string {
	if m == ModeWindow {
		return "window"
	}
	return "session"
}

// Launcher turns a target into a live tmux session or window.
type Launcher struct {
	// Mux is the multiplexer transport.
	Mux mux.Multiplexer
	// InsideTmux reports whether muxer itself runs inside the multiplexer.
	InsideTmux bool
	// DefaultCommand runs in new directory sessions instead of the default
	// shell. Targets that carry their own command (ssh) ignore it.
	DefaultCommand []string
}

// Launch creates, attaches to, or switches to the target per mode.
// Attaching calls block until the user detaches.
func (l *Launcher) Launch(ctx context.Context, t target.Target, mode Mode) error {
	if mode == ModeWindow && l.InsideTmux {
		return l.openWindow(ctx, t)
	}
	return l.enterSession(ctx, t)
}

// enterSession ensures the target's session exists and moves the user
// into it.
func (l *Launcher) enterSession(ctx context.Context, t target.Target) error {
	name := t.SessionName()

	if l.InsideTmux {
		has, err := l.Mux.HasSession(ctx, name)
		if err != nil {
			return fmt.Errorf("launch session %q: %w", name, err)
		}
		if !has {
			opts := l.sessionOptions(t, name)
			opts.Detached = true
			if err := l.Mux.NewSession(ctx, opts); err != nil {
				return fmt.Errorf("launch session %q: %w", name, err)
			}
		}
		if err := l.Mux.SwitchClient(ctx, name); err != nil {
			return fmt.Errorf("switch to session %q: %w", name, err)
		}
		return nil
	}

	has, err := l.Mux.HasSession(ctx, name)
	if err != nil {
		return fmt.Errorf("launch session %q: %w", name, err)
	}
	if has {
		if err := l.Mux.AttachSession(ctx, name); err != nil {
			return fmt.Errorf("attach to session %q: %w", name, err)
		}
		return nil
	}

	// -A covers the race where the session appeared between the check and
	// the create.
	opts := l.sessionOptions(t, name)
	opts.AttachIfExists = true
	if err := l.Mux.NewSession(ctx, opts); err != nil {
		return fmt.Errorf("launch session %q: %w", name, err)
	}
	return nil
}

// openWindow opens a window for the target in the current session.
func (l *Launcher) openWindow(ctx context.Context, t target.Target) error {
	opts := mux.WindowOptions{
		Name:    t.SessionName(),
		Dir:     t.Dir,
		Command: l.command(t),
	}
	if err := l.Mux.NewWindow(ctx, opts); err != nil {
		return fmt.Errorf("open window %q: %w", opts.Name, err)
	}
	return nil
}

// sessionOptions builds the creation options shared by both session paths.
func (l *Launcher) sessionOptions(t target.Target, name string) mux.SessionOptions {
	return mux.SessionOptions{
		Name:    name,
		Dir:     t.Dir,
		Command: l.command(t),
	}
}

// command returns the command for the target's initial pane: the target's
// own (ssh), the configured default (dir), or none.
func (l *Launcher) command(t target.Target) []string {
	if len(t.Command) > 0 {
		return t.Command
	}
	if t.Kind == target.KindDir {
		return l.DefaultCommand
	}
	return nil
}
