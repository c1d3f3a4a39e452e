// Package mux provides an abstraction over terminal multiplexers.
//
// muxer only ships a tmux implementation today; the interface keeps the
// launcher testable and leaves room for zellij.
package mux

import (
	"context"
	"time"
)

// Session describes a live multiplexer session.
type Session struct {
	// Name is the session name.
	Name string
	// Windows is the number of windows in the session.
	Windows int
	// Attached reports whether a client is attached.
	Attached bool
	// Created is when the session was created.
	Created time.Time
}

// SessionOptions control session creation.
type SessionOptions struct {
	// Name is the session name. Required.
	Name string
	// Dir is the working directory for the initial pane. Optional.
	Dir string
	// Command runs in the initial pane instead of the default shell. Optional.
	Command []string
	// Detached creates the session without attaching to it.
	Detached bool
	// AttachIfExists attaches to an existing session of the same name
	// instead of failing (tmux new-session -A).
	AttachIfExists bool
}

// WindowOptions control window creation in the current session.
type WindowOptions struct {
	// Name is the window name. Required.
	Name string
	// Dir is the working directory for the new pane. Optional.
	Dir string
	// Command runs in the new pane instead of the default shell. Optional.
	Command []string
}

// Multiplexer abstracts the terminal multiplexer operations muxer needs.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// HasSession reports whether a session with exactly the given name exists.
	HasSession(ctx context.Context, name string) (bool, error)

	// NewSession creates a session. Unless opts.Detached is set, the call
	// attaches the controlling terminal and blocks until detach.
	NewSession(ctx context.Context, opts SessionOptions) error

	// NewWindow opens a window in the current session. Only valid when the
	// process runs inside the multiplexer.
	NewWindow(ctx context.Context, opts WindowOptions) error

	// AttachSession attaches the controlling terminal to an existing
	// session and blocks until detach.
	AttachSession(ctx context.Context, name string) error

	// SwitchClient switches the current client to another session. Only
	// valid when the process runs inside the multiplexer.
	SwitchClient(ctx context.Context, name string) error

	// ListSessions returns all live sessions. A multiplexer with no
	// running server returns an empty list, not an error.
	ListSessions(ctx context.Context) ([]Session, error)
}
