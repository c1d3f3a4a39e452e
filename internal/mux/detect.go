package mux

import (
	"fmt"
	"os"
	"os/exec"
)

// InsideTmux reports whether the current process runs inside a tmux client.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// Detect auto-detects the terminal multiplexer to use. It checks
// environment variables first, then falls back to checking whether the
// tmux binary is installed. An installed binary is enough: muxer starts
// the server itself on the first new-session.
func Detect() (Multiplexer, error) {
	if os.Getenv("TMUX") != "" {
		return NewTmux(), nil
	}
	if os.Getenv("ZELLIJ") != "" {
		return nil, fmt.Errorf("zellij support is not yet implemented")
	}

	if _, err := exec.LookPath("tmux"); err == nil {
		return NewTmux(), nil
	}

	return nil, fmt.Errorf("no supported terminal multiplexer found (install tmux)")
}

// FromName creates a Multiplexer by name.
func FromName(name string) (Multiplexer, error) {
	switch name {
	case "tmux":
		return NewTmux(), nil
	case "zellij":
		return nil, fmt.Errorf("zellij support is not yet implemented")
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: tmux)", name)
	}
}
