// Package target defines the candidates muxer can launch: local project
// directories from ~/.muxer.rc and ssh hosts from ~/.ssh/config. A target
// carries everything the launcher needs — a session name plus either a
// working directory or a command.
package target

import (
	"path/filepath"
	"sort"
	"strings"
)

// Kind distinguishes target sources.
type Kind string

const (
	// KindDir is a local directory target.
	KindDir Kind = "dir"
	// KindSSH is a remote host target from the ssh client config.
	KindSSH Kind = "ssh"
)

// sshDisplayPrefix marks ssh targets in the candidate list.
const sshDisplayPrefix = "ssh: "

// DefaultSSHPrefix is prepended to the host alias to form the session name
// for ssh targets unless overridden in the config.
const DefaultSSHPrefix = "SSH_"

// Target is a single launchable candidate.
type Target struct {
	// Kind is the target source: "dir" or "ssh".
	Kind Kind
	// Name is the session name before tmux sanitization.
	Name string
	// Display is the line shown in the picker and by `muxer list`.
	Display string
	// Dir is the working directory for the session. Dir targets only.
	Dir string
	// Command is the command to run in the new session. SSH targets only.
	Command []string
}

// FromDir builds a directory target. display is the home-relative path
// shown in the picker; dir is the absolute working directory.
func FromDir(display, dir string) Target {
	return Target{
		Kind:    KindDir,
		Name:    filepath.Base(dir),
		Display: display,
		Dir:     dir,
	}
}

// FromHost builds an ssh target for a host alias. prefix is prepended to
// the alias to form the session name; empty means DefaultSSHPrefix.
func FromHost(host, prefix string) Target {
	if prefix == "" {
		prefix = DefaultSSHPrefix
	}
	return Target{
		Kind:    KindSSH,
		Name:    prefix + host,
		Display: sshDisplayPrefix + host,
		Command: []string{"ssh", host},
	}
}

// FromHosts builds ssh targets for a list of host aliases.
func FromHosts(hosts []string, prefix string) []Target {
	targets := make([]Target, 0, len(hosts))
	for _, h := range hosts {
		targets = append(targets, FromHost(h, prefix))
	}
	return targets
}

// SessionName returns the tmux-safe session name for the target.
func (t Target) SessionName() string {
	return SanitizeSessionName(t.Name)
}

// SanitizeSessionName rewrites a name so tmux accepts it as a session name.
// tmux reserves '.' and ':' for target syntax; both become '_'. An empty
// name becomes "_" so the launcher never passes an empty -s argument.
func SanitizeSessionName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '.', ':':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Merge combines directory and ssh targets into a single candidate list:
// ssh hosts first, then directories, each group sorted by display name.
// Duplicate displays keep their first occurrence.
func Merge(dirs, hosts []Target) []Target {
	sorted := func(in []Target) []Target {
		out := make([]Target, len(in))
		copy(out, in)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Display < out[j].Display })
		return out
	}

	merged := make([]Target, 0, len(dirs)+len(hosts))
	seen := make(map[string]bool, len(dirs)+len(hosts))
	for _, t := range append(sorted(hosts), sorted(dirs)...) {
		if seen[t.Display] {
			continue
		}
		seen[t.Display] = true
		merged = append(merged, t)
	}
	return merged
}

// Filter returns the targets whose display contains query,
// case-insensitively. An empty query returns the input unchanged.
func Filter(targets []Target, query string) []Target {
	if query == "" {
		return targets
	}
	q := strings.ToLower(query)
	var out []Target
	for _, t := range targets {
		if strings.Contains(strings.ToLower(t.Display), q) {
			out = append(out, t)
		}
	}
	return out
}
