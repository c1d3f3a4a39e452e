// Package rc loads the directory candidate list from ~/.muxer.rc.
//
// The rc file holds one entry per line:
//
//	~/notes        include this directory
//	~/code/*       include every child directory of ~/code
//	!~/code/tmp    exclude a directory another entry pulled in
//	# comment      ignored, as are blank lines
//
// When no rc file exists at the default location, a built-in candidate
// list applies. Malformed lines never abort a load; they are collected
// as warnings for the caller to report.
package rc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/timvw/muxer/internal/target"
)

// ErrNotFound is returned when an explicitly configured rc file does not
// exist. The default location falling back to built-in entries is not an
// error.
var ErrNotFound = errors.New("rc file not found")

// ParseError reports a malformed rc line. Collected as warnings, never fatal.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Entry is a single parsed rc line.
type Entry struct {
	// Path is the expanded directory path.
	Path string
	// Glob includes every child directory of Path instead of Path itself.
	Glob bool
	// Exclude removes Path from the candidate set.
	Exclude bool
}

// DefaultEntries returns the built-in candidate list used when no rc file
// exists: a few conventional project roots plus all children of ~/code.
func DefaultEntries(home string) []Entry {
	return []Entry{
		{Path: filepath.Join(home, "notes")},
		{Path: filepath.Join(home, "Syncthing")},
		{Path: filepath.Join(home, "scratch")},
		{Path: filepath.Join(home, "code"), Glob: true},
	}
}

// DefaultPath returns ~/.muxer.rc.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".muxer.rc"), nil
}

// Loader reads and expands the rc file into directory targets.
type Loader struct {
	// Path is an explicit rc file path. Empty uses DefaultPath with a
	// fallback to DefaultEntries when the file is absent; a non-empty
	// path that is absent is an error.
	Path string
	// Query keeps only directories whose base name contains it,
	// case-insensitively.
	Query string
	// Home overrides the home directory, for tests. Empty uses
	// os.UserHomeDir.
	Home string
}

// Load returns directory targets in rc-file entry order (children of a
// glob entry sorted by name), the parse warnings encountered, and a fatal
// error if the rc file could not be read at all.
func (l *Loader) Load() ([]target.Target, []error, error) {
	home := l.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve home directory: %w", err)
		}
		home = h
	}

	entries, warns, err := l.readEntries(home)
	if err != nil {
		return nil, warns, err
	}

	excludes := make(map[string]bool)
	for _, e := range entries {
		if e.Exclude {
			excludes[e.Path] = true
		}
	}

	var targets []target.Target
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Exclude {
			continue
		}
		for _, dir := range expand(e) {
			if seen[dir] || !l.keep(dir, excludes) {
				continue
			}
			seen[dir] = true
			targets = append(targets, target.FromDir(displayName(dir, home), dir))
		}
	}
	return targets, warns, nil
}

// readEntries loads the rc file, or the built-in defaults when the default
// location is absent.
func (l *Loader) readEntries(home string) ([]Entry, []error, error) {
	path := l.Path
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, ".muxer.rc")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return DefaultEntries(home), nil, nil
		}
		return nil, nil, fmt.Errorf("read rc file %s: %w", path, err)
	}
	return Parse(path, string(data), home)
}

// Parse parses rc file content into entries. Malformed lines are returned
// as warnings and skipped.
func Parse(path, content, home string) ([]Entry, []error, error) {
	var entries []Entry
	var warns []error
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e := Entry{}
		if strings.HasPrefix(line, "!") {
			e.Exclude = true
			line = strings.TrimSpace(line[1:])
			if line == "" {
				warns = append(warns, &ParseError{Path: path, Line: i + 1, Msg: "exclude entry without a path"})
				continue
			}
		}
		if strings.HasSuffix(line, "*") {
			e.Glob = true
			line = strings.TrimSpace(strings.TrimSuffix(line, "*"))
			if line == "" {
				warns = append(warns, &ParseError{Path: path, Line: i + 1, Msg: "glob entry without a path"})
				continue
			}
		}
		if e.Exclude && e.Glob {
			warns = append(warns, &ParseError{Path: path, Line: i + 1, Msg: "exclude entries cannot use a trailing *"})
			continue
		}

		e.Path = filepath.Clean(expandTilde(line, home))
		entries = append(entries, e)
	}
	return entries, warns, nil
}

// expand resolves an include entry to its candidate directories.
// Glob entries list the children of the path, sorted by name.
func expand(e Entry) []string {
	if !e.Glob {
		return []string{e.Path}
	}
	children, err := os.ReadDir(e.Path)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, c := range children {
		dirs = append(dirs, filepath.Join(e.Path, c.Name()))
	}
	sort.Strings(dirs)
	return dirs
}

// keep applies the candidate filter: the path must be an existing
// directory, not hidden, not excluded, and must match the query.
func (l *Loader) keep(dir string, excludes map[string]bool) bool {
	base := filepath.Base(dir)
	if strings.HasPrefix(base, ".") || excludes[dir] {
		return false
	}
	if l.Query != "" && !strings.Contains(strings.ToLower(base), strings.ToLower(l.Query)) {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// displayName returns dir relative to home when it lives under home.
func displayName(dir, home string) string {
	if rel, err := filepath.Rel(home, dir); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
		return rel
	}
	return dir
}

// expandTilde replaces a leading "~" with the home directory.
func expandTilde(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
