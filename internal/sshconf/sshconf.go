// Package sshconf extracts Host aliases from an OpenSSH client config.
//
// Only Host directives matter to muxer; every other keyword is skipped.
// Aliases containing glob metacharacters are pattern rules, not connectable
// hosts, and are dropped.
package sshconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// ErrNotFound is returned when an explicitly configured ssh config path
// does not exist. A missing file at the default location simply yields no
// hosts.
var ErrNotFound = errors.New("ssh config not found")

// ParseError reports a malformed Host directive. Collected as warnings,
// never fatal.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// DefaultPath returns ~/.ssh/config.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// Loader reads host aliases from an ssh client config.
type Loader struct {
	// Path is an explicit config path. Empty uses DefaultPath, where a
	// missing file yields no hosts; a non-empty path that is absent is
	// an error.
	Path string
	// Query keeps only aliases containing it, case-insensitively.
	Query string
}

// Load returns the connectable host aliases, sorted and deduplicated,
// plus any parse warnings.
func (l *Loader) Load() ([]string, []error, error) {
	path := l.Path
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read ssh config %s: %w", path, err)
	}

	hosts, warns := Parse(path, string(data))
	if l.Query != "" {
		q := strings.ToLower(l.Query)
		filtered := hosts[:0]
		for _, h := range hosts {
			if strings.Contains(strings.ToLower(h), q) {
				filtered = append(filtered, h)
			}
		}
		hosts = filtered
	}
	return hosts, warns, nil
}

// Parse extracts host aliases from ssh config content. Malformed Host
// directives are returned as warnings and skipped.
func Parse(path, content string) ([]string, []error) {
	var hosts []string
	var warns []error
	seen := make(map[string]bool)

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		keyword, rest, ok := splitDirective(line)
		if !ok || !strings.EqualFold(keyword, "Host") {
			continue
		}

		aliases, err := shellwords.Parse(rest)
		if err != nil {
			warns = append(warns, &ParseError{Path: path, Line: i + 1, Msg: fmt.Sprintf("unparseable Host directive: %v", err)})
			continue
		}
		if len(aliases) == 0 {
			warns = append(warns, &ParseError{Path: path, Line: i + 1, Msg: "Host directive without aliases"})
			continue
		}

		for _, alias := range aliases {
			// Patterns match host names; they are not hosts themselves.
			if strings.ContainsAny(alias, "*?!") {
				continue
			}
			if !seen[alias] {
				seen[alias] = true
				hosts = append(hosts, alias)
			}
		}
	}

	sort.Strings(hosts)
	return hosts, warns
}

// splitDirective splits an ssh config line into keyword and arguments.
// Both "Keyword args" and "Keyword=args" forms are valid.
func splitDirective(line string) (keyword, rest string, ok bool) {
	if i := strings.IndexAny(line, " \t="); i > 0 {
		return line[:i], strings.TrimLeft(line[i:], " \t="), true
	}
	return line, "", line != ""
}
