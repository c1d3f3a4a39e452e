package rc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeRC writes an rc file into dir and returns its path.
func writeRC(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".muxer.rc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// mkdirs creates the given directories under home.
func mkdirs(t *testing.T, home string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(home, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		want      []Entry
		wantWarns int
	}{
		{
			name:    "plain path",
			content: "~/notes\n",
			want:    []Entry{{Path: "/home/u/notes"}},
		},
		{
			name:    "glob entry",
			content: "~/code/*\n",
			want:    []Entry{{Path: "/home/u/code", Glob: true}},
		},
		{
			name:    "glob without slash",
			content: "~/code*\n",
			want:    []Entry{{Path: "/home/u/code", Glob: true}},
		},
		{
			name:    "exclude entry",
			content: "!~/code/tmp\n",
			want:    []Entry{{Path: "/home/u/code/tmp", Exclude: true}},
		},
		{
			name:    "comments and blanks skipped",
			content: "# projects\n\n~/notes\n",
			want:    []Entry{{Path: "/home/u/notes"}},
		},
		{
			name:    "absolute path kept",
			content: "/srv/www\n",
			want:    []Entry{{Path: "/srv/www"}},
		},
		{
			name:      "bare exclude is a warning",
			content:   "!\n~/notes\n",
			want:      []Entry{{Path: "/home/u/notes"}},
			wantWarns: 1,
		},
		{
			name:      "bare glob is a warning",
			content:   "*\n",
			want:      nil,
			wantWarns: 1,
		},
		{
			name:      "excluded glob is a warning",
			content:   "!~/code/*\n",
			want:      nil,
			wantWarns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, warns, err := Parse("test.rc", tt.content, "/home/u")
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(warns) != tt.wantWarns {
				t.Fatalf("warnings = %d, want %d (%v)", len(warns), tt.wantWarns, warns)
			}
			if len(entries) != len(tt.want) {
				t.Fatalf("entries = %v, want %v", entries, tt.want)
			}
			for i, e := range entries {
				if e != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, e, tt.want[i])
				}
			}
		})
	}
}

func TestLoad_FileOrder(t *testing.T) {
	home := t.TempDir()
	mkdirs(t, home, "notes", "work", "code/alpha", "code/beta")
	writeRC(t, home, "~/work\n~/notes\n~/code/*\n")

	l := &Loader{Home: home}
	targets, warns, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}

	want := []string{"work", "notes", "code/alpha", "code/beta"}
	if len(targets) != len(want) {
		t.Fatalf("targets = %d, want %d", len(targets), len(want))
	}
	for i, display := range want {
		if targets[i].Display != display {
			t.Errorf("target %d = %q, want %q", i, targets[i].Display, display)
		}
	}
}

func TestLoad_Filters(t *testing.T) {
	home := t.TempDir()
	mkdirs(t, home, "code/alpha", "code/beta", "code/.hidden")
	// A file, not a directory, inside the glob root.
	if err := os.WriteFile(filepath.Join(home, "code", "README"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	writeRC(t, home, "~/code/*\n!~/code/beta\n~/missing\n")

	l := &Loader{Home: home}
	targets, _, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// beta excluded, .hidden hidden, README not a dir, missing does not exist.
	if len(targets) != 1 || targets[0].Display != "code/alpha" {
		t.Fatalf("targets = %+v, want only code/alpha", targets)
	}
}

func TestLoad_Query(t *testing.T) {
	home := t.TempDir()
	mkdirs(t, home, "code/muxer", "code/website")
	writeRC(t, home, "~/code/*\n")

	l := &Loader{Home: home, Query: "MUX"}
	targets, _, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(targets) != 1 || targets[0].Display != "code/muxer" {
		t.Fatalf("targets = %+v, want only code/muxer", targets)
	}
}

func TestLoad_Dedupe(t *testing.T) {
	home := t.TempDir()
	mkdirs(t, home, "code/alpha")
	writeRC(t, home, "~/code/alpha\n~/code/*\n")

	l := &Loader{Home: home}
	targets, _, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("targets = %+v, want one entry", targets)
	}
}

func TestLoad_DefaultsWhenAbsent(t *testing.T) {
	home := t.TempDir()
	mkdirs(t, home, "notes", "scratch", "code/proj")

	l := &Loader{Home: home}
	targets, warns, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}

	want := []string{"notes", "scratch", "code/proj"}
	if len(targets) != len(want) {
		t.Fatalf("targets = %+v, want %v", targets, want)
	}
	for i, display := range want {
		if targets[i].Display != display {
			t.Errorf("target %d = %q, want %q", i, targets[i].Display, display)
		}
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	home := t.TempDir()
	l := &Loader{Home: home, Path: filepath.Join(home, "nope.rc")}
	_, _, err := l.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"/home/u/code/muxer", "code/muxer"},
		{"/srv/www", "/srv/www"},
		{"/home/u", "/home/u"},
		{"/home/unrelated/x", "/home/unrelated/x"},
	}
	for _, tt := range tests {
		if got := displayName(tt.dir, "/home/u"); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}
