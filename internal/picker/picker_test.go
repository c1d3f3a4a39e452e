package picker

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/timvw/muxer/internal/target"
)

func candidates() []target.Target {
	return []target.Target{
		target.FromHost("db", ""),
		target.FromHost("web", ""),
		target.FromDir("code/muxer", "/home/u/code/muxer"),
		target.FromDir("notes", "/home/u/notes"),
	}
}

// newTestModel builds a picker model with the standard candidate set.
func newTestModel(query string) *model {
	return newModel(candidates(), Options{Prompt: "SESSION > ", Query: query, Theme: DarkTheme()})
}

func TestChoose_Empty(t *testing.T) {
	_, err := Choose(nil, Options{})
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
}

func TestChoose_SingleCandidateSkipsUI(t *testing.T) {
	only := target.FromDir("notes", "/home/u/notes")
	got, err := Choose([]target.Target{only}, Options{})
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if got.Display != "notes" {
		t.Errorf("picked %q, want notes", got.Display)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		display string
		query   string
		wantOK  bool
	}{
		{"code/muxer", "", true},
		{"code/muxer", "mux", true},
		{"code/muxer", "MUX", true},
		{"code/muxer", "cmx", true}, // subsequence
		{"code/muxer", "xmc", false},
		{"notes", "muxer", false},
	}
	for _, tt := range tests {
		_, ok := Match(tt.display, tt.query)
		if ok != tt.wantOK {
			t.Errorf("Match(%q, %q) ok = %v, want %v", tt.display, tt.query, ok, tt.wantOK)
		}
	}
}

func TestMatch_SubstringOutranksSubsequence(t *testing.T) {
	substr, _ := Match("code/muxer", "mux")
	subseq, _ := Match("menu-export", "mux") // m..u..x in order only
	if substr <= subseq {
		t.Fatalf("substring score %d should outrank subsequence score %d", substr, subseq)
	}
}

func TestMatch_EarlierSubstringWins(t *testing.T) {
	early, _ := Match("muxer", "mux")
	late, _ := Match("code/muxer", "mux")
	if early <= late {
		t.Fatalf("earlier match score %d should outrank later %d", early, late)
	}
}

func TestModel_InitialQueryFilters(t *testing.T) {
	m := newTestModel("notes")
	if len(m.matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(m.matches))
	}
	if got := m.candidates[m.matches[0]].Display; got != "notes" {
		t.Errorf("match = %q, want notes", got)
	}
}

func TestModel_TypingRefilters(t *testing.T) {
	m := newTestModel("")
	if len(m.matches) != 4 {
		t.Fatalf("matches = %d, want all 4", len(m.matches))
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	m = updated.(*model)
	// "w" matches "ssh: web" by substring only.
	if len(m.matches) != 1 {
		t.Fatalf("matches = %d after typing, want 1 (%v)", len(m.matches), m.matches)
	}
	if got := m.candidates[m.matches[0]].Display; got != "ssh: web" {
		t.Errorf("match = %q, want ssh: web", got)
	}
}

func TestModel_EnterSelects(t *testing.T) {
	m := newTestModel("")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*model)

	if m.choice == nil {
		t.Fatal("enter should set a choice")
	}
	if m.choice.Display != "ssh: web" {
		t.Errorf("choice = %q, want ssh: web", m.choice.Display)
	}
}

func TestModel_EscCancels(t *testing.T) {
	m := newTestModel("")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*model)

	if m.choice != nil {
		t.Fatalf("esc should leave no choice, got %+v", m.choice)
	}
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	m := newTestModel("")
	for i := 0; i < 10; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(*model)
	}
	if m.cursor != len(m.matches)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.matches)-1)
	}

	for i := 0; i < 10; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = updated.(*model)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}
