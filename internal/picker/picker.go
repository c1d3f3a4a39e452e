// Package picker implements the interactive candidate selector.
//
// Selection rules match the original muxer behavior: an empty candidate
// list selects nothing, a single candidate is taken without showing the
// UI, and anything else opens a fuzzy picker seeded with the query.
package picker

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timvw/muxer/internal/target"
)

// ErrNoSelection is returned when nothing was selected: no candidates, or
// the user cancelled the picker. Callers treat it as a clean exit, not a
// failure.
var ErrNoSelection = errors.New("no selection")

// Options configure a picker run.
type Options struct {
	// Prompt is shown before the query input (e.g., "SESSION > ").
	Prompt string
	// Query pre-fills the input.
	Query string
	// Theme selects the color scheme.
	Theme Theme
}

// Choose selects one target from candidates.
func Choose(candidates []target.Target, opts Options) (target.Target, error) {
	switch len(candidates) {
	case 0:
		return target.Target{}, ErrNoSelection
	case 1:
		return candidates[0], nil
	}

	m := newModel(candidates, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return target.Target{}, fmt.Errorf("picker: %w", err)
	}

	result := final.(*model)
	if result.choice == nil {
		return target.Target{}, ErrNoSelection
	}
	return *result.choice, nil
}

// Match scores a candidate display against a query, case-insensitively.
// Substring matches outrank in-order subsequence matches, and earlier
// substring positions outrank later ones. Returns ok=false when the query
// does not match at all.
func Match(display, query string) (score int, ok bool) {
	if query == "" {
		return 0, true
	}
	d := strings.ToLower(display)
	q := strings.ToLower(query)

	if i := strings.Index(d, q); i >= 0 {
		return 1<<16 - i, true
	}

	// In-order subsequence: every query rune appears in the display in
	// the same order.
	j := 0
	for i := 0; i < len(d) && j < len(q); i++ {
		if d[i] == q[j] {
			j++
		}
	}
	if j == len(q) {
		return 1, true
	}
	return 0, false
}

// model implements tea.Model.
type model struct {
	candidates []target.Target
	input      textinput.Model
	styles     styles

	matches []int // indices into candidates, best first
	cursor  int   // index into matches

	width  int
	height int

	choice *target.Target
}

func newModel(candidates []target.Target, opts Options) *model {
	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.SetValue(opts.Query)
	ti.Focus()

	m := &model{
		candidates: candidates,
		input:      ti,
		styles:     newStyles(opts.Theme),
	}
	m.input.PromptStyle = m.styles.prompt
	m.refilter()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.choice = nil
			return m, tea.Quit
		case "enter":
			if m.cursor < len(m.matches) {
				t := m.candidates[m.matches[m.cursor]]
				m.choice = &t
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// refilter rebuilds the match list for the current query and resets the
// cursor. Ties keep candidate order, so the merged ssh-then-dirs order is
// stable under an empty query.
func (m *model) refilter() {
	query := m.input.Value()
	type scored struct {
		idx   int
		score int
	}
	var hits []scored
	for i, c := range m.candidates {
		if score, ok := Match(c.Display, query); ok {
			hits = append(hits, scored{idx: i, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	m.matches = m.matches[:0]
	for _, h := range hits {
		m.matches = append(m.matches, h.idx)
	}
	m.cursor = 0
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	rows := m.visibleRows()
	start, end := m.window(rows)
	for i := start; i < end; i++ {
		c := m.candidates[m.matches[i]]
		line := c.Display
		if i == m.cursor {
			line = m.styles.selected.Render("> " + line)
		} else if c.Kind == target.KindSSH {
			line = "  " + m.styles.ssh.Render(line)
		} else {
			line = "  " + m.styles.item.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.matches) == 0 {
		b.WriteString(m.styles.dim.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.count.Render(fmt.Sprintf("%d/%d", len(m.matches), len(m.candidates))))
	b.WriteString(m.styles.dim.Render("  enter select · esc cancel"))
	return b.String()
}

// visibleRows returns how many candidate rows fit: the window height minus
// the input line and the status line.
func (m *model) visibleRows() int {
	rows := m.height - 2
	if rows < 1 {
		rows = 10
	}
	return rows
}

// window returns the half-open match range to render, keeping the cursor
// in view.
func (m *model) window(rows int) (int, int) {
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := start + rows
	if end > len(m.matches) {
		end = len(m.matches)
	}
	return start, end
}
