package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/biolquiz/internal/ui/theme"
)

// NoCursor means no option is highlighted yet.
const NoCursor = -1

// MultiChoice renders a question's options and tracks the highlighted one.
// It does not score anything; after Reveal it shows which option was right.
type MultiChoice struct {
	Options []string
	Cursor  int

	revealed     bool
	chosen       int
	correctIndex int
}

// NewMultiChoice creates a multiple-choice list with nothing highlighted.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		Cursor:       NoCursor,
		chosen:       NoCursor,
		correctIndex: NoCursor,
	}
}

// Update handles arrow, digit and letter keys. It reports whether the cursor moved.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.revealed || len(m.Options) == 0 {
		return m, false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	prev := m.Cursor
	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor == NoCursor {
			m.Cursor = len(m.Options) - 1
		} else if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	default:
		if i, ok := IndexForKey(key, len(m.Options)); ok {
			m.Cursor = i
		}
	}
	return m, m.Cursor != prev
}

// Reveal freezes the list and marks the chosen and correct options.
// correct may be out of range when the question has no correct option.
func (m MultiChoice) Reveal(chosen, correct int) MultiChoice {
	m.revealed = true
	m.chosen = chosen
	m.correctIndex = correct
	return m
}

// Revealed reports whether Reveal has been called.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the options, one per line, wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if !m.revealed && i == m.Cursor {
			prefix = "▸ "
		}
		if m.revealed {
			switch {
			case i == m.correctIndex:
				prefix = "✓ "
			case i == m.chosen:
				prefix = "✗ "
			}
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)
		style := lipgloss.NewStyle().Width(width)

		switch {
		case m.revealed && i == m.correctIndex:
			style = style.Inherit(theme.Correct)
		case m.revealed && i == m.chosen:
			style = style.Inherit(theme.Incorrect)
		case m.revealed:
			style = style.Foreground(theme.TextDim)
		case i == m.Cursor:
			style = style.Inherit(theme.Selected)
		default:
			style = style.Inherit(theme.Unselected)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// OptionLabel returns the letter shown for option i: A, B, C...
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// IndexForKey maps "1".."9" and "a".."i" to an option index below n.
func IndexForKey(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var i int
	switch {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'i':
		i = int(c - 'a')
	case c >= 'A' && c <= 'I':
		i = int(c - 'A')
	default:
		return 0, false
	}
	if i >= n {
		return 0, false
	}
	return i, true
}
