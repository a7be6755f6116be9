package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/biolquiz/internal/router"
	"github.com/abhisek/biolquiz/internal/screen"
	"github.com/abhisek/biolquiz/internal/store"
	"github.com/abhisek/biolquiz/internal/ui/components"
	"github.com/abhisek/biolquiz/internal/ui/layout"
	"github.com/abhisek/biolquiz/internal/ui/theme"
)

// sessionLimit bounds how many past sessions are listed.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Answers  map[string][]store.AnswerEvent // sessionID → answers, oldest first
	Err      error
}

// HistoryScreen lists finished sessions and, on demand, the answers given in each.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionEvent
	answers   map[string][]store.AnswerEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		events, err := repo.RecentSessions(ctx, store.QueryOpts{Limit: sessionLimit * 2})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Start events only mark the beginning; list the endings.
		var sessions []store.SessionEvent
		for _, ev := range events {
			if ev.Action == store.ActionStart {
				continue
			}
			sessions = append(sessions, ev)
			if len(sessions) == sessionLimit {
				break
			}
		}

		all, err := repo.RecentAnswers(ctx, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Answers: make(map[string][]store.AnswerEvent)}
		}

		bySession := make(map[string][]store.AnswerEvent)
		for i := len(all) - 1; i >= 0; i-- {
			a := all[i]
			bySession[a.SessionID] = append(bySession[a.SessionID], a)
		}

		return historyLoadedMsg{Sessions: sessions, Answers: bySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Pick a topic and start a quiz!")
	}

	w := layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Timestamp.Local().Format("Jan 02, 2006 15:04")
		durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

		var percent float64
		if sess.Total > 0 {
			percent = float64(sess.FirstTry) / float64(sess.Total) * 100
		}

		status := ""
		if sess.Action == store.ActionAbandon {
			status = "  abandoned"
		} else if sess.Mastered < sess.Total {
			status = "  ended early"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d mastered  %.0f%% first try%s",
			prefix, dateStr, durationStr, sess.Mastered, sess.Total, percent, status)

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(w)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				renderAnswers(s.answers[sess.SessionID], w)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderAnswers(answers []store.AnswerEvent, width int) string {
	if len(answers) == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(width).
			Render("    No answers this session")
	}

	lines := make([]string, 0, len(answers))
	for _, a := range answers {
		mark, style := "✗", theme.Incorrect
		if a.Correct {
			mark, style = "✓", theme.Correct
		}
		prompt := a.Prompt
		if r := []rune(prompt); len(r) > 50 {
			prompt = string(r[:49]) + "…"
		}
		lines = append(lines, style.Render("    "+mark+" ")+
			lipgloss.NewStyle().Foreground(theme.Text).Render(prompt)+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("  %s) %s", components.OptionLabel(a.Selected), a.SelectedText)))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
