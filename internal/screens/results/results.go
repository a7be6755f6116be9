package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/biolquiz/internal/router"
	"github.com/abhisek/biolquiz/internal/screen"
	"github.com/abhisek/biolquiz/internal/session"
	"github.com/abhisek/biolquiz/internal/ui/components"
	"github.com/abhisek/biolquiz/internal/ui/layout"
	"github.com/abhisek/biolquiz/internal/ui/theme"
)

// RetakeFunc builds a fresh quiz over the same questions.
type RetakeFunc func() (screen.Screen, error)

// ResultsScreen shows the score of a finished session and reviews the
// questions that were missed at least once.
type ResultsScreen struct {
	result session.Result
	retake RetakeFunc
	offset int
	errMsg string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen. retake may be nil.
func New(result session.Result, retake RetakeFunc) *ResultsScreen {
	return &ResultsScreen{result: result, retake: retake}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Topics"}}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	if len(s.result.EverWrong) > 0 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	}
	return hints
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter", "esc":
		return s, router.Pop
	case "r":
		if s.retake == nil {
			return s, nil
		}
		next, err := s.retake()
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, router.Replace(next)
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	w := layout.ContentWidth(width)

	var top strings.Builder
	top.WriteString(theme.Title.Render(fmt.Sprintf("%d%%", s.result.Percent())))
	top.WriteString("\n")
	top.WriteString(theme.Body.Render(fmt.Sprintf(
		"%d of %d correct on the first try", s.result.FirstTry, s.result.Total,
	)))
	top.WriteString("\n")
	if s.result.Completed() {
		top.WriteString(theme.Mastered.Render("Every question mastered."))
	} else {
		top.WriteString(theme.Warning.Render(fmt.Sprintf(
			"Ended early: %d of %d mastered", s.result.Mastered, s.result.Total,
		)))
	}
	top.WriteString("\n")
	if s.errMsg != "" {
		top.WriteString(theme.Incorrect.Render(s.errMsg))
		top.WriteString("\n")
	}
	header := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(top.String())

	review := s.reviewLines(w)
	avail := height - lipgloss.Height(header) - 1
	if avail < 1 {
		avail = 1
	}
	maxOffset := len(review) - avail
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := s.offset + avail
	if end > len(review) {
		end = len(review)
	}
	body := strings.Join(review[s.offset:end], "\n")

	return header + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// reviewLines renders the missed questions, each with its correct answer.
func (s *ResultsScreen) reviewLines(width int) []string {
	if len(s.result.EverWrong) == 0 {
		return []string{theme.Subtitle.Render("No questions to review.")}
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Review"))
	b.WriteString("\n")
	for i, q := range s.result.EverWrong {
		b.WriteString("\n")
		b.WriteString(theme.Body.Bold(true).Width(width).Render(fmt.Sprintf("%d. %s", i+1, q.Prompt)))
		b.WriteString("\n")
		if q.HasCorrectOption() {
			b.WriteString(theme.Correct.Width(width).Render(fmt.Sprintf(
				"   %s) %s", components.OptionLabel(q.CorrectIndex), q.CorrectText(),
			)))
		} else {
			b.WriteString(theme.Incorrect.Render("   No answer marked correct."))
		}
		b.WriteString("\n")
		if q.Explanation != "" {
			b.WriteString(theme.Subtitle.Width(width).Render("   " + q.Explanation))
			b.WriteString("\n")
		}
	}
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}
