package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/biolquiz/internal/session"
	"github.com/abhisek/biolquiz/internal/ui/components"
	"github.com/abhisek/biolquiz/internal/ui/layout"
	"github.com/abhisek/biolquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	q, ok := s.sess.Current()
	if !ok {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render(theme.Subtitle.Render("No questions left."))
	}

	w := layout.ContentWidth(width)
	var b strings.Builder

	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", s.sess.MasteredCount(), s.sess.Total()),
		s.sess.Progress(), true, w,
	)
	b.WriteString(bar.View())
	b.WriteString("\n")
	if !layout.IsCompactHeight(height) {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
			"%d remaining · %d answered", s.sess.Remaining(), s.sess.Attempts(),
		)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Body.Bold(true).Width(w).Render(q.Prompt))
	b.WriteString("\n")
	if q.ImageURL != "" {
		b.WriteString(theme.Hint.Render("Image: " + q.ImageURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.choices.View(w))

	if fb, ok := s.sess.LastFeedback(); ok {
		b.WriteString("\n")
		b.WriteString(renderFeedback(fb, w))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.button().View())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// button is the screen's primary action for the current phase.
func (s *QuizScreen) button() components.ActionButton {
	switch s.sess.Phase() {
	case session.PhaseAwaitingAdvance:
		return components.NewActionButton("Next")
	case session.PhaseAwaitingSubmission:
		return components.NewActionButton("Submit")
	case session.PhaseAwaitingSelection:
		return components.NewActionButton("Submit").Disable("Choose an answer first.")
	default:
		return components.NewActionButton("Submit").Disable("")
	}
}

func renderFeedback(fb session.Feedback, width int) string {
	q := fb.Question
	var lines []string

	style := theme.FeedbackIncorrect
	switch {
	case fb.Correct:
		style = theme.FeedbackCorrect
		lines = append(lines, theme.Correct.Render("Correct!"))
	case !q.HasCorrectOption():
		lines = append(lines, theme.Incorrect.Render("This question has no answer marked correct."))
	default:
		lines = append(lines, theme.Incorrect.Render("Not quite.")+" "+
			theme.Body.Render(fmt.Sprintf("The answer is %s) %s",
				components.OptionLabel(q.CorrectIndex), q.CorrectText())))
	}

	inner := width - 4
	if fb.Explanation != "" {
		lines = append(lines, "", theme.Body.Width(inner).Render(fb.Explanation))
	}
	if q.Comments != "" {
		lines = append(lines, "", theme.Subtitle.Width(inner).Render(q.Comments))
	}
	if !fb.Correct {
		lines = append(lines, "", theme.Hint.Render("You'll see this one again."))
	}

	return style.Width(width).Render(strings.Join(lines, "\n"))
}
