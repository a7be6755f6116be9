package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/biolquiz/internal/bank"
	"github.com/abhisek/biolquiz/internal/router"
	"github.com/abhisek/biolquiz/internal/screen"
	"github.com/abhisek/biolquiz/internal/screens/history"
	"github.com/abhisek/biolquiz/internal/screens/quiz"
	"github.com/abhisek/biolquiz/internal/session"
	"github.com/abhisek/biolquiz/internal/store"
	"github.com/abhisek/biolquiz/internal/ui/components"
	"github.com/abhisek/biolquiz/internal/ui/layout"
	"github.com/abhisek/biolquiz/internal/ui/theme"
)

// Deps are what the topic picker needs.
type Deps struct {
	// Bank is nil when loading failed; LoadErr then says why.
	Bank    *bank.Bank
	LoadErr error

	Progress store.ProgressRepo
	Quiz     quiz.Deps
}

// progressLoadedMsg carries saved progress keyed by quiz id then question id.
type progressLoadedMsg struct {
	progress map[string]map[string]bool
	err      error
}

// TopicsScreen lets the student pick which quizzes to practice.
type TopicsScreen struct {
	deps     Deps
	list     components.Checklist
	progress map[string]map[string]bool
	notice   string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.StatusProvider = (*TopicsScreen)(nil)
var _ screen.Resumer = (*TopicsScreen)(nil)

// New creates the topic picker.
func New(deps Deps) *TopicsScreen {
	if deps.Quiz.Logger == nil {
		nop := zerolog.Nop()
		deps.Quiz.Logger = &nop
	}
	s := &TopicsScreen{deps: deps}
	s.rebuild()
	return s
}

func (s *TopicsScreen) Init() tea.Cmd {
	return s.loadProgress()
}

// Resume reloads progress so mastered counts reflect the session just played.
func (s *TopicsScreen) Resume() tea.Cmd {
	return s.loadProgress()
}

func (s *TopicsScreen) Title() string {
	if s.deps.Bank == nil {
		return bank.DefaultSubject
	}
	return s.deps.Bank.Subject
}

func (s *TopicsScreen) Status() string {
	if s.deps.Bank == nil {
		return ""
	}
	mastered := 0
	for _, q := range s.deps.Bank.Quizzes() {
		mastered += s.masteredIn(q)
	}
	return fmt.Sprintf("%d/%d mastered", mastered, s.deps.Bank.QuestionCount())
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.deps.Bank == nil {
		return []layout.KeyHint{{Key: "Q", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "A", Description: "All"},
		{Key: "Enter", Description: "Start"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.err != nil {
			s.deps.Quiz.Logger.Warn().Err(msg.err).Msg("failed to load progress")
		}
		s.progress = msg.progress
		s.rebuild()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "enter":
			return s.start()
		case "h":
			if s.deps.Quiz.Events != nil {
				return s, router.Push(history.New(s.deps.Quiz.Events))
			}
			return s, nil
		}
		if s.deps.Bank == nil {
			return s, nil
		}
		s.list = s.list.Update(msg)
		s.notice = ""
	}
	return s, nil
}

// Selected returns the checked quiz ids.
func (s *TopicsScreen) Selected() []string {
	return s.list.CheckedIDs()
}

func (s *TopicsScreen) start() (screen.Screen, tea.Cmd) {
	if s.deps.Bank == nil {
		return s, nil
	}
	ids := s.list.CheckedIDs()
	if len(ids) == 0 {
		s.notice = "Select at least one topic."
		return s, nil
	}

	next, err := quiz.New(s.deps.Quiz, ids, s.deps.Bank.Select(ids...))
	if errors.Is(err, session.ErrEmptySelection) {
		s.notice = "Those topics have no questions."
		return s, nil
	}
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.notice = ""
	return s, router.Push(next)
}

func (s *TopicsScreen) loadProgress() tea.Cmd {
	repo := s.deps.Progress
	if repo == nil || s.deps.Bank == nil {
		return nil
	}
	return func() tea.Msg {
		all, err := repo.All(context.Background())
		return progressLoadedMsg{progress: all, err: err}
	}
}

// rebuild refreshes the checklist rows, keeping the cursor and checked state.
func (s *TopicsScreen) rebuild() {
	if s.deps.Bank == nil {
		return
	}
	checked := make(map[string]bool)
	for _, id := range s.list.CheckedIDs() {
		checked[id] = true
	}

	quizzes := s.deps.Bank.Quizzes()
	items := make([]components.ChecklistItem, 0, len(quizzes))
	for _, q := range quizzes {
		items = append(items, components.ChecklistItem{
			ID:      q.ID,
			Label:   q.Title,
			Detail:  fmt.Sprintf("%d/%d mastered", s.masteredIn(q), len(q.Questions)),
			Checked: checked[q.ID],
		})
	}
	cursor := s.list.Selected
	s.list = components.NewChecklist(items)
	if cursor < len(items) {
		s.list.Selected = cursor
	}
}

// masteredIn counts the quiz's questions whose last saved answer was correct.
func (s *TopicsScreen) masteredIn(q bank.Quiz) int {
	saved := s.progress[q.ID]
	n := 0
	for _, question := range q.Questions {
		if saved[question.ID] {
			n++
		}
	}
	return n
}

func (s *TopicsScreen) View(width, height int) string {
	if s.deps.Bank == nil {
		return renderNoData(width, height, s.deps.LoadErr)
	}

	w := layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Title.Render("Choose topics to practice"))
	b.WriteString("\n\n")
	b.WriteString(s.list.View(w))

	if n := s.deps.Bank.Skipped(); n > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d questions without options were left out.", n)))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.notice))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderNoData(width, height int, err error) string {
	var b strings.Builder
	b.WriteString(theme.Warning.Render("No quiz data"))
	b.WriteString("\n\n")
	if err != nil {
		b.WriteString(theme.Subtitle.Width(layout.ContentWidth(width)).Render(err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Hint.Render("Point BIOLQUIZ_BANK or --bank at a question bank file or URL."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
