package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/biolquiz/internal/bank"
	"github.com/abhisek/biolquiz/internal/router"
	"github.com/abhisek/biolquiz/internal/screen"
	"github.com/abhisek/biolquiz/internal/screens/results"
	"github.com/abhisek/biolquiz/internal/session"
	"github.com/abhisek/biolquiz/internal/store"
	"github.com/abhisek/biolquiz/internal/ui/components"
	"github.com/abhisek/biolquiz/internal/ui/layout"
)

// Deps are the collaborators a quiz screen writes to. Any of them may be nil.
type Deps struct {
	Progress store.ProgressRepo
	Events   store.EventRepo
	Logger   *zerolog.Logger

	// Rand fixes the question order; nil uses a random order.
	Rand *rand.Rand
}

// QuizScreen runs one session over the selected questions.
type QuizScreen struct {
	deps    Deps
	quizIDs []string
	sess    *session.Session
	choices components.MultiChoice
	started time.Time
	notice  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Capturer = (*QuizScreen)(nil)

// New starts a session over questions drawn from quizIDs.
func New(deps Deps, quizIDs []string, questions []bank.Question) (*QuizScreen, error) {
	if deps.Logger == nil {
		nop := zerolog.Nop()
		deps.Logger = &nop
	}

	opts := []session.Option{session.WithLogger(*deps.Logger)}
	if deps.Progress != nil {
		opts = append(opts, session.WithRecorder(deps.Progress))
	}
	if deps.Rand != nil {
		opts = append(opts, session.WithRand(deps.Rand))
	}

	sess, err := session.Start(questions, opts...)
	if err != nil {
		return nil, err
	}

	s := &QuizScreen{
		deps:    deps,
		quizIDs: quizIDs,
		sess:    sess,
		started: time.Now(),
	}
	s.resetChoices()
	return s, nil
}

// Session exposes the running session.
func (s *QuizScreen) Session() *session.Session {
	return s.sess
}

func (s *QuizScreen) Init() tea.Cmd {
	s.appendSessionEvent(store.ActionStart, nil)
	s.deps.Logger.Info().
		Str("session_id", s.sess.ID()).
		Strs("quiz_ids", s.quizIDs).
		Int("total", s.sess.Total()).
		Msg("session started")
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("%d/%d mastered", s.sess.MasteredCount(), s.sess.Total())
}

func (s *QuizScreen) CapturesEscape() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.sess.Phase() == session.PhaseAwaitingAdvance {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "X", Description: "Done"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/A-I", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "X", Description: "Done"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s.abandon()
	case "x":
		return s.finish(s.sess.Finish())
	case "enter":
		pressed, notice := s.button().Update(msg)
		if !pressed {
			s.notice = notice
			return s, nil
		}
		if s.sess.Phase() == session.PhaseAwaitingAdvance {
			return s.advance()
		}
		return s.submit()
	}

	if s.sess.Phase() == session.PhaseAwaitingAdvance {
		return s, nil
	}

	choices, moved := s.choices.Update(msg)
	if !moved {
		return s, nil
	}
	if err := s.sess.SelectOption(choices.Cursor); err != nil {
		s.logError(err, "select option")
		return s, nil
	}
	s.choices = choices
	s.notice = ""
	return s, nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	fb, err := s.sess.Submit(context.Background())
	if err != nil {
		s.logError(err, "submit answer")
		return s, nil
	}
	s.choices = s.choices.Reveal(fb.Selected, fb.CorrectIndex)
	s.notice = ""

	q := fb.Question
	data := store.AnswerEventData{
		SessionID:   s.sess.ID(),
		QuizID:      q.QuizID,
		QuestionID:  q.ID,
		Prompt:      q.Prompt,
		Selected:    fb.Selected,
		CorrectText: q.CorrectText(),
		Correct:     fb.Correct,
	}
	if fb.Selected >= 0 && fb.Selected < len(q.Options) {
		data.SelectedText = q.Options[fb.Selected]
	}
	if s.deps.Events != nil {
		if err := s.deps.Events.AppendAnswerEvent(context.Background(), data); err != nil {
			s.deps.Logger.Warn().Err(err).Str("question_id", q.ID).Msg("failed to append answer event")
		}
	}
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	out, err := s.sess.Advance()
	if err != nil {
		s.logError(err, "advance")
		return s, nil
	}
	if out.Complete {
		return s.finish(*out.Result)
	}
	s.resetChoices()
	return s, nil
}

// finish records the end of the session and swaps in the results screen.
func (s *QuizScreen) finish(res session.Result) (screen.Screen, tea.Cmd) {
	s.appendSessionEvent(store.ActionEnd, &res)
	s.deps.Logger.Info().
		Str("session_id", res.SessionID).
		Int("mastered", res.Mastered).
		Int("total", res.Total).
		Int("percent", res.Percent()).
		Msg("session finished")

	retake := func() (screen.Screen, error) {
		return New(s.deps, s.quizIDs, s.sess.Questions())
	}
	return s, router.Replace(results.New(res, retake))
}

func (s *QuizScreen) abandon() (screen.Screen, tea.Cmd) {
	res := s.sess.Finish()
	s.appendSessionEvent(store.ActionAbandon, &res)
	s.deps.Logger.Info().Str("session_id", res.SessionID).Msg("session abandoned")
	return s, router.Pop
}

func (s *QuizScreen) resetChoices() {
	q, ok := s.sess.Current()
	if !ok {
		s.choices = components.NewMultiChoice(nil)
		return
	}
	s.choices = components.NewMultiChoice(q.Options)
}

func (s *QuizScreen) appendSessionEvent(action string, res *session.Result) {
	if s.deps.Events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID: s.sess.ID(),
		Action:    action,
		QuizIDs:   s.quizIDs,
		Total:     s.sess.Total(),
		Attempts:  s.sess.Attempts(),
	}
	if res != nil {
		data.Mastered = res.Mastered
		data.FirstTry = res.FirstTry
		data.DurationSecs = int(time.Since(s.started).Seconds())
	}
	if err := s.deps.Events.AppendSessionEvent(context.Background(), data); err != nil {
		s.deps.Logger.Warn().Err(err).Str("action", action).Msg("failed to append session event")
	}
}

func (s *QuizScreen) logError(err error, op string) {
	ev := s.deps.Logger.Debug()
	if session.IsProgrammerError(err) {
		ev = s.deps.Logger.Error()
	}
	ev.Err(err).Str("op", op).Str("phase", s.sess.Phase().String()).Msg("session rejected input")
}
