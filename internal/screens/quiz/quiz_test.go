package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/biolquiz/internal/bank"
	"github.com/abhisek/biolquiz/internal/router"
	"github.com/abhisek/biolquiz/internal/screens/results"
	"github.com/abhisek/biolquiz/internal/session"
	"github.com/abhisek/biolquiz/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestions(n int) []bank.Question {
	qs := make([]bank.Question, n)
	for i := range qs {
		qs[i] = bank.Question{
			ID:           fmt.Sprintf("q_%d", i+1),
			QuizID:       "quiz_0",
			Prompt:       fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"Alpha", "Beta", "Gamma"},
			CorrectIndex: i % 3,
			Explanation:  "Because.",
		}
	}
	return qs
}

func newTestScreen(t *testing.T, n int) (*QuizScreen, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s, err := New(Deps{
		Progress: st.ProgressRepo(),
		Events:   st.EventRepo(),
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}, []string{"quiz_0"}, testQuestions(n))
	require.NoError(t, err)
	s.Init()
	return s, st
}

// answer selects the right or a wrong option by letter and submits.
func answer(t *testing.T, s *QuizScreen, correct bool) {
	t.Helper()
	q, ok := s.Session().Current()
	require.True(t, ok)
	i := q.CorrectIndex
	if !correct {
		i = (i + 1) % len(q.Options)
	}
	s.Update(keyPress(rune('a' + i)))
	require.Equal(t, i, s.Session().Pending())
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	require.Equal(t, session.PhaseAwaitingAdvance, s.Session().Phase())
}

func TestNew_EmptySelection(t *testing.T) {
	_, err := New(Deps{}, nil, nil)
	assert.ErrorIs(t, err, session.ErrEmptySelection)
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := newTestScreen(t, 2)
	assert.Equal(t, "Quiz", s.Title())
	assert.Equal(t, "0/2 mastered", s.Status())
	assert.True(t, s.CapturesEscape())
}

func TestQuizScreen_EnterWithoutSelection(t *testing.T) {
	s, _ := newTestScreen(t, 2)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, session.PhaseAwaitingSelection, s.Session().Phase())
	assert.Contains(t, s.View(80, 24), "Choose an answer first.")
}

func TestQuizScreen_ButtonFollowsPhase(t *testing.T) {
	s, _ := newTestScreen(t, 2)

	b := s.button()
	assert.True(t, b.Disabled)
	assert.Equal(t, "Submit", b.Label)

	s.Update(keyPress('a'))
	b = s.button()
	assert.False(t, b.Disabled)
	assert.Equal(t, "Submit", b.Label)

	_, _ = s.Update(specialKey(tea.KeyEnter))
	require.Equal(t, session.PhaseAwaitingAdvance, s.Session().Phase())
	assert.Equal(t, "Next", s.button().Label)
	assert.Contains(t, s.View(80, 40), "Next")

	_, _ = s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, session.PhaseAwaitingSelection, s.Session().Phase())
	assert.Empty(t, s.notice)
}

func TestQuizScreen_ArrowsSelect(t *testing.T) {
	s, _ := newTestScreen(t, 2)

	s.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 0, s.Session().Pending())
	s.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 1, s.Session().Pending())
	s.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 0, s.Session().Pending())

	// Digits select too.
	s.Update(keyPress('3'))
	assert.Equal(t, 2, s.Session().Pending())

	// Out-of-range letters are ignored.
	s.Update(keyPress('e'))
	assert.Equal(t, 2, s.Session().Pending())
}

func TestQuizScreen_CorrectAnswerIsRecorded(t *testing.T) {
	s, st := newTestScreen(t, 2)
	ctx := context.Background()

	q, _ := s.Session().Current()
	answer(t, s, true)
	assert.Contains(t, s.View(80, 30), "Correct!")

	progress, err := st.ProgressRepo().Quiz(ctx, "quiz_0")
	require.NoError(t, err)
	assert.True(t, progress[q.ID])

	answers, err := st.EventRepo().RecentAnswers(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.True(t, answers[0].Correct)
	assert.Equal(t, q.ID, answers[0].QuestionID)
	assert.Equal(t, q.CorrectText(), answers[0].SelectedText)

	// Selection keys are ignored while feedback shows.
	s.Update(keyPress('a'))
	assert.Equal(t, q.CorrectIndex, s.Session().Pending())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, s.Session().Remaining())
	assert.Equal(t, session.PhaseAwaitingSelection, s.Session().Phase())
	assert.Equal(t, "1/2 mastered", s.Status())
}

func TestQuizScreen_WrongAnswerShowsCorrectOption(t *testing.T) {
	s, _ := newTestScreen(t, 2)

	q, _ := s.Session().Current()
	answer(t, s, false)
	view := s.View(80, 30)
	assert.Contains(t, view, "Not quite.")
	assert.Contains(t, view, q.CorrectText())

	s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, 2, s.Session().Remaining())
	assert.Equal(t, 0, s.Session().MasteredCount())
}

func TestQuizScreen_CompletionShowsResults(t *testing.T) {
	s, st := newTestScreen(t, 2)
	ctx := context.Background()

	answer(t, s, false)
	s.Update(specialKey(tea.KeyEnter))
	answer(t, s, true)
	s.Update(specialKey(tea.KeyEnter))
	answer(t, s, true)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg")
	_, ok = msg.Screen.(*results.ResultsScreen)
	assert.True(t, ok, "expected results screen")
	assert.Equal(t, session.PhaseComplete, s.Session().Phase())

	sessions, err := st.EventRepo().RecentSessions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, store.ActionEnd, sessions[0].Action)
	assert.Equal(t, 2, sessions[0].Mastered)
	assert.Equal(t, 1, sessions[0].FirstTry)
	assert.Equal(t, 3, sessions[0].Attempts)
	assert.Equal(t, store.ActionStart, sessions[1].Action)
	assert.Equal(t, []string{"quiz_0"}, sessions[1].QuizIDs)
}

func TestQuizScreen_DoneEndsEarly(t *testing.T) {
	s, st := newTestScreen(t, 3)

	answer(t, s, true)
	s.Update(specialKey(tea.KeyEnter))

	_, cmd := s.Update(keyPress('x'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg")

	res, ok := msg.Screen.(*results.ResultsScreen)
	require.True(t, ok)
	assert.Contains(t, res.View(80, 24), "Ended early: 1 of 3 mastered")

	sessions, err := st.EventRepo().RecentSessions(context.Background(), store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, store.ActionEnd, sessions[0].Action)
	assert.Equal(t, 1, sessions[0].Mastered)
}

func TestQuizScreen_EscAbandons(t *testing.T) {
	s, st := newTestScreen(t, 2)

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok, "expected PopScreenMsg")
	assert.Equal(t, session.PhaseComplete, s.Session().Phase())

	sessions, err := st.EventRepo().RecentSessions(context.Background(), store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, store.ActionAbandon, sessions[0].Action)
}

func TestQuizScreen_RetakeStartsOver(t *testing.T) {
	s, _ := newTestScreen(t, 2)

	answer(t, s, true)
	s.Update(specialKey(tea.KeyEnter))
	_, cmd := s.Update(keyPress('x'))
	res := cmd().(router.ReplaceScreenMsg).Screen

	_, cmd = res.Update(keyPress('r'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)

	again, ok := msg.Screen.(*QuizScreen)
	require.True(t, ok, "expected a new quiz screen")
	assert.NotEqual(t, s.Session().ID(), again.Session().ID())
	assert.Equal(t, 2, again.Session().Total())
	assert.Equal(t, 0, again.Session().MasteredCount())
}

func TestQuizScreen_NoCorrectOption(t *testing.T) {
	qs := testQuestions(1)
	qs[0].CorrectIndex = bank.NoCorrectOption
	s, err := New(Deps{}, []string{"quiz_0"}, qs)
	require.NoError(t, err)

	s.Update(keyPress('a'))
	s.Update(specialKey(tea.KeyEnter))
	fb, ok := s.Session().LastFeedback()
	require.True(t, ok)
	assert.False(t, fb.Correct)
	assert.Contains(t, s.View(80, 30), "no answer marked correct")
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _ := newTestScreen(t, 1)
	assert.Equal(t, "Submit", s.KeyHints()[1].Description)

	answer(t, s, true)
	hints := s.KeyHints()
	assert.Equal(t, "Next", hints[0].Description)

	var keys []string
	for _, h := range hints {
		keys = append(keys, h.Key)
	}
	assert.Contains(t, strings.Join(keys, " "), "Esc")
}
