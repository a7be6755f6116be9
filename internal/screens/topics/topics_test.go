package topics

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/biolquiz/internal/bank"
	"github.com/abhisek/biolquiz/internal/router"
	"github.com/abhisek/biolquiz/internal/screens/quiz"
	"github.com/abhisek/biolquiz/internal/store"
)

const testBank = `{
  "version": "v1.0.0",
  "subject": "BIOL 1009",
  "quizzes": [
    {
      "quiz_title": "Cells",
      "questions": [
        {"question": "Powerhouse of the cell?", "id": 1, "options": [
          {"text": "Mitochondrion", "is_correct": true, "comment": null},
          {"text": "Ribosome", "is_correct": false, "comment": null}
        ]},
        {"question": "Site of protein synthesis?", "id": 2, "options": [
          {"text": "Ribosome", "is_correct": true, "comment": null},
          {"text": "Lysosome", "is_correct": false, "comment": null}
        ]}
      ]
    },
    {
      "quiz_title": "Genetics",
      "questions": [
        {"question": "Which base pairs with adenine?", "id": 3, "options": [
          {"text": "Thymine", "is_correct": true, "comment": null},
          {"text": "Guanine", "is_correct": false, "comment": null}
        ]}
      ]
    }
  ]
}`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestScreen(t *testing.T) (*TopicsScreen, *store.Store) {
	t.Helper()
	b, err := bank.Parse([]byte(testBank))
	require.NoError(t, err)

	st, err := store.Open(filepath.Join(t.TempDir(), "topics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := New(Deps{
		Bank:     b,
		Progress: st.ProgressRepo(),
		Quiz: quiz.Deps{
			Progress: st.ProgressRepo(),
			Events:   st.EventRepo(),
		},
	})
	return s, st
}

// load runs the screen's progress command and feeds the result back in.
func load(t *testing.T, s *TopicsScreen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestTopicsScreen_ListsQuizzes(t *testing.T) {
	s, _ := newTestScreen(t)
	load(t, s, s.Init())

	view := s.View(80, 24)
	assert.Contains(t, view, "Cells")
	assert.Contains(t, view, "Genetics")
	assert.Contains(t, view, "0/2 mastered")
	assert.Equal(t, "0/3 mastered", s.Status())
	assert.Equal(t, "BIOL 1009", s.Title())
}

func TestTopicsScreen_StartRequiresSelection(t *testing.T) {
	s, _ := newTestScreen(t)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(80, 24), "Select at least one topic.")
}

func TestTopicsScreen_ToggleAndStart(t *testing.T) {
	s, _ := newTestScreen(t)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeySpace))
	assert.Equal(t, []string{"quiz_1"}, s.Selected())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg")

	q, ok := msg.Screen.(*quiz.QuizScreen)
	require.True(t, ok, "expected quiz screen")
	assert.Equal(t, 1, q.Session().Total())
}

func TestTopicsScreen_ToggleAll(t *testing.T) {
	s, _ := newTestScreen(t)

	s.Update(keyPress('a'))
	assert.Equal(t, []string{"quiz_0", "quiz_1"}, s.Selected())

	s.Update(keyPress('a'))
	assert.Empty(t, s.Selected())
}

func TestTopicsScreen_ResumeRefreshesProgress(t *testing.T) {
	s, st := newTestScreen(t)
	s.Update(keyPress('a'))
	load(t, s, s.Init())

	require.NoError(t, st.ProgressRepo().Record(context.Background(), "quiz_0", "q_1", true))
	load(t, s, s.Resume())

	assert.Equal(t, "1/3 mastered", s.Status())
	assert.Contains(t, s.View(80, 24), "1/2 mastered")
	// Checked topics survive the refresh.
	assert.Equal(t, []string{"quiz_0", "quiz_1"}, s.Selected())
}

func TestTopicsScreen_NoData(t *testing.T) {
	s := New(Deps{LoadErr: errors.New("fetch bank: status 500")})

	assert.Nil(t, s.Init())
	view := s.View(80, 24)
	assert.Contains(t, view, "No quiz data")
	assert.Contains(t, view, "status 500")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, bank.DefaultSubject, s.Title())
	assert.Empty(t, s.Status())
}

func TestTopicsScreen_Quit(t *testing.T) {
	s, _ := newTestScreen(t)
	_, cmd := s.Update(keyPress('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "expected QuitMsg")
}

func TestTopicsScreen_KeyHints(t *testing.T) {
	s, _ := newTestScreen(t)
	var keys []string
	for _, h := range s.KeyHints() {
		keys = append(keys, h.Key)
	}
	assert.Equal(t, "↑↓ Space A Enter H Q", strings.Join(keys, " "))
}

func TestTopicsScreen_History(t *testing.T) {
	s, _ := newTestScreen(t)
	_, cmd := s.Update(keyPress('h'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg")
	assert.Equal(t, "History", msg.Screen.Title())
}
