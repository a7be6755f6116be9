package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/biolquiz/internal/bank"
	"github.com/abhisek/biolquiz/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BIOLQUIZ_DOTENV", filepath.Join(t.TempDir(), "missing.env"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cmd.db")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "biolquiz (devel)")
}

func TestTopicsCommand_SampleBank(t *testing.T) {
	db := tempDB(t)
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.ProgressRepo().Record(context.Background(), "quiz_0", "q_1", true))
	st.Close()

	out, err := execute(t, "topics", "--db", db, "--bank", "")
	require.NoError(t, err)
	assert.Contains(t, out, bank.DefaultSubject)
	assert.Contains(t, out, "quiz_0")
	assert.Contains(t, out, "Questions")
	assert.Contains(t, out, "questions mastered overall.")
}

func TestTopicsCommand_MissingBank(t *testing.T) {
	_, err := execute(t, "topics", "--db", tempDB(t), "--bank", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, bank.ErrNoData)
}

func TestResetCommand(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.ProgressRepo().Record(ctx, "quiz_0", "q_1", true))
	require.NoError(t, st.ProgressRepo().Record(ctx, "quiz_1", "q_2", false))
	st.Close()

	out, err := execute(t, "reset", "--db", db, "--quiz", "quiz_0")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 progress records for quiz_0.")

	out, err = execute(t, "reset", "--db", db, "--quiz", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 progress records for all quizzes.")
}

func TestStatsCommand(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No progress recorded yet.")

	st, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.ProgressRepo().Record(ctx, "quiz_0", "q_1", true))
	require.NoError(t, st.EventRepo().AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "s1",
		Action:    store.ActionEnd,
		QuizIDs:   []string{"quiz_0"},
		Total:     1,
		Mastered:  1,
		FirstTry:  1,
	}))
	st.Close()

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Progress")
	assert.Contains(t, out, "quiz_0")
	assert.Contains(t, out, "Recent sessions")
	assert.Contains(t, out, "1/1")
}

func TestHistoryCommand(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "history", "--db", db, "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "No answers recorded yet.")

	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.EventRepo().AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:    "s1",
		QuizID:       "quiz_0",
		QuestionID:   "q_7",
		Prompt:       "Powerhouse?",
		Selected:     1,
		SelectedText: "Mitochondria",
		Correct:      true,
	}))
	st.Close()

	out, err = execute(t, "history", "--db", db, "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "q_7")
	assert.Contains(t, out, "B) Mitochondria")
	assert.Contains(t, out, "correct")

	_, err = execute(t, "history", "--db", db, "--limit", "0")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
