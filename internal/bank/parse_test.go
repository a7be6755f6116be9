package bank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoQuizDoc = `[
  {
    "quiz_title": "SQ topic 1 level 1a (Chapter 1)",
    "questions": [
      {
        "question": "What is the powerhouse of the cell?",
        "id": 123,
        "options": [
          {"text": "Nucleus", "is_correct": false, "comment": null},
          {"text": "\"Mitochondria\"", "is_correct": true, "comment": "Correct! ATP production."},
          {"text": "Ribosome", "is_correct": false, "comment": null}
        ],
        "neutral_comments": "See chapter 4."
      },
      {
        "question": "Pick nothing",
        "id": 124,
        "options": [
          {"text": "A", "is_correct": false, "comment": null},
          {"text": "B", "is_correct": false, "comment": null}
        ]
      }
    ]
  },
  {
    "quiz_title": "SQ topic 2",
    "questions": [
      {
        "question": "Shared question",
        "id": 123,
        "options": [{"text": "only", "is_correct": true, "comment": null}]
      },
      {
        "question": "Broken",
        "id": 999,
        "options": []
      }
    ]
  }
]`

func TestParse_BareArray(t *testing.T) {
	b, err := Parse([]byte(twoQuizDoc))
	require.NoError(t, err)

	assert.Equal(t, DefaultSubject, b.Subject)
	require.Len(t, b.Quizzes(), 2)

	quiz := b.Quizzes()[0]
	assert.Equal(t, "quiz_0", quiz.ID)
	assert.Equal(t, "SQ topic 1 level 1a (Chapter 1)", quiz.Title)
	require.Len(t, quiz.Questions, 2)

	q := quiz.Questions[0]
	assert.Equal(t, "q_123", q.ID)
	assert.Equal(t, "quiz_0", q.QuizID)
	assert.Equal(t, []string{"Nucleus", "Mitochondria", "Ribosome"}, q.Options)
	assert.Equal(t, 1, q.CorrectIndex)
	assert.Equal(t, "Correct! ATP production.", q.Explanation)
	assert.Equal(t, "See chapter 4.", q.Comments)
	assert.True(t, q.HasCorrectOption())
	assert.Equal(t, "Mitochondria", q.CorrectText())
}

func TestParse_NoCorrectOption(t *testing.T) {
	b, err := Parse([]byte(twoQuizDoc))
	require.NoError(t, err)

	q := b.Quizzes()[0].Questions[1]
	assert.Equal(t, NoCorrectOption, q.CorrectIndex)
	assert.False(t, q.HasCorrectOption())
	assert.Empty(t, q.CorrectText())
	assert.Empty(t, q.Explanation)
}

func TestParse_SkipsQuestionsWithoutOptions(t *testing.T) {
	b, err := Parse([]byte(twoQuizDoc))
	require.NoError(t, err)

	quiz, ok := b.Quiz("quiz_1")
	require.True(t, ok)
	assert.Len(t, quiz.Questions, 1)
	assert.Equal(t, 1, b.Skipped())
	assert.Equal(t, 3, b.QuestionCount())
}

func TestParse_Envelope(t *testing.T) {
	doc := `{"version": "v1.2.0", "subject": "BIOL 1009", "quizzes": [
		{"quiz_title": "Cells", "questions": [
			{"question": "Q", "id": 1, "options": [{"text": "x", "is_correct": true}]}
		]}
	]}`

	b, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "BIOL 1009", b.Subject)
	assert.Equal(t, "v1.2.0", b.Version)
	assert.Len(t, b.Quizzes(), 1)
}

func TestParse_EnvelopeVersionGate(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"newer major", "v2.0.0"},
		{"not semver", "latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"version": "` + tt.version + `", "quizzes": []}`
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedVersion))
		})
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `[{`},
		{"empty", `   `},
		{"missing title", `[{"questions": []}]`},
		{"string id", `[{"quiz_title": "t", "questions": [{"question": "q", "id": "1", "options": []}]}]`},
		{"option without flag", `[{"quiz_title": "t", "questions": [{"question": "q", "id": 1, "options": [{"text": "a"}]}]}]`},
		{"scalar document", `42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestSelect(t *testing.T) {
	b, err := Parse([]byte(twoQuizDoc))
	require.NoError(t, err)

	got := b.Select("quiz_1", "unknown", "quiz_0")
	ids := make([]string, len(got))
	for i, q := range got {
		ids[i] = q.ID
	}
	// q_123 appears in both quizzes; the first selected occurrence wins.
	assert.Equal(t, []string{"q_123", "q_124"}, ids)
	assert.Equal(t, "quiz_1", got[0].QuizID)

	assert.Empty(t, b.Select())
}

func TestQuizByTitle(t *testing.T) {
	b, err := Parse([]byte(twoQuizDoc))
	require.NoError(t, err)

	quiz, ok := b.QuizByTitle("SQ topic 2")
	require.True(t, ok)
	assert.Equal(t, "quiz_1", quiz.ID)

	_, ok = b.QuizByTitle("nope")
	assert.False(t, ok)
}

func TestSampleBank(t *testing.T) {
	b, err := Sample()
	require.NoError(t, err)
	require.NotEmpty(t, b.Quizzes())

	for _, quiz := range b.Quizzes() {
		for _, q := range quiz.Questions {
			assert.True(t, q.HasCorrectOption(), "sample question %s has no correct option", q.ID)
		}
	}
}
