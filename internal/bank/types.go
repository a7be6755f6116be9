package bank

import "errors"

// NoCorrectOption marks a question whose source data flags no option as correct.
const NoCorrectOption = -1

// DefaultSubject is the display title used when the bank document does not name one.
const DefaultSubject = "BIOL 1009: General Biology"

// ErrNoData is returned when no usable quiz data could be loaded.
var ErrNoData = errors.New("no quiz data")

// ErrUnsupportedVersion is returned for a versioned bank newer than this build understands.
var ErrUnsupportedVersion = errors.New("unsupported question bank version")

// Question is a single multiple-choice item.
type Question struct {
	// ID is stable and unique within the bank, e.g. "q_123".
	ID string

	// QuizID is the id of the quiz (topic) the question belongs to.
	QuizID string

	Prompt  string
	Options []string

	// CorrectIndex indexes Options, or is NoCorrectOption.
	CorrectIndex int

	// Explanation is the comment attached to the correct option, if any.
	Explanation string

	// Comments holds neutral "additional information" text, if any.
	Comments string

	ImageURL string
}

// HasCorrectOption reports whether CorrectIndex refers to one of the options.
func (q Question) HasCorrectOption() bool {
	return q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// CorrectText returns the text of the correct option, or "" for a degenerate question.
func (q Question) CorrectText() string {
	if !q.HasCorrectOption() {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Quiz is a topic-scoped group of questions.
type Quiz struct {
	ID        string
	Title     string
	Questions []Question
}

// Bank is the full static question collection for a subject.
type Bank struct {
	Subject string
	Version string

	quizzes []Quiz
	skipped int
}

// Quizzes returns the quizzes in document order.
func (b *Bank) Quizzes() []Quiz {
	out := make([]Quiz, len(b.quizzes))
	copy(out, b.quizzes)
	return out
}

// Quiz looks a quiz up by id.
func (b *Bank) Quiz(id string) (Quiz, bool) {
	for _, q := range b.quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return Quiz{}, false
}

// QuizByTitle looks a quiz up by its title.
func (b *Bank) QuizByTitle(title string) (Quiz, bool) {
	for _, q := range b.quizzes {
		if q.Title == title {
			return q, true
		}
	}
	return Quiz{}, false
}

// QuestionCount returns the number of questions across all quizzes.
func (b *Bank) QuestionCount() int {
	n := 0
	for _, q := range b.quizzes {
		n += len(q.Questions)
	}
	return n
}

// Skipped returns how many source questions were dropped because they had no options.
func (b *Bank) Skipped() int {
	return b.skipped
}

// Select returns the questions of the given quizzes, in the order the ids are given.
// Unknown quiz ids are ignored and a question id appearing twice is kept once.
func (b *Bank) Select(quizIDs ...string) []Question {
	seen := make(map[string]bool)
	var out []Question
	for _, id := range quizIDs {
		quiz, ok := b.Quiz(id)
		if !ok {
			continue
		}
		for _, q := range quiz.Questions {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			out = append(out, q)
		}
	}
	return out
}
