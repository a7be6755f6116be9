package session

import (
	"context"

	"github.com/abhisek/biolquiz/internal/bank"
)

// NoOption is the pending selection value when nothing has been chosen.
const NoOption = -1

// ProgressRecorder persists per-question correctness outside the session.
// The session only writes to it; it never reads it back.
type ProgressRecorder interface {
	Record(ctx context.Context, quizID, questionID string, correct bool) error
}

// Phase represents where a session is in its select/submit/advance cycle.
type Phase int

const (
	PhaseAwaitingSelection  Phase = iota // No option chosen for the current question
	PhaseAwaitingSubmission              // An option is chosen but not submitted
	PhaseAwaitingAdvance                 // Feedback is showing
	PhaseComplete                        // Queue emptied or Finish called
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSelection:
		return "awaiting_selection"
	case PhaseAwaitingSubmission:
		return "awaiting_submission"
	case PhaseAwaitingAdvance:
		return "awaiting_advance"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Feedback is what Submit reports about the answer just given.
type Feedback struct {
	Correct      bool
	Selected     int
	CorrectIndex int
	Explanation  string

	// Question is the question that was answered.
	Question bank.Question
}

// Outcome is the result of Advance. Result is set only when Complete is true.
type Outcome struct {
	Complete bool
	Result   *Result
}
