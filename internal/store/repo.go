package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProgressRepo stores the last known correctness of each question, keyed by quiz.
// It backs the "previously mastered" indicators and is never used to seed a session.
type ProgressRepo interface {
	// Record overwrites the stored correctness for one question.
	Record(ctx context.Context, quizID, questionID string, correct bool) error

	// Quiz returns question id -> correct for one quiz.
	Quiz(ctx context.Context, quizID string) (map[string]bool, error)

	// All returns quiz id -> question id -> correct.
	All(ctx context.Context) (map[string]map[string]bool, error)

	// Reset deletes stored progress for quizID, or for every quiz when quizID is empty.
	// It returns the number of rows removed.
	Reset(ctx context.Context, quizID string) (int, error)
}

// Session event actions.
const (
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionAbandon = "abandon"
)

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID    string
	Action       string
	QuizIDs      []string
	Total        int
	Mastered     int
	FirstTry     int
	Attempts     int
	DurationSecs int
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID    string
	QuizID       string
	QuestionID   string
	Prompt       string
	Selected     int
	SelectedText string
	CorrectText  string
	Correct      bool
}

// SessionEvent is a stored SessionEventData.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// EventRepo provides append and query access to the session history.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// RecentSessions returns session events newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// RecentAnswers returns answer events newest first.
	RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)
}
