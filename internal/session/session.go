package session

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/biolquiz/internal/bank"
)

// Session is one run over a selected set of questions. Questions answered
// incorrectly are moved to the back of the queue and asked again; a question
// leaves the queue only once it is answered correctly.
//
// A Session is not safe for concurrent use.
type Session struct {
	id string

	selection []bank.Question
	queue     []bank.Question
	cursor    int
	total     int

	mastered  map[string]bool
	wrong     map[string]bool
	everWrong []bank.Question
	answers   map[string]int

	pending  int
	feedback *Feedback
	complete bool
	attempts int

	recorder ProgressRecorder
	logger   zerolog.Logger
	rng      *rand.Rand
}

// Start creates a session over questions in shuffled order.
// Repeated question ids are kept once, at their first occurrence.
func Start(questions []bank.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptySelection
	}

	s := &Session{
		mastered: make(map[string]bool),
		wrong:    make(map[string]bool),
		answers:  make(map[string]int),
		pending:  NoOption,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}

	seen := make(map[string]bool, len(questions))
	s.queue = make([]bank.Question, 0, len(questions))
	for _, q := range questions {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		s.queue = append(s.queue, q)
	}
	s.total = len(s.queue)
	s.selection = append([]bank.Question(nil), s.queue...)
	s.shuffle()

	return s, nil
}

// shuffle permutes the queue uniformly (Fisher-Yates).
func (s *Session) shuffle() {
	swap := func(i, j int) { s.queue[i], s.queue[j] = s.queue[j], s.queue[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(s.queue), swap)
		return
	}
	rand.Shuffle(len(s.queue), swap)
}

// SelectOption chooses an option for the current question. It may be called
// any number of times before Submit.
func (s *Session) SelectOption(i int) error {
	if s.complete {
		return ErrSessionComplete
	}
	if s.feedback != nil {
		return ErrFeedbackPending
	}
	q := s.queue[s.cursor]
	if i < 0 || i >= len(q.Options) {
		return fmt.Errorf("%w: %d (question has %d options)", ErrOptionOutOfRange, i, len(q.Options))
	}
	s.pending = i
	return nil
}

// Submit scores the pending selection against the current question and
// records it. The queue is not advanced until Advance is called.
func (s *Session) Submit(ctx context.Context) (Feedback, error) {
	if s.complete {
		return Feedback{}, ErrSessionComplete
	}
	if s.feedback != nil {
		return Feedback{}, ErrFeedbackPending
	}
	if s.pending == NoOption {
		return Feedback{}, ErrNoSelection
	}

	q := s.queue[s.cursor]
	// A question without a valid correct index can never be answered correctly.
	correct := q.HasCorrectOption() && s.pending == q.CorrectIndex

	s.answers[q.ID] = s.pending
	s.attempts++

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, q.QuizID, q.ID, correct); err != nil {
			s.logger.Warn().Err(err).
				Str("quiz_id", q.QuizID).
				Str("question_id", q.ID).
				Msg("failed to save progress")
		}
	}

	fb := Feedback{
		Correct:      correct,
		Selected:     s.pending,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		Question:     q,
	}
	s.feedback = &fb
	return fb, nil
}

// Advance applies the requeue rule to the question whose feedback is showing.
// A correct answer removes it from the queue; an incorrect one moves it to the back.
func (s *Session) Advance() (Outcome, error) {
	if s.complete {
		return Outcome{}, ErrSessionComplete
	}
	if s.feedback == nil {
		return Outcome{}, ErrNoPendingFeedback
	}

	q := s.queue[s.cursor]
	correct := s.feedback.Correct
	s.pending = NoOption
	s.feedback = nil

	if correct {
		s.mastered[q.ID] = true
		s.queue = append(s.queue[:s.cursor], s.queue[s.cursor+1:]...)
		if len(s.queue) == 0 {
			s.complete = true
			s.logger.Debug().Str("session_id", s.id).Int("attempts", s.attempts).Msg("session complete")
			return Outcome{Complete: true, Result: buildResult(s)}, nil
		}
		if s.cursor >= len(s.queue) {
			s.cursor = len(s.queue) - 1
		}
		return Outcome{}, nil
	}

	if !s.wrong[q.ID] {
		s.wrong[q.ID] = true
		s.everWrong = append(s.everWrong, q)
	}
	s.queue = append(s.queue[:s.cursor], s.queue[s.cursor+1:]...)
	s.queue = append(s.queue, q)
	if s.cursor >= len(s.queue)-1 {
		s.cursor = 0
	}
	return Outcome{}, nil
}

// Finish ends the session early and returns the answers so far.
// Calling it on a completed session returns the same snapshot again.
func (s *Session) Finish() Result {
	s.complete = true
	s.pending = NoOption
	s.feedback = nil
	return *buildResult(s)
}
