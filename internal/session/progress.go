package session

import "github.com/abhisek/biolquiz/internal/bank"

// Progress returns the mastered share of the original question count, 0 to 100.
func (s *Session) Progress() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(len(s.mastered)) / float64(s.total) * 100
}

func (s *Session) ID() string { return s.id }

// Current returns the question at the cursor. ok is false once the session is complete.
func (s *Session) Current() (q bank.Question, ok bool) {
	if s.complete || len(s.queue) == 0 {
		return bank.Question{}, false
	}
	return s.queue[s.cursor], true
}

// Phase returns where the session is in the select/submit/advance cycle.
func (s *Session) Phase() Phase {
	switch {
	case s.complete:
		return PhaseComplete
	case s.feedback != nil:
		return PhaseAwaitingAdvance
	case s.pending != NoOption:
		return PhaseAwaitingSubmission
	default:
		return PhaseAwaitingSelection
	}
}

// Pending returns the chosen but unsubmitted option, or NoOption.
func (s *Session) Pending() int { return s.pending }

// LastFeedback returns the feedback showing for the current question, if any.
func (s *Session) LastFeedback() (Feedback, bool) {
	if s.feedback == nil {
		return Feedback{}, false
	}
	return *s.feedback, true
}

// Total is the number of distinct questions the session started with.
func (s *Session) Total() int { return s.total }

func (s *Session) MasteredCount() int { return len(s.mastered) }

// Remaining is the number of questions still in the queue.
func (s *Session) Remaining() int { return len(s.queue) }

// Position is the 1-based place of the current question in the remaining queue.
func (s *Session) Position() int { return s.cursor + 1 }

// Attempts counts submitted answers, including repeats of requeued questions.
func (s *Session) Attempts() int { return s.attempts }

func (s *Session) IsMastered(id string) bool { return s.mastered[id] }

// Answers returns a copy of the last submitted option per question id.
func (s *Session) Answers() map[string]int {
	out := make(map[string]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// EverWrong returns a copy of the questions answered incorrectly at least once.
func (s *Session) EverWrong() []bank.Question {
	out := make([]bank.Question, len(s.everWrong))
	copy(out, s.everWrong)
	return out
}

// Questions returns the distinct questions the session was started with, in selection order.
func (s *Session) Questions() []bank.Question {
	out := make([]bank.Question, len(s.selection))
	copy(out, s.selection)
	return out
}
