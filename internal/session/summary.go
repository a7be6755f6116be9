package session

import (
	"math"

	"github.com/abhisek/biolquiz/internal/bank"
)

// Result holds what a finished session hands to the results screen.
type Result struct {
	SessionID string

	// Answers maps question id to the last submitted option index.
	Answers map[string]int

	// EverWrong lists questions answered incorrectly at least once, in first-miss order.
	EverWrong []bank.Question

	Total    int
	Mastered int

	// FirstTry counts mastered questions that were never answered incorrectly.
	FirstTry int
}

// Percent returns the first-try score as a whole percentage.
func (r Result) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.FirstTry) / float64(r.Total) * 100))
}

// Completed reports whether every question was mastered.
func (r Result) Completed() bool {
	return r.Total > 0 && r.Mastered == r.Total
}

// buildResult snapshots the session into a Result.
func buildResult(s *Session) *Result {
	firstTry := 0
	for id := range s.mastered {
		if !s.wrong[id] {
			firstTry++
		}
	}
	return &Result{
		SessionID: s.id,
		Answers:   s.Answers(),
		EverWrong: s.EverWrong(),
		Total:     s.total,
		Mastered:  len(s.mastered),
		FirstTry:  firstTry,
	}
}
