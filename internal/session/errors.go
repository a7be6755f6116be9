package session

import "errors"

var (
	// ErrEmptySelection is returned by Start when no questions are given.
	ErrEmptySelection = errors.New("no questions selected")

	// ErrNoSelection is returned by Submit when no option has been chosen.
	ErrNoSelection = errors.New("no option selected")

	// ErrOptionOutOfRange is returned by SelectOption for an index the current question does not have.
	ErrOptionOutOfRange = errors.New("option index out of range")

	// ErrNoPendingFeedback is returned by Advance when no answer has been submitted.
	ErrNoPendingFeedback = errors.New("advance called before submit produced feedback")

	// ErrFeedbackPending is returned by SelectOption and Submit while feedback is showing.
	ErrFeedbackPending = errors.New("feedback already shown for the current question")

	// ErrSessionComplete is returned by the answering calls once the session has ended.
	ErrSessionComplete = errors.New("session is complete")
)

// IsProgrammerError reports whether err comes from calling the session out of sequence.
// Callers should log these as bugs rather than show them to the user.
func IsProgrammerError(err error) bool {
	return errors.Is(err, ErrNoPendingFeedback) ||
		errors.Is(err, ErrFeedbackPending) ||
		errors.Is(err, ErrSessionComplete)
}
