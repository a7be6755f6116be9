package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo. Every event takes its sequence from the
// shared counter before insert.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessionEvents).
		Columns(colSequence, colTimestamp, colSessionID, colAction, colQuizIDs,
			colTotal, colMastered, colFirstTry, colAttempts, colDurationSecs).
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Action, strings.Join(data.QuizIDs, ","),
			data.Total, data.Mastered, data.FirstTry, data.Attempts, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAnswerEvents).
		Columns(colSequence, colTimestamp, colSessionID, colQuizID, colQuestionID,
			colPrompt, colSelected, colSelectedText, colCorrectText, colCorrect).
		Values(seqNum, time.Now().UTC(), data.SessionID, data.QuizID, data.QuestionID,
			data.Prompt, data.Selected, data.SelectedText, data.CorrectText, data.Correct).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	query, args := recentQuery(tableSessionEvents, opts, colSequence, colTimestamp, colSessionID,
		colAction, colQuizIDs, colTotal, colMastered, colFirstTry, colAttempts, colDurationSecs)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var e SessionEvent
		var quizIDs string
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.Action, &quizIDs,
			&e.Total, &e.Mastered, &e.FirstTry, &e.Attempts, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if quizIDs != "" {
			e.QuizIDs = strings.Split(quizIDs, ",")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	query, args := recentQuery(tableAnswerEvents, opts, colSequence, colTimestamp, colSessionID,
		colQuizID, colQuestionID, colPrompt, colSelected, colSelectedText, colCorrectText, colCorrect)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.QuizID, &e.QuestionID,
			&e.Prompt, &e.Selected, &e.SelectedText, &e.CorrectText, &e.Correct); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return out, nil
}

// recentQuery builds a newest-first select over an event table honoring opts.
func recentQuery(table string, opts QueryOpts, columns ...string) (string, []any) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(columns...).From(b.Table(table))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(colTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(colTimestamp, opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}

	sel = sel.OrderBy(entsql.Desc(colSequence))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel.Query()
}
