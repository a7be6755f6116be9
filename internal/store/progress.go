package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// progressRepo implements ProgressRepo on the question_progress table.
type progressRepo struct {
	db *sql.DB
}

// Record upserts (quiz_id, question_id) -> correct. The last write wins.
func (r *progressRepo) Record(ctx context.Context, quizID, questionID string, correct bool) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableProgress).
		Columns(colQuizID, colQuestionID, colCorrect, colUpdatedAt).
		Values(quizID, questionID, correct, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns(colQuizID, colQuestionID),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress %s/%s: %w", quizID, questionID, err)
	}
	return nil
}

func (r *progressRepo) Quiz(ctx context.Context, quizID string) (map[string]bool, error) {
	all, err := r.query(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if m, ok := all[quizID]; ok {
		return m, nil
	}
	return map[string]bool{}, nil
}

func (r *progressRepo) All(ctx context.Context) (map[string]map[string]bool, error) {
	return r.query(ctx, "")
}

// query loads progress rows, restricted to one quiz when quizID is set.
func (r *progressRepo) query(ctx context.Context, quizID string) (map[string]map[string]bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(colQuizID, colQuestionID, colCorrect).From(b.Table(tableProgress))
	if quizID != "" {
		sel = sel.Where(entsql.EQ(colQuizID, quizID))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]bool)
	for rows.Next() {
		var qz, qn string
		var correct bool
		if err := rows.Scan(&qz, &qn, &correct); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		m, ok := out[qz]
		if !ok {
			m = make(map[string]bool)
			out[qz] = m
		}
		m[qn] = correct
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

func (r *progressRepo) Reset(ctx context.Context, quizID string) (int, error) {
	del := entsql.Dialect(dialect.SQLite).Delete(tableProgress)
	if quizID != "" {
		del = del.Where(entsql.EQ(colQuizID, quizID))
	}
	query, args := del.Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	return int(n), nil
}

// MasteredCount counts the entries of a per-quiz progress map that are marked correct.
func MasteredCount(progress map[string]bool) int {
	n := 0
	for _, ok := range progress {
		if ok {
			n++
		}
	}
	return n
}
