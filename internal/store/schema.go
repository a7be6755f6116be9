package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableProgress      = "question_progress"
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
	tableSequence      = "global_sequence"

	colID         = "id"
	colQuizID     = "quiz_id"
	colQuestionID = "question_id"
	colCorrect    = "correct"
	colUpdatedAt  = "updated_at"

	colSequence  = "sequence"
	colTimestamp = "timestamp"
	colSessionID = "session_id"

	colAction       = "action"
	colQuizIDs      = "quiz_ids"
	colTotal        = "total"
	colMastered     = "mastered"
	colFirstTry     = "first_try"
	colAttempts     = "attempts"
	colDurationSecs = "duration_secs"

	colPrompt       = "prompt"
	colSelected     = "selected"
	colSelectedText = "selected_text"
	colCorrectText  = "correct_text"

	colNextVal = "next_val"
)

var (
	progressColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colQuizID, Type: field.TypeString},
		{Name: colQuestionID, Type: field.TypeString},
		{Name: colCorrect, Type: field.TypeBool},
		{Name: colUpdatedAt, Type: field.TypeTime},
	}
	progressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "questionprogress_quiz_id_question_id",
				Unique:  true,
				Columns: []*schema.Column{progressColumns[1], progressColumns[2]},
			},
		},
	}

	sessionEventColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colSessionID, Type: field.TypeString},
		{Name: colAction, Type: field.TypeString},
		{Name: colQuizIDs, Type: field.TypeString, Default: ""},
		{Name: colTotal, Type: field.TypeInt, Default: 0},
		{Name: colMastered, Type: field.TypeInt, Default: 0},
		{Name: colFirstTry, Type: field.TypeInt, Default: 0},
		{Name: colAttempts, Type: field.TypeInt, Default: 0},
		{Name: colDurationSecs, Type: field.TypeInt, Default: 0},
	}
	sessionEventTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    sessionEventColumns,
		PrimaryKey: []*schema.Column{sessionEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventColumns[3]}},
		},
	}

	answerEventColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colSessionID, Type: field.TypeString},
		{Name: colQuizID, Type: field.TypeString},
		{Name: colQuestionID, Type: field.TypeString},
		{Name: colPrompt, Type: field.TypeString},
		{Name: colSelected, Type: field.TypeInt},
		{Name: colSelectedText, Type: field.TypeString, Default: ""},
		{Name: colCorrectText, Type: field.TypeString, Default: ""},
		{Name: colCorrect, Type: field.TypeBool},
	}
	answerEventTable = &schema.Table{
		Name:       tableAnswerEvents,
		Columns:    answerEventColumns,
		PrimaryKey: []*schema.Column{answerEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventColumns[3]}},
			{Name: "answerevent_question_id", Columns: []*schema.Column{answerEventColumns[5]}},
		},
	}

	sequenceColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt},
		{Name: colNextVal, Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	// tables lists everything the migrator creates, in creation order.
	tables = []*schema.Table{
		progressTable,
		sessionEventTable,
		answerEventTable,
		sequenceTable,
	}
)
