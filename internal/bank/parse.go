package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the newest envelope major version this build reads.
const SupportedMajor = "v1"

type jsonOption struct {
	Text      string  `json:"text"`
	IsCorrect bool    `json:"is_correct"`
	Comment   *string `json:"comment"`
}

type jsonQuestion struct {
	Question         string       `json:"question"`
	QuestionImageURL *string      `json:"question_image_url"`
	Unique           bool         `json:"unique"`
	ID               int          `json:"id"`
	Options          []jsonOption `json:"options"`
	NeutralComments  *string      `json:"neutral_comments"`
}

type jsonQuiz struct {
	QuizTitle       string         `json:"quiz_title"`
	Questions       []jsonQuestion `json:"questions"`
	UniqueQuestions *int           `json:"unique_questions"`
}

type jsonEnvelope struct {
	Version string     `json:"version"`
	Subject string     `json:"subject"`
	Quizzes []jsonQuiz `json:"quizzes"`
}

// Parse decodes, validates and converts a question bank document.
func Parse(data []byte, opts ...Option) (*Bank, error) {
	o := newOptions(opts)

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var env jsonEnvelope
	if data[0] == '[' {
		if err := json.Unmarshal(data, &env.Quizzes); err != nil {
			return nil, fmt.Errorf("decode quizzes: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		if err := checkVersion(env.Version); err != nil {
			return nil, err
		}
	}

	b := &Bank{
		Subject: env.Subject,
		Version: env.Version,
	}
	if b.Subject == "" {
		b.Subject = DefaultSubject
	}

	for i, jq := range env.Quizzes {
		quiz := Quiz{
			ID:    fmt.Sprintf("quiz_%d", i),
			Title: jq.QuizTitle,
		}
		for _, q := range jq.Questions {
			if len(q.Options) == 0 {
				b.skipped++
				continue
			}
			quiz.Questions = append(quiz.Questions, convertQuestion(quiz.ID, q, o.imageBase))
		}
		b.quizzes = append(b.quizzes, quiz)
	}

	return b, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Compare(semver.Major(v), SupportedMajor) > 0 {
		return fmt.Errorf("%w: %s (this build reads %s.x)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

// convertQuestion flattens the option objects into display strings plus a correct index.
func convertQuestion(quizID string, q jsonQuestion, imageBase string) Question {
	out := Question{
		ID:           fmt.Sprintf("q_%d", q.ID),
		QuizID:       quizID,
		Prompt:       RewriteImageURLs(q.Question, imageBase),
		Options:      make([]string, len(q.Options)),
		CorrectIndex: NoCorrectOption,
	}

	for i, opt := range q.Options {
		out.Options[i] = strings.ReplaceAll(opt.Text, `"`, "")
		if opt.IsCorrect && out.CorrectIndex == NoCorrectOption {
			out.CorrectIndex = i
			if opt.Comment != nil {
				out.Explanation = strings.TrimSpace(*opt.Comment)
			}
		}
	}

	if q.NeutralComments != nil {
		out.Comments = RewriteImageURLs(strings.TrimSpace(*q.NeutralComments), imageBase)
	}
	if q.QuestionImageURL != nil {
		out.ImageURL = strings.TrimSpace(*q.QuestionImageURL)
	}

	return out
}
