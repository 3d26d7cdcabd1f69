package model

import "time"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

// Question is validated at quiz publication time: multiple-choice carries
// its option set (and the correct answer must be one of them), true-false
// is restricted to "true"/"false", short-answer is free text.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"` // present iff multiple-choice
	CorrectAnswer string       `json:"correct_answer"`
	Points        int          `json:"points"`
}

// Quiz is immutable once published. TotalPoints is derived from the
// questions at publication and never recomputed afterwards.
type Quiz struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Deadline            time.Time  `json:"deadline"`
	Questions           []Question `json:"questions"`
	PassingScorePercent float64    `json:"passing_score_percent"`
	TotalPoints         int        `json:"total_points"`
	TimeLimitMinutes    int        `json:"time_limit_minutes"`
	CreatedAt           time.Time  `json:"created_at"`
}
