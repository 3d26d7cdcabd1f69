package model

import "time"

// QuizAttempt is one timed run of a quiz. Unlike Submission, attempts are
// append-only: a retry produces a new record and prior attempts are kept.
type QuizAttempt struct {
	ID               string            `json:"id"`
	StudentID        uint              `json:"student_id"`
	StudentName      string            `json:"student_name"`
	QuizID           string            `json:"quiz_id"`
	QuizTitle        string            `json:"quiz_title"`
	Score            int               `json:"score"`
	TotalPoints      int               `json:"total_points"`
	Answers          map[string]string `json:"answers"` // question id -> answer text
	SubmittedAt      time.Time         `json:"submitted_at"`
	Percentage       float64           `json:"percentage"`
	Passed           bool              `json:"passed"`
	TimeTakenSeconds int               `json:"time_taken_seconds"`
}
