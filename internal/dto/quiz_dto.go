package dto

import "time"

type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Type          string   `json:"type" binding:"required,oneof=multiple-choice true-false short-answer"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Points        int      `json:"points"`
}

type QuizCreateDTO struct {
	Title               string              `json:"title" binding:"required"`
	Deadline            time.Time           `json:"deadline" binding:"required"`
	Questions           []QuestionCreateDTO `json:"questions" binding:"required,dive"`
	PassingScorePercent float64             `json:"passing_score_percent"`
	TimeLimitMinutes    int                 `json:"time_limit_minutes"`
}

// QuestionResponseDTO deliberately omits the correct answer; quiz listings
// are served to students.
type QuestionResponseDTO struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Points  int      `json:"points"`
}

type QuizResponseDTO struct {
	ID                  string                `json:"id"`
	Title               string                `json:"title"`
	Deadline            time.Time             `json:"deadline"`
	Questions           []QuestionResponseDTO `json:"questions"`
	PassingScorePercent float64               `json:"passing_score_percent"`
	TotalPoints         int                   `json:"total_points"`
	TimeLimitMinutes    int                   `json:"time_limit_minutes"`
	CreatedAt           time.Time             `json:"created_at"`
}

type AttemptSessionDTO struct {
	SessionID        string    `json:"session_id"`
	QuizID           string    `json:"quiz_id"`
	StartedAt        time.Time `json:"started_at"`
	SecondsRemaining int       `json:"seconds_remaining"`
}

type RecordAnswerDTO struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type QuizAttemptResponseDTO struct {
	ID               string    `json:"id"`
	StudentID        uint      `json:"student_id"`
	StudentName      string    `json:"student_name"`
	QuizID           string    `json:"quiz_id"`
	QuizTitle        string    `json:"quiz_title"`
	Score            int       `json:"score"`
	TotalPoints      int       `json:"total_points"`
	SubmittedAt      time.Time `json:"submitted_at"`
	Percentage       float64   `json:"percentage"`
	Passed           bool      `json:"passed"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
}

// QuizResultsDTO is the mentor-side per-quiz results view.
type QuizResultsDTO struct {
	QuizID       string                   `json:"quiz_id"`
	QuizTitle    string                   `json:"quiz_title"`
	TotalPoints  int                      `json:"total_points"`
	Attempts     []QuizAttemptResponseDTO `json:"attempts"`
	AverageScore float64                  `json:"average_score"`
	PassRate     float64                  `json:"pass_rate"`
}
