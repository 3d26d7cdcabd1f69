package dto

import "time"

type AssignmentCreateDTO struct {
	Name     string    `json:"name" binding:"required"`
	Deadline time.Time `json:"deadline" binding:"required"`
	FileName string    `json:"file_name" binding:"required"`
	FileRef  string    `json:"file_ref" binding:"required"`
}

type AssignmentResponseDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Deadline  time.Time `json:"deadline"`
	FileName  string    `json:"file_name"`
	FileRef   string    `json:"file_ref"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionCreateDTO carries the upload the boundary policy is checked
// against (size limit, extension allow-list) before anything is persisted.
type SubmissionCreateDTO struct {
	FileName      string `json:"file_name" binding:"required"`
	FileRef       string `json:"file_ref" binding:"required"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

type GradeSubmissionDTO struct {
	Grade    string `json:"grade" binding:"required"`
	Feedback string `json:"feedback"`
}

type SubmissionResponseDTO struct {
	ID                  string     `json:"id"`
	StudentID           uint       `json:"student_id"`
	StudentName         string     `json:"student_name"`
	AssignmentID        string     `json:"assignment_id"`
	AssignmentName      string     `json:"assignment_name"`
	FileName            string     `json:"file_name"`
	FileSizeBytes       int64      `json:"file_size_bytes"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	Status              string     `json:"status"`
	Grade               string     `json:"grade,omitempty"`
	Feedback            string     `json:"feedback,omitempty"`
	GradedAt            *time.Time `json:"graded_at,omitempty"`
	ResubmissionCount   int        `json:"resubmission_count"`
	PreviousSubmittedAt *time.Time `json:"previous_submitted_at,omitempty"`
}

// MentorSummaryDTO is the dashboard overview block: grading backlog plus
// coarse quiz analytics.
type MentorSummaryDTO struct {
	TotalSubmissions  int     `json:"total_submissions"`
	PendingGrading    int     `json:"pending_grading"`
	GradedSubmissions int     `json:"graded_submissions"`
	AverageGrade      float64 `json:"average_grade"`
	QuizAttempts      int     `json:"quiz_attempts"`
	QuizPassRate      float64 `json:"quiz_pass_rate"`
}
