package model

import "time"

type SubmissionStatus string

const (
	StatusSubmitted   SubmissionStatus = "Submitted"
	StatusResubmitted SubmissionStatus = "Resubmitted"
	StatusGraded      SubmissionStatus = "Graded"
)

// Submission is the one live record per (student, assignment) pair.
// A resubmission overwrites the record in place, keeping ID and bumping
// ResubmissionCount; it is never duplicated and never deleted.
type Submission struct {
	ID                  string           `json:"id"`
	StudentID           uint             `json:"student_id"`
	StudentName         string           `json:"student_name"`
	AssignmentID        string           `json:"assignment_id"`
	AssignmentName      string           `json:"assignment_name"`
	FileName            string           `json:"file_name"`
	FileRef             string           `json:"file_ref"`
	FileSizeBytes       int64            `json:"file_size_bytes"`
	SubmittedAt         time.Time        `json:"submitted_at"`
	Status              SubmissionStatus `json:"status"`
	Grade               string           `json:"grade,omitempty"`
	Feedback            string           `json:"feedback,omitempty"`
	GradedAt            *time.Time       `json:"graded_at,omitempty"`
	ResubmissionCount   int              `json:"resubmission_count"`
	PreviousSubmittedAt *time.Time       `json:"previous_submitted_at,omitempty"`
}
