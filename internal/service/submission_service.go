package service

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/model"
	"github.com/khanhlt/learnboard/internal/repository"
	"github.com/rs/zerolog/log"
)

// Boundary upload policy, checked before anything is persisted.
const maxUploadBytes = 10 << 20 // 10MB

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".zip":  true,
	".jpg":  true,
	".png":  true,
}

type SubmissionService interface {
	Submit(student AuthUser, assignmentID string, req dto.SubmissionCreateDTO) (*dto.SubmissionResponseDTO, error)
	Grade(submissionID string, req dto.GradeSubmissionDTO) (*dto.SubmissionResponseDTO, error)
	ListForStudent(studentID uint) ([]dto.SubmissionResponseDTO, error)
	ListForAssignment(assignmentID string) ([]dto.SubmissionResponseDTO, error)
	MentorSummary() (*dto.MentorSummaryDTO, error)
}

type submissionService struct {
	assignmentRepo repository.AssignmentRepository
	submissionRepo repository.SubmissionRepository
	attemptRepo    repository.QuizAttemptRepository
}

func NewSubmissionService(
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	attemptRepo repository.QuizAttemptRepository,
) SubmissionService {
	return &submissionService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		attemptRepo:    attemptRepo,
	}
}

// Submit creates the student's submission for an assignment, or overwrites
// the existing one in place. There is never more than one live record per
// (student, assignment) pair: a resubmission keeps the original ID, bumps
// ResubmissionCount, remembers the previous submission date and resets any
// earlier grading.
func (s *submissionService) Submit(student AuthUser, assignmentID string, req dto.SubmissionCreateDTO) (*dto.SubmissionResponseDTO, error) {
	if req.FileSizeBytes > maxUploadBytes {
		return nil, apperr.Validationf("file is larger than the 10MB limit")
	}
	ext := strings.ToLower(filepath.Ext(req.FileName))
	if !allowedExtensions[ext] {
		return nil, apperr.Validationf("file type %q is not allowed", ext)
	}

	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		log.Error().Err(err).Str("assignmentID", assignmentID).Msg("Submit: failed to look up assignment")
		return nil, fmt.Errorf("error fetching assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperr.Validationf("assignment %s does not exist", assignmentID)
	}

	existing, err := s.submissionRepo.FindByStudentAndAssignment(student.ID, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching submission: %w", err)
	}

	now := time.Now()
	submission := model.Submission{
		ID:             uuid.NewString(),
		StudentID:      student.ID,
		StudentName:    student.Name,
		AssignmentID:   assignment.ID,
		AssignmentName: assignment.Name,
		FileName:       req.FileName,
		FileRef:        req.FileRef,
		FileSizeBytes:  req.FileSizeBytes,
		SubmittedAt:    now,
		Status:         model.StatusSubmitted,
	}
	if existing != nil {
		prev := existing.SubmittedAt
		submission.ID = existing.ID
		submission.Status = model.StatusResubmitted
		submission.ResubmissionCount = existing.ResubmissionCount + 1
		submission.PreviousSubmittedAt = &prev
	}

	if err := s.submissionRepo.Save(submission); err != nil {
		log.Error().Err(err).Str("submissionID", submission.ID).Msg("Failed to persist submission")
		return nil, fmt.Errorf("error saving submission: %w", err)
	}

	log.Info().
		Uint("studentID", student.ID).
		Str("assignmentID", assignment.ID).
		Int("resubmissionCount", submission.ResubmissionCount).
		Msg("Submission saved")
	return s.respond(&submission)
}

// Grade is idempotent; re-grading overwrites the previous grade.
func (s *submissionService) Grade(submissionID string, req dto.GradeSubmissionDTO) (*dto.SubmissionResponseDTO, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching submission: %w", err)
	}
	if submission == nil {
		return nil, apperr.NotFoundf("submission %s", submissionID)
	}

	now := time.Now()
	submission.Grade = req.Grade
	submission.Feedback = req.Feedback
	submission.GradedAt = &now
	submission.Status = model.StatusGraded

	if err := s.submissionRepo.Save(*submission); err != nil {
		log.Error().Err(err).Str("submissionID", submissionID).Msg("Failed to persist grade")
		return nil, fmt.Errorf("error saving grade: %w", err)
	}

	log.Info().Str("submissionID", submissionID).Str("grade", req.Grade).Msg("Submission graded")
	return s.respond(submission)
}

func (s *submissionService) ListForStudent(studentID uint) ([]dto.SubmissionResponseDTO, error) {
	submissions, err := s.submissionRepo.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching submissions: %w", err)
	}
	return s.respondList(submissions)
}

func (s *submissionService) ListForAssignment(assignmentID string) ([]dto.SubmissionResponseDTO, error) {
	submissions, err := s.submissionRepo.FindByAssignment(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching submissions: %w", err)
	}
	return s.respondList(submissions)
}

// MentorSummary computes the dashboard overview block. Recomputed from the
// full record set on each call; fine at this data scale.
func (s *submissionService) MentorSummary() (*dto.MentorSummaryDTO, error) {
	submissions, err := s.submissionRepo.All()
	if err != nil {
		return nil, fmt.Errorf("error fetching submissions: %w", err)
	}
	attempts, err := s.attemptRepo.All()
	if err != nil {
		return nil, fmt.Errorf("error fetching quiz attempts: %w", err)
	}

	summary := dto.MentorSummaryDTO{TotalSubmissions: len(submissions), QuizAttempts: len(attempts)}

	gradeSum := 0.0
	for _, sub := range submissions {
		if sub.Grade == "" {
			summary.PendingGrading++
			continue
		}
		summary.GradedSubmissions++
		if v, err := strconv.ParseFloat(sub.Grade, 64); err == nil {
			gradeSum += v
		}
	}
	if summary.GradedSubmissions > 0 {
		summary.AverageGrade = gradeSum / float64(summary.GradedSubmissions)
	}

	passed := 0
	for _, a := range attempts {
		if a.Passed {
			passed++
		}
	}
	if len(attempts) > 0 {
		summary.QuizPassRate = float64(passed) / float64(len(attempts)) * 100
	}
	return &summary, nil
}

func (s *submissionService) respond(submission *model.Submission) (*dto.SubmissionResponseDTO, error) {
	var resp dto.SubmissionResponseDTO
	if err := copier.Copy(&resp, submission); err != nil {
		return nil, fmt.Errorf("error preparing submission response: %w", err)
	}
	return &resp, nil
}

func (s *submissionService) respondList(submissions []model.Submission) ([]dto.SubmissionResponseDTO, error) {
	dtos := make([]dto.SubmissionResponseDTO, 0, len(submissions))
	for i := range submissions {
		d, err := s.respond(&submissions[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *d)
	}
	return dtos, nil
}
