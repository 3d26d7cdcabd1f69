package repository

import (
	"github.com/khanhlt/learnboard/internal/kvstore"
	"github.com/khanhlt/learnboard/internal/model"
)

type SubmissionRepository interface {
	All() ([]model.Submission, error)
	FindByID(id string) (*model.Submission, error)
	FindByStudentAndAssignment(studentID uint, assignmentID string) (*model.Submission, error)
	FindByStudent(studentID uint) ([]model.Submission, error)
	FindByAssignment(assignmentID string) ([]model.Submission, error)
	// Save replaces the record with the same ID in place, or appends when
	// no record carries that ID yet.
	Save(submission model.Submission) error
}

type submissionRepository struct {
	store kvstore.Store
}

func NewSubmissionRepository(store kvstore.Store) SubmissionRepository {
	return &submissionRepository{store: store}
}

func (r *submissionRepository) All() ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.store.Get(kvstore.KeySubmissions, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) FindByID(id string) (*model.Submission, error) {
	submissions, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		if submissions[i].ID == id {
			return &submissions[i], nil
		}
	}
	return nil, nil
}

func (r *submissionRepository) FindByStudentAndAssignment(studentID uint, assignmentID string) (*model.Submission, error) {
	submissions, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		if submissions[i].StudentID == studentID && submissions[i].AssignmentID == assignmentID {
			return &submissions[i], nil
		}
	}
	return nil, nil
}

func (r *submissionRepository) FindByStudent(studentID uint) ([]model.Submission, error) {
	submissions, err := r.All()
	if err != nil {
		return nil, err
	}
	var filtered []model.Submission
	for _, s := range submissions {
		if s.StudentID == studentID {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func (r *submissionRepository) FindByAssignment(assignmentID string) ([]model.Submission, error) {
	submissions, err := r.All()
	if err != nil {
		return nil, err
	}
	var filtered []model.Submission
	for _, s := range submissions {
		if s.AssignmentID == assignmentID {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func (r *submissionRepository) Save(submission model.Submission) error {
	submissions, err := r.All()
	if err != nil {
		return err
	}
	replaced := false
	for i := range submissions {
		if submissions[i].ID == submission.ID {
			submissions[i] = submission
			replaced = true
			break
		}
	}
	if !replaced {
		submissions = append(submissions, submission)
	}
	return r.store.Set(kvstore.KeySubmissions, submissions)
}
