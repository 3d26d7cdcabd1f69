package repository

import (
	"github.com/khanhlt/learnboard/internal/kvstore"
	"github.com/khanhlt/learnboard/internal/model"
)

type QuizAttemptRepository interface {
	All() ([]model.QuizAttempt, error)
	FindByStudent(studentID uint) ([]model.QuizAttempt, error)
	FindByQuiz(quizID string) ([]model.QuizAttempt, error)
	// Append always adds a new record; attempts are never overwritten.
	Append(attempt model.QuizAttempt) error
}

type quizAttemptRepository struct {
	store kvstore.Store
}

func NewQuizAttemptRepository(store kvstore.Store) QuizAttemptRepository {
	return &quizAttemptRepository{store: store}
}

func (r *quizAttemptRepository) All() ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	if err := r.store.Get(kvstore.KeyQuizSubmissions, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *quizAttemptRepository) FindByStudent(studentID uint) ([]model.QuizAttempt, error) {
	attempts, err := r.All()
	if err != nil {
		return nil, err
	}
	var filtered []model.QuizAttempt
	for _, a := range attempts {
		if a.StudentID == studentID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (r *quizAttemptRepository) FindByQuiz(quizID string) ([]model.QuizAttempt, error) {
	attempts, err := r.All()
	if err != nil {
		return nil, err
	}
	var filtered []model.QuizAttempt
	for _, a := range attempts {
		if a.QuizID == quizID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (r *quizAttemptRepository) Append(attempt model.QuizAttempt) error {
	attempts, err := r.All()
	if err != nil {
		return err
	}
	attempts = append(attempts, attempt)
	return r.store.Set(kvstore.KeyQuizSubmissions, attempts)
}
