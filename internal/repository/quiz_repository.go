package repository

import (
	"github.com/khanhlt/learnboard/internal/kvstore"
	"github.com/khanhlt/learnboard/internal/model"
)

type QuizRepository interface {
	All() ([]model.Quiz, error)
	FindByID(id string) (*model.Quiz, error)
	Append(quiz model.Quiz) error
}

type quizRepository struct {
	store kvstore.Store
}

func NewQuizRepository(store kvstore.Store) QuizRepository {
	return &quizRepository{store: store}
}

func (r *quizRepository) All() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.store.Get(kvstore.KeyQuizzes, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindByID(id string) (*model.Quiz, error) {
	quizzes, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, nil
}

func (r *quizRepository) Append(quiz model.Quiz) error {
	quizzes, err := r.All()
	if err != nil {
		return err
	}
	quizzes = append(quizzes, quiz)
	return r.store.Set(kvstore.KeyQuizzes, quizzes)
}
