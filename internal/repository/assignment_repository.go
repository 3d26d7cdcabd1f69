package repository

import (
	"github.com/khanhlt/learnboard/internal/kvstore"
	"github.com/khanhlt/learnboard/internal/model"
)

type AssignmentRepository interface {
	All() ([]model.Assignment, error)
	FindByID(id string) (*model.Assignment, error)
	Append(assignment model.Assignment) error
}

type assignmentRepository struct {
	store kvstore.Store
}

func NewAssignmentRepository(store kvstore.Store) AssignmentRepository {
	return &assignmentRepository{store: store}
}

func (r *assignmentRepository) All() ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := r.store.Get(kvstore.KeyAssignments, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) FindByID(id string) (*model.Assignment, error) {
	assignments, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range assignments {
		if assignments[i].ID == id {
			return &assignments[i], nil
		}
	}
	return nil, nil
}

func (r *assignmentRepository) Append(assignment model.Assignment) error {
	assignments, err := r.All()
	if err != nil {
		return err
	}
	assignments = append(assignments, assignment)
	return r.store.Set(kvstore.KeyAssignments, assignments)
}
