package service

import (
	"fmt"
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

type AssignmentService interface {
	Create(req dto.AssignmentCreateDTO) (*dto.AssignmentResponseDTO, error)
	List() ([]dto.AssignmentResponseDTO, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository) AssignmentService {
	return &assignmentService{assignmentRepo: assignmentRepo}
}

func (s *assignmentService) Create(req dto.AssignmentCreateDTO) (*dto.AssignmentResponseDTO, error) {
	if strings.TrimSpace(req.Name) == "" || req.FileName == "" || req.FileRef == "" {
		return nil, apperr.Validationf("name and file are required")
	}
	if req.Deadline.Before(time.Now()) {
		return nil, apperr.Validationf("deadline cannot be in the past")
	}

	assignment := model.Assignment{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Deadline:  req.Deadline,
		FileName:  req.FileName,
		FileRef:   req.FileRef,
		CreatedAt: time.Now(),
	}
	if err := s.assignmentRepo.Append(assignment); err != nil {
		log.Error().Err(err).Msg("Failed to persist assignment")
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	log.Info().Str("assignmentID", assignment.ID).Str("name", assignment.Name).Msg("Assignment created")

	var resp dto.AssignmentResponseDTO
	if err := copier.Copy(&resp, &assignment); err != nil {
		return nil, fmt.Errorf("error preparing assignment response: %w", err)
	}
	return &resp, nil
}

func (s *assignmentService) List() ([]dto.AssignmentResponseDTO, error) {
	assignments, err := s.assignmentRepo.All()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list assignments")
		return nil, fmt.Errorf("error fetching assignments: %w", err)
	}

	dtos := make([]dto.AssignmentResponseDTO, 0, len(assignments))
	for i := range assignments {
		var d dto.AssignmentResponseDTO
		if err := copier.Copy(&d, &assignments[i]); err != nil {
			return nil, fmt.Errorf("error preparing assignment response: %w", err)
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
