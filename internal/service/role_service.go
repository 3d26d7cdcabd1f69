package service

import (
	"fmt"

	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/model"
)

const (
	DashboardStudent = "student"
	DashboardMentor  = "mentor"
)

type RoleService interface {
	// ResolveLanding maps an account role to its dashboard context.
	// Anything but the two known roles indicates a corrupted or tampered
	// session record; this should be unreachable past signup validation.
	ResolveLanding(role string) (string, error)
}

type roleService struct{}

func NewRoleService() RoleService {
	return &roleService{}
}

func (s *roleService) ResolveLanding(role string) (string, error) {
	switch role {
	case model.RoleStudent:
		return DashboardStudent, nil
	case model.RoleTeacher:
		return DashboardMentor, nil
	default:
		return "", fmt.Errorf("%w: %q", apperr.ErrRole, role)
	}
}
