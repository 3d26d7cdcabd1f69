package service

import (
	"testing"

	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestResolveLanding(t *testing.T) {
	svc := NewRoleService()

	tests := []struct {
		name    string
		role    string
		want    string
		wantErr bool
	}{
		{name: "student", role: "student", want: DashboardStudent},
		{name: "teacher", role: "teacher", want: DashboardMentor},
		{name: "unknown role", role: "admin", wantErr: true},
		{name: "empty role", role: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveLanding(tt.role)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrRole)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
