package service

import (
	"testing"

	"github.com/khanhlt/learnboard/config"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/model"
	"github.com/khanhlt/learnboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Account{}))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLHours = 1

	return NewAuthService(repository.NewAccountRepository(db), NewTokenService(cfg))
}

func TestSignupAndLogin(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(dto.SignupRequest{
		Name:     "Toby",
		Email:    "T@x.com",
		Password: "pw1234",
		Role:     model.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotZero(t, resp.User.ID)

	// a subsequent login with the same credentials succeeds
	loginResp, err := svc.Login(dto.LoginRequest{Email: "t@x.com", Password: "pw1234"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, loginResp.User.ID)
	assert.NotEmpty(t, loginResp.Token)
}

func TestSignupValidation(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name string
		req  dto.SignupRequest
	}{
		{name: "empty name", req: dto.SignupRequest{Email: "a@x.com", Password: "pw", Role: model.RoleStudent}},
		{name: "empty email", req: dto.SignupRequest{Name: "A", Password: "pw", Role: model.RoleStudent}},
		{name: "empty password", req: dto.SignupRequest{Name: "A", Email: "a@x.com", Role: model.RoleStudent}},
		{name: "empty role", req: dto.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw"}},
		{name: "unknown role", req: dto.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw", Role: "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(tt.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestSignupDuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Signup(dto.SignupRequest{Name: "A", Email: "student@x.com", Password: "pw", Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = svc.Signup(dto.SignupRequest{Name: "B", Email: "STUDENT@X.com", Password: "pw2", Role: model.RoleStudent})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Signup(dto.SignupRequest{Name: "A", Email: "a@x.com", Password: "right", Role: model.RoleStudent})
	require.NoError(t, err)

	_, wrongPassErr := svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	_, unknownEmailErr := svc.Login(dto.LoginRequest{Email: "nobody@x.com", Password: "right"})

	require.Error(t, wrongPassErr)
	require.Error(t, unknownEmailErr)
	assert.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
	assert.ErrorIs(t, wrongPassErr, apperr.ErrAuth)
	assert.ErrorIs(t, unknownEmailErr, apperr.ErrAuth)
}

func TestTokenVerifyRoundTrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLHours = 1
	tokens := NewTokenService(cfg)

	account := &model.Account{ID: 7, Name: "A", Email: "a@x.com", Role: model.RoleStudent}
	raw, err := tokens.Issue(account)
	require.NoError(t, err)

	user, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = tokens.Verify(raw + "tampered")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}
