package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/model"
	"github.com/khanhlt/learnboard/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so that login failures never reveal which one it was.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrAuth)

type AuthService interface {
	Signup(req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	tokens      TokenService
}

func NewAuthService(accountRepo repository.AccountRepository, tokens TokenService) AuthService {
	return &authService{accountRepo: accountRepo, tokens: tokens}
}

func (s *authService) Signup(req dto.SignupRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" || req.Role == "" {
		return nil, apperr.Validationf("name, email, password and role are required")
	}
	if req.Role != model.RoleStudent && req.Role != model.RoleTeacher {
		return nil, apperr.Validationf("role must be %q or %q", model.RoleStudent, model.RoleTeacher)
	}

	exists, err := s.accountRepo.ExistsByEmail(email)
	if err != nil {
		log.Error().Err(err).Msg("Signup: failed to check existing email")
		return nil, fmt.Errorf("error checking account: %w", err)
	}
	if exists {
		return nil, apperr.Conflictf("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Signup: failed to hash password")
		return nil, fmt.Errorf("error processing password: %w", err)
	}

	account := model.Account{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.accountRepo.Create(&account); err != nil {
		log.Error().Err(err).Msg("Signup: failed to create account")
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	log.Info().Uint("accountID", account.ID).Str("role", account.Role).Msg("Account created")
	return s.respond(&account)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.accountRepo.FindByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("Login: failed to look up account")
		}
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respond(account)
}

func (s *authService) respond(account *model.Account) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(account)
	if err != nil {
		log.Error().Err(err).Uint("accountID", account.ID).Msg("Failed to issue session token")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	var user dto.UserResponse
	if err := copier.Copy(&user, account); err != nil {
		return nil, fmt.Errorf("error preparing auth response: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}
