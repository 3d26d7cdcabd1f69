package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/khanhlt/learnboard/config"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/model"
)

// AuthUser is the caller identity resolved from a bearer token. It is
// injected into the request context once by the auth middleware and passed
// down explicitly; services never re-read ambient session state.
type AuthUser struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

type TokenService interface {
	Issue(account *model.Account) (string, error)
	Verify(raw string) (*AuthUser, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
	}
}

// Issue signs a fresh session token for the account. Tokens are time-bound
// and integrity-checked on every request; an unsigned or expired token is
// rejected by Verify.
func (s *tokenService) Issue(account *model.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"name":  account.Name,
		"email": account.Email,
		"role":  account.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(raw string) (*AuthUser, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", apperr.ErrAuth)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["sub"] == nil {
		return nil, fmt.Errorf("%w: invalid token payload", apperr.ErrAuth)
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token payload", apperr.ErrAuth)
	}
	user := &AuthUser{ID: uint(sub)}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	return user, nil
}
