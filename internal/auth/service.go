package auth

import (
	"context"
	"errors"
	"time"

	"mylib/internal/user"
)

var ErrUnauthorized = errors.New("unauthorized")

// Service issues tokens for the credential flow. Everything downstream of it
// works with the numeric user id carried in the token subject.
type Service struct {
	secret   string
	tokenTTL time.Duration
	users    *user.Service
}

func NewService(secret string, tokenTTL time.Duration, users *user.Service) *Service {
	return &Service{secret: secret, tokenTTL: tokenTTL, users: users}
}

func (s *Service) Register(ctx context.Context, username, password string) (user.User, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return user.User{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return user.User{}, err
	}
	return s.users.Register(ctx, username, hash)
}

func (s *Service) Login(ctx context.Context, username, password string) (string, int, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil || !VerifyPassword(u.PasswordHash, password) {
		return "", 0, ErrUnauthorized
	}
	token, err := GenerateToken(s.secret, u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.tokenTTL.Seconds()), nil
}
