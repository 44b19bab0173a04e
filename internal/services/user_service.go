package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/models"
)

// TokenIssuer signs a bearer token for an authenticated account
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

type UserService struct {
	Repo   UserStore
	Tokens TokenIssuer
	log    *logger.Logger
}

func NewUserService(repo UserStore, tokens TokenIssuer, log *logger.Logger) *UserService {
	return &UserService{Repo: repo, Tokens: tokens, log: log}
}

// Authenticate compares the stored credential exactly
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Auth("Invalid credentials")
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return nil, apperr.Auth("Invalid credentials")
	}
	return u, nil
}

// Login authenticates and issues a token alongside the public profile
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	u, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.log.Warn("login failed", "username", req.Username)
		return nil, err
	}

	token, err := s.Tokens.GenerateToken(u)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.log.Info("login", "username", u.Username, "role", u.Role)
	return &models.AuthResponse{UserProfile: u.Profile(), Token: token}, nil
}

func (s *UserService) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	if strings.TrimSpace(req.NewPassword) == "" {
		return apperr.Validation("newPassword is required")
	}
	if _, err := s.Authenticate(ctx, req.Username, req.CurrentPassword); err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			return apperr.Auth("Current password incorrect")
		}
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, req.Username, req.NewPassword); err != nil {
		return err
	}
	s.log.Info("password changed", "username", req.Username)
	return nil
}

// Seed creates each default account whose username is absent and returns
// a label for every account it created.
func (s *UserService) Seed(ctx context.Context) ([]string, error) {
	var created []string
	for _, def := range models.DefaultAccounts {
		_, err := s.Repo.GetByUsername(ctx, def.Username)
		if err == nil {
			continue
		}
		if !apperr.Is(err, apperr.KindNotFound) {
			return created, err
		}

		u := def
		if err := s.Repo.Create(ctx, &u); err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				continue
			}
			return created, err
		}
		created = append(created, fmt.Sprintf("%s (%s/%s)", u.Role, u.Username, u.Password))
	}
	if len(created) > 0 {
		s.log.Info("default accounts created", "count", len(created))
	}
	return created, nil
}
