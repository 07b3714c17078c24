package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/repository/ports"
	"github.com/sandsky/travel-backend/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStaffUserInactive  = errors.New("staff account is disabled")
	ErrStaffUserExists    = errors.New("staff account already exists")
)

type AuthService struct {
	staff ports.StaffRepository
	jwt   *util.JWTManager
}

func NewAuthService(staffRepo ports.StaffRepository, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{staff: staffRepo, jwt: jwtManager}
}

type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      domain.StaffUser `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.staff.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrStaffUserInactive
	}

	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.StaffUser, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.staff.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrStaffUserInactive
	}
	return user, nil
}

// Bootstrap creates the first staff account, used by the seed CLI.
func (s *AuthService) Bootstrap(ctx context.Context, email, name, password string) (*domain.StaffUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}
	if _, err := s.staff.FindByEmail(ctx, email); err == nil {
		return nil, ErrStaffUserExists
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.staff.Create(ctx, &domain.StaffUser{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
	})
}
