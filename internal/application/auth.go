package application

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/domilony/leadgen/internal/api/middleware"
	"github.com/domilony/leadgen/internal/domain/admin"
	"github.com/domilony/leadgen/internal/repository"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrPasswordHashFailure = errors.New("failed to hash password")
)

type AuthService struct {
	Repos  *repository.Repos
	Tokens *middleware.TokenManager
}

func NewAuthService(repos *repository.Repos, tokens *middleware.TokenManager) *AuthService {
	return &AuthService{Repos: repos, Tokens: tokens}
}

// Authenticate verifies admin credentials. Every failure collapses into
// ErrInvalidCredentials so callers cannot tell which of username/password was
// wrong; deactivated accounts fail even with the correct password.
func (s *AuthService) Authenticate(username, password string) (admin.AdminUser, error) {
	adm, err := s.Repos.Admin.GetByUsername(username)
	if err != nil {
		return admin.AdminUser{}, ErrInvalidCredentials
	}
	if !adm.IsActive {
		return admin.AdminUser{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adm.HashedPassword), []byte(password)); err != nil {
		return admin.AdminUser{}, ErrInvalidCredentials
	}
	return adm, nil
}

// Login authenticates and issues a session token.
func (s *AuthService) Login(username, password string) (admin.AdminUser, string, error) {
	adm, err := s.Authenticate(username, password)
	if err != nil {
		return admin.AdminUser{}, "", err
	}

	token, err := s.Tokens.Generate(adm)
	if err != nil {
		return admin.AdminUser{}, "", err
	}
	return adm, token, nil
}

// CreateAdmin backs the out-of-band account creation CLI.
func (s *AuthService) CreateAdmin(input admin.CreateAdminInput) (admin.AdminUser, error) {
	_, err := s.Repos.Admin.GetByUsername(input.Username)
	if err == nil {
		return admin.AdminUser{}, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return admin.AdminUser{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return admin.AdminUser{}, ErrPasswordHashFailure
	}

	adm := admin.AdminUser{
		Username:       input.Username,
		HashedPassword: string(hashed),
		IsActive:       true,
	}
	if err := s.Repos.Admin.Save(&adm); err != nil {
		return admin.AdminUser{}, err
	}
	return adm, nil
}
