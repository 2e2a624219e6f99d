package service

import (
	"errors"
	"strings"

	"coscribe/internal/auth/model"
	"coscribe/internal/auth/repository"
	"coscribe/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrMissingFields      = errors.New("email and password are required")
)

type AuthService struct {
	Repo   *repository.UserRepository
	Tokens *token.Issuer
}

func NewAuthService(repo *repository.UserRepository, tokens *token.Issuer) *AuthService {
	return &AuthService{Repo: repo, Tokens: tokens}
}

func (s *AuthService) Register(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingFields
	}

	_, err := s.Repo.GetByEmail(email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.Repo.Create(email, string(hash))
	return err
}

// Login verifies the password and mints a bearer token for the user.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.Repo.GetByEmail(strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.Tokens.Mint(user.ID)
}

func (s *AuthService) ListUsers() ([]model.UserInfo, error) {
	return s.Repo.List()
}
