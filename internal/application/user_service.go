package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/habit-tracker-api/internal/domain/entity"
	repo "github.com/oksasatya/habit-tracker-api/internal/domain/repository"
	"github.com/oksasatya/habit-tracker-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService owns registration, credential checks and token issuance.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Logger: logger}
}

// Register hashes the password and persists a new active user.
// The pre-check and the unique constraint both map to ErrEmailTaken; the
// constraint is what actually guarantees uniqueness under concurrency.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Email: email, Password: hash, IsActive: true}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("create user failed")
		}
		return nil, err
	}
	return u, nil
}

// Authenticate validates email/password and returns the user.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a bearer token whose subject is the email.
func (s *UserService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", time.Time{}, err
	}
	token, exp, err := s.JWT.GenerateAccessToken(u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// ResolveSubject maps a validated token subject back to its user.
func (s *UserService) ResolveSubject(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
