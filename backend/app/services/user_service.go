package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"wine-cellar/backend/app/models"
	"wine-cellar/backend/app/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserExists         = errors.New("user already exists")
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// EnsureUser creates username if it does not exist yet.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) error {
	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.CreateUser(ctx, username, password)
}

func (s *UserService) CreateUser(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidInput
	}
	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, &models.User{Username: username, PasswordHash: string(hash)})
}

// ValidateCredentials returns ErrInvalidCredentials for an unknown user and
// for a wrong password alike. Unknown users still pay for a bcrypt compare.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// FindByID deserializes the user bound to a session.
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}
