package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campuspass/campuspass/internal/shared"
)

const hashCost = 10

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries the attributes accepted at registration.
type RegisterInput struct {
	Prefix    string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Faculty   *string
	Role      string
}

// Register creates a new account. The plaintext password is hashed and
// never stored; an already registered email fails with
// shared.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	_, err := s.repo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, shared.ErrDuplicateEmail
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), hashCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = RoleMember
	}

	return s.repo.CreateUser(ctx, NewUser{
		Prefix:       in.Prefix,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Faculty:      in.Faculty,
		Role:         role,
	})
}

// Authenticate validates email/password credentials. An unknown email
// and a wrong password both fail with shared.ErrInvalidCredentials so
// callers cannot probe which accounts exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser fetches the account referenced by an authenticated
// session. A session pointing at a deleted account yields
// shared.ErrNotFound.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
