package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuspass/campuspass/internal/auth"
	"github.com/campuspass/campuspass/internal/shared"
	_ "github.com/campuspass/campuspass/testing"
)

type stubRepo struct {
	byEmail map[string]*auth.User
	byID    map[int64]*auth.User
	nextID  int64

	findErr   error
	createErr error

	sessions map[string]int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byEmail:  make(map[string]*auth.User),
		byID:     make(map[int64]*auth.User),
		nextID:   1,
		sessions: make(map[string]int64),
	}
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	user, ok := s.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) CreateUser(ctx context.Context, user auth.NewUser) (*auth.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return nil, shared.ErrDuplicateEmail
	}
	created := &auth.User{
		ID:           s.nextID,
		Prefix:       user.Prefix,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Faculty:      user.Faculty,
		Role:         user.Role,
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.byEmail[created.Email] = created
	s.byID[created.ID] = created
	return created, nil
}

func (s *stubRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	s.sessions[id] = userID
	return nil
}

func (s *stubRepo) DeleteSession(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *stubRepo) PurgeExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func registerInput(email, password string) auth.RegisterInput {
	return auth.RegisterInput{
		Prefix:    "Mr.",
		FirstName: "Somchai",
		LastName:  "Jaidee",
		Email:     email,
		Password:  password,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newStubRepo()
	service := auth.NewService(repo)

	user, err := service.Register(context.Background(), registerInput("somchai@example.edu", "p1"))
	require.NoError(t, err)
	require.NotEqual(t, "p1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("p1")))

	other, err := service.Register(context.Background(), registerInput("suda@example.edu", "p1"))
	require.NoError(t, err)
	assert.NotEqual(t, user.PasswordHash, other.PasswordHash, "same plaintext must hash to different values")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	service := auth.NewService(repo)

	_, err := service.Register(context.Background(), registerInput("somchai@example.edu", "p1"))
	require.NoError(t, err)

	in := registerInput("somchai@example.edu", "another")
	in.FirstName = "Different"
	_, err = service.Register(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrDuplicateEmail)
}

func TestRegisterDefaultsRole(t *testing.T) {
	repo := newStubRepo()
	service := auth.NewService(repo)

	user, err := service.Register(context.Background(), registerInput("somchai@example.edu", "p1"))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleMember, user.Role)

	in := registerInput("suda@example.edu", "p1")
	in.Role = auth.RoleAdmin
	admin, err := service.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, admin.Role)
}

func TestAuthenticate(t *testing.T) {
	repo := newStubRepo()
	service := auth.NewService(repo)

	registered, err := service.Register(context.Background(), registerInput("somchai@example.edu", "p1"))
	require.NoError(t, err)

	user, err := service.Authenticate(context.Background(), "somchai@example.edu", "p1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, wrongPass := service.Authenticate(context.Background(), "somchai@example.edu", "wrong")
	_, unknownEmail := service.Authenticate(context.Background(), "nobody@example.edu", "p1")
	assert.ErrorIs(t, wrongPass, shared.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, shared.ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknownEmail, "unknown account and wrong password must be indistinguishable")
}

func TestCurrentUserStaleSession(t *testing.T) {
	repo := newStubRepo()
	service := auth.NewService(repo)

	_, err := service.CurrentUser(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDisplayNameSkipsEmptyParts(t *testing.T) {
	user := &auth.User{Prefix: "Dr.", FirstName: "Suda", LastName: "Meechai"}
	assert.Equal(t, "Dr. Suda Meechai", user.DisplayName())

	user.Prefix = ""
	assert.Equal(t, "Suda Meechai", user.DisplayName())
}
