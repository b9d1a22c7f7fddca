package users_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspass/campuspass/internal/shared"
	"github.com/campuspass/campuspass/internal/users"
	_ "github.com/campuspass/campuspass/testing"
)

type stubRepo struct {
	users   []users.User
	roles   map[int64]string
	listErr error
	roleErr error
}

func (s *stubRepo) ListUsers(ctx context.Context) ([]users.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.users, nil
}

func (s *stubRepo) FindRole(ctx context.Context, id int64) (string, bool, error) {
	if s.roleErr != nil {
		return "", false, s.roleErr
	}
	role, ok := s.roles[id]
	return role, ok, nil
}

func TestListForCaller(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		users: []users.User{
			{ID: 2, Name: "Suda Meechai", Email: "suda@example.edu", Role: "member", CreatedAt: base.Add(time.Hour)},
			{ID: 1, Name: "Somchai Jaidee", Email: "somchai@example.edu", Role: "member", CreatedAt: base},
		},
		roles: map[int64]string{1: "member"},
	}
	service := users.NewService(repo)

	list, total, err := service.ListForCaller(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID, "newest account first")
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}

func TestListForCallerStaleAccount(t *testing.T) {
	repo := &stubRepo{roles: map[int64]string{}}
	service := users.NewService(repo)

	_, _, err := service.ListForCaller(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListForCallerRepoFailure(t *testing.T) {
	boom := errors.New("pg down")
	repo := &stubRepo{roles: map[int64]string{1: "member"}, listErr: boom}
	service := users.NewService(repo)

	_, _, err := service.ListForCaller(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
