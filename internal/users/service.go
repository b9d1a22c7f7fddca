package users

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/campuspass/campuspass/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	FindRole(ctx context.Context, id int64) (string, bool, error)
}

// Service handles user directory logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListForCaller returns all users for an authenticated caller. The
// caller's account must still exist; a stale session yields
// shared.ErrNotFound. The existence check and the listing hit separate
// rows, so they run concurrently.
func (s *Service) ListForCaller(ctx context.Context, callerID int64) ([]User, int, error) {
	var (
		users  []User
		exists bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// TODO: gate listing behind RoleAdmin once the role policy is decided.
		_, ok, err := s.repo.FindRole(gctx, callerID)
		exists = ok
		return err
	})
	g.Go(func() error {
		list, err := s.repo.ListUsers(gctx)
		users = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, shared.ErrNotFound
	}
	return users, len(users), nil
}
