package services

import (
	"context"

	"github.com/ems-dash/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByCredentials(ctx context.Context, userName, password string) (types.User, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Authenticate looks up the user matching the supplied credentials.
// Returns store.ErrNotFound when no user matches.
func (s *UserService) Authenticate(ctx context.Context, userName, password string) (types.User, error) {
	return s.repo.GetByCredentials(ctx, userName, password)
}
