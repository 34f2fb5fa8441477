package service

import (
	"context"

	"survey_registry/internal/repository"
)

// DirectoryService implements registration and login against the users
// table. Passwords are stored and compared verbatim; there is no hashing,
// normalization, or format validation anywhere in this flow.
type DirectoryService struct {
	users repository.Users
}

func NewDirectoryService(users repository.Users) *DirectoryService {
	return &DirectoryService{users: users}
}

// Register creates a user unless the username is already taken. The
// existence check and the insert are two separate statements, so two
// concurrent registrations of the same name can both pass the check; the
// users table's UNIQUE constraint then fails the second insert and that
// error surfaces to the caller.
func (s *DirectoryService) Register(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil // duplicate username, registration rejected
	}
	if _, err := s.users.Create(ctx, username, password); err != nil {
		return false, err
	}
	return true, nil
}

// Login reports whether a row matches both username and password. Unknown
// user and wrong password are indistinguishable to the caller.
func (s *DirectoryService) Login(ctx context.Context, username, password string) (bool, error) {
	u, err := s.users.GetByCredentials(ctx, username, password)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}
