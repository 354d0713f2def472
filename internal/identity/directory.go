package identity

import (
	"context"

	"quillworks/pkg/types"
)

// UserDirectory is the narrow slice of the identity provider's admin API the
// handlers depend on. Keeping it an interface lets handler tests run against
// an in-memory fake.
type UserDirectory interface {
	// FindByEmail resolves an account by exact email match. Returns
	// types.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*types.DirectoryUser, error)

	// FindByID resolves an account by its subject id. Returns
	// types.ErrUserNotFound when no account matches.
	FindByID(ctx context.Context, userID string) (*types.DirectoryUser, error)
}
