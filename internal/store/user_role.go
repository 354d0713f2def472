package store

import (
	"context"
	"fmt"

	"quillworks/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userRoleTableName = "quillworks.user_roles"

type UserRoleRepository struct {
	pool *pgxpool.Pool
}

func NewUserRoleRepository(pool *pgxpool.Pool) *UserRoleRepository {
	return &UserRoleRepository{pool: pool}
}

// RoleOf returns the user's role, defaulting to "user" when no row exists.
func (r *UserRoleRepository) RoleOf(ctx context.Context, userID string) (types.Role, error) {
	query := `SELECT role FROM quillworks.user_roles WHERE user_id = $1 LIMIT 1`

	var role types.Role
	err := pgxscan.Get(ctx, r.pool, &role, query, userID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return types.RoleUser, nil
		}
		return "", fmt.Errorf("failed to fetch user role: %w", err)
	}

	return role, nil
}

// AssignRole replaces whatever role the user currently holds. The upsert on
// the user_id unique constraint keeps concurrent assignments from leaving
// zero or two rows behind.
func (r *UserRoleRepository) AssignRole(ctx context.Context, userID string, role types.Role) error {
	query := `
		INSERT INTO quillworks.user_roles (user_id, role, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET role = EXCLUDED.role, updated_at = now()`

	_, err := r.pool.Exec(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	return nil
}
