package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ems-dash/apiserver/types"
)

// UserRepository handles read-only lookups against user_table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByCredentials returns the user whose name and password both match the
// supplied values. Passwords are stored and compared in plain text to stay
// compatible with the legacy schema; this is not a hardened credential check.
func (r *UserRepository) GetByCredentials(ctx context.Context, userName, password string) (types.User, error) {
	const query = `
		SELECT user_id, user_name, password, role
		FROM user_table
		WHERE user_name = $1 AND password = $2
		LIMIT 1`
	var user types.User
	err := r.db.QueryRowContext(ctx, query, userName, password).Scan(
		&user.UserID,
		&user.UserName,
		&user.Password,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}
