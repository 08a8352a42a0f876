// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mumocomics/mumoweb/internal/platform/dberr"
)

// PostgresUserStore implements [UserStore] over the users table.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore constructs a [PostgresUserStore].
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

const userColumns = `id, username, password_hash, role, created_at, updated_at`

// FindByUsername looks up a staff account by its unique username.
func (store *PostgresUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return store.scanUser(store.pool.QueryRow(ctx, query, username), "find user by username")
}

// FindByID looks up a staff account by its primary key.
func (store *PostgresUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return store.scanUser(store.pool.QueryRow(ctx, query, id), "find user by id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (store *PostgresUserStore) scanUser(row rowScanner, action string) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return &user, nil
}
