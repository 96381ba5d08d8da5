// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vhlong/telegate/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed user store.
func NewUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, username, email, passwordhash, displayname, role, createdat, updatedat`

func (repository *PostgresUserRepository) scanUser(row interface{ Scan(...any) error }) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_user")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1 AND deletedat IS NULL`
	return repository.scanUser(repository.db.QueryRow(context, query, id))
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE email = $1 AND deletedat IS NULL`
	return repository.scanUser(repository.db.QueryRow(context, query, email))
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE username = $1 AND deletedat IS NULL`
	return repository.scanUser(repository.db.QueryRow(context, query, username))
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO users.account (id, username, email, passwordhash, displayname, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := repository.db.Exec(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName, user.Role,
	)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := `
		UPDATE users.account
		SET passwordhash = $2, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
	`

	_, err := repository.db.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}

	return nil
}
