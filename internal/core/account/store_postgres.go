// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package account

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vhlong/telegate/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Account, error) {
	query := `
		SELECT id, userid, phonenumber, displayname, sessionkey, isactive, createdat, updatedat
		FROM tg.account
		WHERE userid = $1 AND deletedat IS NULL
		ORDER BY createdat DESC
	`

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		account := &Account{}
		err := rows.Scan(
			&account.ID, &account.UserID, &account.PhoneNumber, &account.DisplayName,
			&account.SessionKey, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_account")
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := `
		SELECT id, userid, phonenumber, displayname, sessionkey, isactive, createdat, updatedat
		FROM tg.account
		WHERE id = $1 AND deletedat IS NULL
	`

	account := &Account{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&account.ID, &account.UserID, &account.PhoneNumber, &account.DisplayName,
		&account.SessionKey, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_account")
	}

	return account, nil
}

func (repository *PostgresRepository) Create(context context.Context, account *Account) error {
	query := `
		INSERT INTO tg.account (id, userid, phonenumber, displayname, sessionkey, isactive)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := repository.db.Exec(context, query,
		account.ID, account.UserID, account.PhoneNumber, account.DisplayName,
		account.SessionKey, account.IsActive,
	)
	if err != nil {
		return dberr.Wrap(err, "create_account")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, account *Account) error {
	query := `
		UPDATE tg.account
		SET displayname = $2, sessionkey = $3, isactive = $4, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
	`

	_, err := repository.db.Exec(context, query,
		account.ID, account.DisplayName, account.SessionKey, account.IsActive,
	)
	if err != nil {
		return dberr.Wrap(err, "update_account")
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := `
		UPDATE tg.account
		SET deletedat = NOW(), isactive = FALSE
		WHERE id = $1 AND deletedat IS NULL
	`

	_, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_account")
	}

	return nil
}
