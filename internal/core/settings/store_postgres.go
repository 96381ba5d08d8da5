// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package settings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vhlong/telegate/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed settings store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Find(context context.Context, userID string) (*Settings, error) {
	query := `
		SELECT userid, defaultcountrycode, bulkadddelayms, autocleanupcontacts, phonevalidationstrict, updatedat
		FROM tg.settings
		WHERE userid = $1
	`

	settings := &Settings{}
	err := repository.db.QueryRow(context, query, userID).Scan(
		&settings.UserID, &settings.DefaultCountryCode, &settings.BulkAddDelayMs,
		&settings.AutoCleanupContacts, &settings.PhoneValidationStrict, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_settings")
	}

	return settings, nil
}

func (repository *PostgresRepository) Upsert(context context.Context, settings *Settings) error {
	query := `
		INSERT INTO tg.settings (userid, defaultcountrycode, bulkadddelayms, autocleanupcontacts, phonevalidationstrict)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (userid) DO UPDATE SET
			defaultcountrycode = EXCLUDED.defaultcountrycode,
			bulkadddelayms = EXCLUDED.bulkadddelayms,
			autocleanupcontacts = EXCLUDED.autocleanupcontacts,
			phonevalidationstrict = EXCLUDED.phonevalidationstrict,
			updatedat = NOW()
	`

	_, err := repository.db.Exec(context, query,
		settings.UserID, settings.DefaultCountryCode, settings.BulkAddDelayMs,
		settings.AutoCleanupContacts, settings.PhoneValidationStrict,
	)
	if err != nil {
		return dberr.Wrap(err, "upsert_settings")
	}

	return nil
}
