// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vhlong/telegate/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx. The summary column
// is jsonb; pgx maps it to map[string]any in both directions.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed audit store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Insert(context context.Context, entry *Entry) error {
	query := `
		INSERT INTO tg.auditlog (id, userid, accountid, action, summary)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := repository.db.Exec(context, query,
		entry.ID, entry.UserID, entry.AccountID, entry.Action, entry.Summary,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_audit_entry")
	}

	return nil
}

func (repository *PostgresRepository) ListByUser(
	context context.Context,
	userID string,
	limit, offset int,
) ([]*Entry, int, error) {
	query := `
		SELECT id, userid, accountid, action, summary, createdat,
			COUNT(*) OVER() as total
		FROM tg.auditlog
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_audit_entries")
	}
	defer rows.Close()

	var entries []*Entry
	var total int
	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.AccountID, &entry.Action,
			&entry.Summary, &entry.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_audit_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
