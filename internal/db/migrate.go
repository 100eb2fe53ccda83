package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on every open; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS device_settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schema_meta (
		id      INTEGER PRIMARY KEY CHECK(id = 1),
		version INTEGER NOT NULL
	)`,
	`INSERT OR IGNORE INTO schema_meta (id, version) VALUES (1, 1)`,
}

// step upgrades the store from version-1 to version inside one transaction.
type step struct {
	version int
	name    string
	apply   TxFunc
}

var steps = []step{
	{version: 2, name: "rename legacy setting keys", apply: renameLegacyKeys},
}

// Migrate brings the device store schema up to date.
func Migrate(db *sql.DB) error {
	ctx := context.Background()
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT version FROM schema_meta WHERE id = 1`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, s := range steps {
		if s.version <= current {
			continue
		}
		err := runTx(ctx, db, func(ctx context.Context, tx DBTX) error {
			if err := s.apply(ctx, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `UPDATE schema_meta SET version = ? WHERE id = 1`, s.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", s.version, s.name, err)
		}
		current = s.version
	}
	return nil
}

// legacyKeys maps the camelCase keys written by the mobile client's storage
// export onto the store's keys.
var legacyKeys = map[string]string{
	"companyId": "company_id",
	"token":     "auth_token",
	"userId":    "user_id",
}

func renameLegacyKeys(ctx context.Context, tx DBTX) error {
	for from, to := range legacyKeys {
		// An existing new-style key wins over the legacy one.
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO device_settings (key, value, updated_at)
			 SELECT ?, value, updated_at FROM device_settings WHERE key = ?`, to, from); err != nil {
			return fmt.Errorf("copying %s: %w", from, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM device_settings WHERE key = ?`, from); err != nil {
			return fmt.Errorf("deleting %s: %w", from, err)
		}
	}
	return nil
}
