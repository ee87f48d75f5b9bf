package database

import (
	"context"
	"database/sql"
	"fmt"

	"elite/internal/config"
)

var schemas = map[string][]string{
	config.VariantPushups: {
		`CREATE TABLE IF NOT EXISTS pushups (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			reps INTEGER NOT NULL CHECK (reps > 0 AND reps <= 10000),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS pushups_user_created_idx ON pushups (user_id, created_at DESC)`,
	},
	config.VariantExercise: {
		`CREATE TABLE IF NOT EXISTS exercise_entries (
			user_id TEXT NOT NULL CHECK (char_length(user_id) BETWEEN 1 AND 64),
			exercise TEXT NOT NULL CHECK (char_length(exercise) BETWEEN 1 AND 64),
			value INTEGER NOT NULL CHECK (value >= 0 AND value <= 100000),
			entry_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, exercise, entry_date)
		)`,
	},
}

// Bootstrap creates the tables of the given variant if they are missing.
func (p *Provider) Bootstrap(ctx context.Context, variant string) error {
	stmts, ok := schemas[variant]
	if !ok {
		return fmt.Errorf("unknown schema variant %q", variant)
	}
	return p.WithTx(ctx, nil, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("bootstrap %s: %w", variant, err)
			}
		}
		return nil
	})
}
