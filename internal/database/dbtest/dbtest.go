// Package dbtest opens a PostgreSQL-backed Provider for tests. Tests are
// skipped when TEST_DATABASE_URL is not set.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"elite/internal/config"
	"elite/internal/database"
)

func Open(t *testing.T, variant string, tables ...string) *database.Provider {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	p, err := database.Connect(config.DB{URL: dsn})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	ctx := context.Background()
	if err := p.Bootstrap(ctx, variant); err != nil {
		t.Fatalf("Failed to bootstrap %s schema: %v", variant, err)
	}

	truncate(t, p, tables)
	t.Cleanup(func() {
		truncate(t, p, tables)
		if err := p.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})

	return p
}

// Exec runs a statement on its own connection, failing the test on error.
func Exec(t *testing.T, p *database.Provider, query string, args ...any) {
	t.Helper()
	ctx := context.Background()
	if err := p.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		t.Fatalf("Exec %q: %v", query, err)
	}
}

func truncate(t *testing.T, p *database.Provider, tables []string) {
	t.Helper()
	for _, table := range tables {
		Exec(t, p, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE")
	}
}
