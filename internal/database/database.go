package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"elite/internal/config"

	_ "github.com/lib/pq"
)

// Provider hands out one dedicated connection per unit of work. Idle
// connections are not retained, so nothing is reused across requests.
type Provider struct {
	db *sql.DB
}

func Connect(cfg config.DB) (*Provider, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxIdleConns(0)
	return &Provider{db: db}, nil
}

func (p *Provider) Close() error {
	return p.db.Close()
}

// WithConn runs fn on a freshly acquired connection and closes it on every
// exit path, including a panic inside fn.
func (p *Provider) WithConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("Error closing connection: %v", cerr)
		}
	}()
	return fn(conn)
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back otherwise.
func (p *Provider) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	return p.WithConn(ctx, func(conn *sql.Conn) (err error) {
		tx, err := conn.BeginTx(ctx, opts)
		if err != nil {
			return err
		}
		defer func() {
			if r := recover(); r != nil {
				_ = tx.Rollback()
				panic(r)
			}
			if err != nil {
				if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
					log.Printf("Error rolling back transaction: %v", rbErr)
				}
			}
		}()

		if err = fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// Now performs a round-trip query against the server clock.
func (p *Provider) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	err := p.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, "SELECT now()").Scan(&now)
	})
	return now, err
}
