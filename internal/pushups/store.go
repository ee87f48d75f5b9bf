package pushups

import (
	"context"
	"database/sql"
	"log"

	"elite/internal/database"
	"elite/internal/models"
)

type Store interface {
	Create(ctx context.Context, userID string, reps int) (*models.Pushup, error)
	List(ctx context.Context, userID string, limit int) ([]models.Pushup, error)
	Stats(ctx context.Context, userID string) (*models.PushupStats, error)
	Daily(ctx context.Context, userID string, days int) ([]models.DailyReps, error)
}

type PGStore struct {
	db *database.Provider
}

func NewPGStore(db *database.Provider) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, userID string, reps int) (*models.Pushup, error) {
	var p models.Pushup
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, `
			INSERT INTO pushups (user_id, reps)
			VALUES ($1, $2)
			RETURNING id, user_id, reps, created_at
		`, userID, reps).Scan(&p.ID, &p.UserID, &p.Reps, &p.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PGStore) List(ctx context.Context, userID string, limit int) ([]models.Pushup, error) {
	items := []models.Pushup{}
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT id, user_id, reps, created_at
			FROM pushups
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`, userID, limit)
		if err != nil {
			return err
		}
		defer closeRows(rows)

		for rows.Next() {
			var p models.Pushup
			if err := rows.Scan(&p.ID, &p.UserID, &p.Reps, &p.CreatedAt); err != nil {
				return err
			}
			items = append(items, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Stats reads the lifetime aggregate and today's sum in one read-only
// transaction so both figures come from the same snapshot.
func (s *PGStore) Stats(ctx context.Context, userID string) (*models.PushupStats, error) {
	stats := models.PushupStats{UserID: userID}
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := s.db.WithTx(ctx, opts, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(reps), 0), COALESCE(MAX(reps), 0), COUNT(*)
			FROM pushups
			WHERE user_id = $1
		`, userID).Scan(&stats.TotalReps, &stats.BestReps, &stats.RecordsCount)
		if err != nil {
			return err
		}

		return tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(reps), 0)
			FROM pushups
			WHERE user_id = $1
			  AND (created_at AT TIME ZONE 'utc')::date = (now() AT TIME ZONE 'utc')::date
		`, userID).Scan(&stats.TodayReps)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Daily returns one row per UTC day for the last `days` days, oldest first,
// with zero for days that have no records.
func (s *PGStore) Daily(ctx context.Context, userID string, days int) ([]models.DailyReps, error) {
	items := make([]models.DailyReps, 0, days)
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			WITH today AS (
				SELECT (now() AT TIME ZONE 'utc')::date AS d
			),
			days AS (
				SELECT generate_series((today.d - ($2::int - 1))::timestamp, today.d::timestamp, interval '1 day')::date AS day
				FROM today
			)
			SELECT days.day, COALESCE(SUM(p.reps), 0)
			FROM days
			LEFT JOIN pushups p
				ON p.user_id = $1
			   AND (p.created_at AT TIME ZONE 'utc')::date = days.day
			GROUP BY days.day
			ORDER BY days.day
		`, userID, days)
		if err != nil {
			return err
		}
		defer closeRows(rows)

		for rows.Next() {
			var d models.DailyReps
			if err := rows.Scan(&d.Date, &d.Reps); err != nil {
				return err
			}
			items = append(items, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("Error closing rows: %v", err)
	}
}
