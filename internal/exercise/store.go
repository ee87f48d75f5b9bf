package exercise

import (
	"context"
	"database/sql"
	"log"

	"elite/internal/database"
	"elite/internal/models"
)

// Entry is the write model. A nil EntryDate means today in UTC, as seen by
// the database server.
type Entry struct {
	UserID    string
	Exercise  string
	Value     int
	EntryDate *models.Date
}

// Query selects one user's series for one exercise. From and To are
// inclusive and optional.
type Query struct {
	UserID   string
	Exercise string
	From     *models.Date
	To       *models.Date
	Limit    int
}

type Store interface {
	Upsert(ctx context.Context, e Entry) error
	List(ctx context.Context, q Query) ([]models.ExercisePoint, error)
}

type PGStore struct {
	db *database.Provider
}

func NewPGStore(db *database.Provider) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Upsert(ctx context.Context, e Entry) error {
	var entryDate any
	if e.EntryDate != nil {
		entryDate = e.EntryDate.String()
	}
	return s.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO exercise_entries (user_id, exercise, value, entry_date)
			VALUES ($1, $2, $3, COALESCE($4::date, (now() AT TIME ZONE 'utc')::date))
			ON CONFLICT (user_id, exercise, entry_date)
			DO UPDATE SET value = EXCLUDED.value
		`, e.UserID, e.Exercise, e.Value, entryDate)
		return err
	})
}

func (s *PGStore) List(ctx context.Context, q Query) ([]models.ExercisePoint, error) {
	var from, to any
	if q.From != nil {
		from = q.From.String()
	}
	if q.To != nil {
		to = q.To.String()
	}

	items := []models.ExercisePoint{}
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT entry_date, value
			FROM exercise_entries
			WHERE user_id = $1
			  AND exercise = $2
			  AND ($3::date IS NULL OR entry_date >= $3::date)
			  AND ($4::date IS NULL OR entry_date <= $4::date)
			ORDER BY entry_date DESC
			LIMIT $5
		`, q.UserID, q.Exercise, from, to, q.Limit)
		if err != nil {
			return err
		}
		defer func(rows *sql.Rows) {
			if cerr := rows.Close(); cerr != nil {
				log.Printf("Error closing rows: %v", cerr)
			}
		}(rows)

		for rows.Next() {
			var p models.ExercisePoint
			if err := rows.Scan(&p.EntryDate, &p.Value); err != nil {
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
