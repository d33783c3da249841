package healthlog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var value2 *float64

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Metric,
		&e.Value,
		&value2,
		&e.Date,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Value2 = value2
	return &e, nil
}

func (r *PgRepository) UpsertEntry(ctx context.Context, e Entry) (*Entry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO health_entries (user_id, metric, value, value2, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (user_id, metric, date) DO UPDATE
		SET value = EXCLUDED.value,
		    value2 = EXCLUDED.value2,
		    updated_at = now()
		RETURNING id, user_id, metric, value, value2, date, created_at, updated_at
	`, e.UserID, e.Metric, e.Value, e.Value2, e.Date)

	return scanEntry(row)
}

func (r *PgRepository) ListEntries(ctx context.Context, userID uuid.UUID, metric Metric, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, metric, value, value2, date, created_at, updated_at
		FROM health_entries
		WHERE user_id = $1
		  AND metric = $2
		ORDER BY date DESC
		LIMIT $3
	`, userID, metric, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
