package medicine

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) GetMedicineByTag(ctx context.Context, tag string) (*Medicine, error) {
	var m Medicine

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, manufacturer, composition, price, search_tag
		FROM medicines
		WHERE search_tag = $1
	`, tag).Scan(
		&m.ID,
		&m.Name,
		&m.Manufacturer,
		&m.Composition,
		&m.Price,
		&m.SearchTag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMedicineNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *PgRepository) ListSubstitutes(ctx context.Context, medicineID int64) ([]Substitute, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, medicine_id, name, manufacturer, composition, price
		FROM substitutes
		WHERE medicine_id = $1
		ORDER BY price, name
	`, medicineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Substitute
	for rows.Next() {
		var s Substitute
		err := rows.Scan(
			&s.ID,
			&s.MedicineID,
			&s.Name,
			&s.Manufacturer,
			&s.Composition,
			&s.Price,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
