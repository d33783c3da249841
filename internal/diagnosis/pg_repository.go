package diagnosis

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) ListDiseases(ctx context.Context) ([]Disease, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.name, d.description, d.precautions, s.name
		FROM diseases d
		JOIN disease_symptoms ds ON ds.disease_id = d.id
		JOIN symptoms s ON s.id = ds.symptom_id
		ORDER BY d.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*Disease)
	var order []int64

	for rows.Next() {
		var id int64
		var name, description, precautions, sym string
		if err := rows.Scan(&id, &name, &description, &precautions, &sym); err != nil {
			return nil, err
		}

		d, ok := byID[id]
		if !ok {
			d = &Disease{ID: id, Name: name, Description: description, Precautions: precautions}
			byID[id] = d
			order = append(order, id)
		}
		d.Symptoms = append(d.Symptoms, sym)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]Disease, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}

	return result, nil
}
