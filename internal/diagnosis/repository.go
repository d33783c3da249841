package diagnosis

import "context"

type Repository interface {
	// ListDiseases returns the full disease catalog with symptom names.
	ListDiseases(ctx context.Context) ([]Disease, error)
}
