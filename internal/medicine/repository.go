package medicine

import (
	"context"
	"errors"
)

var ErrMedicineNotFound = errors.New("medicine not found")

type Repository interface {
	// GetMedicineByTag resolves a lowercase search tag to its medicine.
	GetMedicineByTag(ctx context.Context, tag string) (*Medicine, error)
	ListSubstitutes(ctx context.Context, medicineID int64) ([]Substitute, error)
}
