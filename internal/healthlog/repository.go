package healthlog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// UpsertEntry inserts the entry, replacing an existing entry for the
	// same (user, metric, day).
	UpsertEntry(ctx context.Context, e Entry) (*Entry, error)

	// ListEntries returns the user's entries for one metric, newest first.
	ListEntries(ctx context.Context, userID uuid.UUID, metric Metric, limit int) ([]Entry, error)
}
