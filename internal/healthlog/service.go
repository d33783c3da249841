package healthlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidMetric = errors.New("unknown health metric")
	ErrInvalidValue  = errors.New("metric value out of range")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores one reading for the user's day, replacing any earlier
// reading for the same metric and day.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, metric Metric, value float64, value2 *float64, date time.Time) (*Entry, error) {
	if !metric.Valid() {
		return nil, ErrInvalidMetric
	}
	if value <= 0 {
		return nil, ErrInvalidValue
	}
	if metric == MetricBloodPressure {
		if value2 == nil || *value2 <= 0 {
			return nil, ErrInvalidValue
		}
	} else if value2 != nil {
		return nil, ErrInvalidValue
	}

	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	entry, err := s.repo.UpsertEntry(ctx, Entry{
		UserID: userID,
		Metric: metric,
		Value:  value,
		Value2: value2,
		Date:   date,
	})
	if err != nil {
		return nil, fmt.Errorf("record health entry: %w", err)
	}

	return entry, nil
}

// List returns the user's readings for one metric, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, metric Metric, limit int) ([]Entry, error) {
	if !metric.Valid() {
		return nil, ErrInvalidMetric
	}
	if limit <= 0 {
		limit = 50 // default
	}
	if limit > 500 {
		limit = 500 // max
	}

	entries, err := s.repo.ListEntries(ctx, userID, metric, limit)
	if err != nil {
		return nil, fmt.Errorf("list health entries: %w", err)
	}
	return entries, nil
}
