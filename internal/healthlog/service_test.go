package healthlog

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memRepo struct {
	entries map[string]Entry
	nextID  int64
}

func newMemRepo() *memRepo {
	return &memRepo{entries: make(map[string]Entry)}
}

func key(e Entry) string {
	return e.UserID.String() + "|" + string(e.Metric) + "|" + e.Date.Format(time.DateOnly)
}

func (r *memRepo) UpsertEntry(_ context.Context, e Entry) (*Entry, error) {
	k := key(e)
	if existing, ok := r.entries[k]; ok {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		e.ID = r.nextID
		e.CreatedAt = time.Now().UTC()
	}
	e.UpdatedAt = time.Now().UTC()
	r.entries[k] = e
	out := e
	return &out, nil
}

func (r *memRepo) ListEntries(_ context.Context, userID uuid.UUID, metric Metric, limit int) ([]Entry, error) {
	var result []Entry
	for _, e := range r.entries {
		if e.UserID == userID && e.Metric == metric {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	dia := 80.0

	cases := []struct {
		name   string
		metric Metric
		value  float64
		value2 *float64
		want   error
	}{
		{"weight ok", MetricWeight, 70.5, nil, nil},
		{"glucose ok", MetricGlucose, 95, nil, nil},
		{"blood pressure ok", MetricBloodPressure, 120, &dia, nil},
		{"unknown metric", Metric("steps"), 100, nil, ErrInvalidMetric},
		{"zero value", MetricWeight, 0, nil, ErrInvalidValue},
		{"bp missing diastolic", MetricBloodPressure, 120, nil, ErrInvalidValue},
		{"weight with second value", MetricWeight, 70, &dia, ErrInvalidValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(ctx, userID, tc.metric, tc.value, tc.value2, day)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Record: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Record = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRecordReplacesSameDay(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	first, err := svc.Record(ctx, userID, MetricWeight, 70, nil, day)
	if err != nil {
		t.Fatalf("first record: %v", err)
	}

	second, err := svc.Record(ctx, userID, MetricWeight, 71.2, nil, day)
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("same-day entry was not replaced: ids %d and %d", first.ID, second.ID)
	}

	entries, err := svc.List(ctx, userID, MetricWeight, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != 71.2 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	userID := uuid.New()

	for day := 1; day <= 3; day++ {
		date := time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
		if _, err := svc.Record(ctx, userID, MetricGlucose, float64(90+day), nil, date); err != nil {
			t.Fatalf("record day %d: %v", day, err)
		}
	}

	entries, err := svc.List(ctx, userID, MetricGlucose, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].Date.After(entries[2].Date) {
		t.Errorf("entries not newest first: %v, %v", entries[0].Date, entries[2].Date)
	}

	if _, err := svc.List(ctx, userID, Metric("bogus"), 0); !errors.Is(err, ErrInvalidMetric) {
		t.Errorf("invalid metric list: got %v, want ErrInvalidMetric", err)
	}
}
