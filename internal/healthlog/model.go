package healthlog

import (
	"time"

	"github.com/google/uuid"
)

type Metric string

const (
	MetricWeight        Metric = "weight"
	MetricBloodPressure Metric = "blood_pressure"
	MetricGlucose       Metric = "glucose"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricWeight, MetricBloodPressure, MetricGlucose:
		return true
	}
	return false
}

// Entry is one metric reading for one calendar day. Weight and glucose use
// Value only; blood pressure uses Value for systolic and Value2 for
// diastolic. One entry per (user, metric, day): a later write for the same
// day replaces the earlier one.
type Entry struct {
	ID        int64
	UserID    uuid.UUID
	Metric    Metric
	Value     float64
	Value2    *float64
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
