package usecase

import (
	"go.opentelemetry.io/otel/metric"
)

// IntakeMetrics counts collection intake outcomes.
type IntakeMetrics struct {
	submitted    metric.Int64Counter
	flagged      metric.Int64Counter
	autoApproved metric.Int64Counter
}

// NewIntakeMetrics registers the intake counters on the given meter.
func NewIntakeMetrics(meter metric.Meter) (*IntakeMetrics, error) {
	submitted, err := meter.Int64Counter("collections_submitted",
		metric.WithDescription("Collections accepted at intake"))
	if err != nil {
		return nil, err
	}
	flagged, err := meter.Int64Counter("collections_flagged",
		metric.WithDescription("Collections flagged for manual review"))
	if err != nil {
		return nil, err
	}
	autoApproved, err := meter.Int64Counter("collections_auto_approved",
		metric.WithDescription("Collections approved without a reviewer"))
	if err != nil {
		return nil, err
	}
	return &IntakeMetrics{
		submitted:    submitted,
		flagged:      flagged,
		autoApproved: autoApproved,
	}, nil
}
