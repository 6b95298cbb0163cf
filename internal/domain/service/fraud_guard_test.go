package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madhuarvind/ak-finserv/internal/domain/service"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// Latitude degrees convert to metres at roughly 111.2km per degree, so the
// offsets below put captures at known distances from the home point.
func guardPoint(t *testing.T, latOffset float64) valueobject.GeoPoint {
	t.Helper()
	p, err := valueobject.NewGeoPoint(12.9716+latOffset, 77.5946)
	require.NoError(t, err)
	return p
}

func TestFraudGuardGeofence(t *testing.T) {
	guard := service.NewFraudGuard()
	home := guardPoint(t, 0)
	now := time.Date(2025, time.June, 10, 11, 0, 0, 0, time.UTC)

	t.Run("flags a capture outside the radius", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			Location:      guardPoint(t, 0.0025), // ~278m away
			LocationKnown: true,
			CustomerHome:  home,
			HomeKnown:     true,
			Channel:       valueobject.PaymentChannelCash,
			CapturedAt:    now,
		})

		assert.True(t, result.Flagged)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, "Geofencing Violation: 278m away from customer profile location", result.Reasons[0])
		assert.Greater(t, result.DistanceMeters, service.GeofenceRadiusMeters)
		assert.False(t, result.AutoApprove)
	})

	t.Run("passes a capture inside the radius", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			Location:      guardPoint(t, 0.001), // ~111m away
			LocationKnown: true,
			CustomerHome:  home,
			HomeKnown:     true,
			Channel:       valueobject.PaymentChannelCash,
			CapturedAt:    now,
		})

		assert.False(t, result.Flagged)
		assert.Empty(t, result.Reasons)
	})

	t.Run("skips the check when the home location is unknown", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			Location:      guardPoint(t, 1.0),
			LocationKnown: true,
			HomeKnown:     false,
			Channel:       valueobject.PaymentChannelCash,
			CapturedAt:    now,
		})

		assert.False(t, result.Flagged)
		assert.Equal(t, -1.0, result.DistanceMeters)
		assert.False(t, result.AutoApprove)
	})

	t.Run("skips the check when the capture has no location", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			LocationKnown: false,
			CustomerHome:  home,
			HomeKnown:     true,
			Channel:       valueobject.PaymentChannelCash,
			CapturedAt:    now,
		})

		assert.False(t, result.Flagged)
		assert.Empty(t, result.Reasons)
		assert.Equal(t, -1.0, result.DistanceMeters)
		assert.False(t, result.AutoApprove)
	})
}

func TestFraudGuardVelocity(t *testing.T) {
	guard := service.NewFraudGuard()
	home := guardPoint(t, 0)
	now := time.Date(2025, time.June, 10, 11, 0, 0, 0, time.UTC)

	t.Run("flags back-to-back captures", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			Location:       home,
			LocationKnown:  true,
			CustomerHome:   home,
			HomeKnown:      true,
			Channel:        valueobject.PaymentChannelCash,
			CapturedAt:     now,
			LastCaptureAt:  now.Add(-10 * time.Second),
			HasLastCapture: true,
		})

		assert.True(t, result.Flagged)
		require.Len(t, result.Reasons, 1)
		assert.Contains(t, result.Reasons[0], "Velocity Anomaly")
		assert.Contains(t, result.Reasons[0], "10s since last entry")
	})

	t.Run("passes captures spaced past the window", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			Location:       home,
			LocationKnown:  true,
			CustomerHome:   home,
			HomeKnown:      true,
			Channel:        valueobject.PaymentChannelCash,
			CapturedAt:     now,
			LastCaptureAt:  now.Add(-30 * time.Minute),
			HasLastCapture: true,
		})

		assert.False(t, result.Flagged)
	})

	t.Run("flags a last capture stamped in the future", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			Location:       home,
			LocationKnown:  true,
			CustomerHome:   home,
			HomeKnown:      true,
			Channel:        valueobject.PaymentChannelCash,
			CapturedAt:     now,
			LastCaptureAt:  now.Add(5 * time.Second),
			HasLastCapture: true,
		})

		assert.True(t, result.Flagged)
		require.Len(t, result.Reasons, 1)
		assert.Contains(t, result.Reasons[0], "Velocity Anomaly")
	})

	t.Run("collects both reasons when both rules trip", func(t *testing.T) {
		result := guard.Check(service.GuardInput{
			Location:       guardPoint(t, 0.0025),
			LocationKnown:  true,
			CustomerHome:   home,
			HomeKnown:      true,
			Channel:        valueobject.PaymentChannelCash,
			CapturedAt:     now,
			LastCaptureAt:  now.Add(-5 * time.Second),
			HasLastCapture: true,
		})

		assert.True(t, result.Flagged)
		require.Len(t, result.Reasons, 2)
		assert.Contains(t, result.Reasons[0], "Geofencing Violation")
		assert.Contains(t, result.Reasons[1], "Velocity Anomaly")
	})
}

func TestFraudGuardAutoApprove(t *testing.T) {
	guard := service.NewFraudGuard()
	home := guardPoint(t, 0)
	now := time.Date(2025, time.June, 10, 11, 0, 0, 0, time.UTC)

	clean := service.GuardInput{
		Location:      guardPoint(t, 0.0003), // ~33m away
		LocationKnown: true,
		CustomerHome:  home,
		HomeKnown:     true,
		Channel:       valueobject.PaymentChannelCash,
		CapturedAt:    now,
	}

	t.Run("a close clean cash capture qualifies", func(t *testing.T) {
		result := guard.Check(clean)
		assert.False(t, result.Flagged)
		assert.True(t, result.AutoApprove)
		assert.Less(t, result.DistanceMeters, service.AutoApproveRadiusMeters)
	})

	t.Run("digital captures always get a reviewer", func(t *testing.T) {
		input := clean
		input.Channel = valueobject.PaymentChannelUPI
		result := guard.Check(input)
		assert.False(t, result.Flagged)
		assert.False(t, result.AutoApprove)
	})

	t.Run("open flags on the agent disqualify", func(t *testing.T) {
		input := clean
		input.AgentFlaggedOpen = 2
		result := guard.Check(input)
		assert.False(t, result.Flagged)
		assert.False(t, result.AutoApprove)
	})

	t.Run("within geofence but past the auto radius goes to review", func(t *testing.T) {
		input := clean
		input.Location = guardPoint(t, 0.001) // ~111m away
		result := guard.Check(input)
		assert.False(t, result.Flagged)
		assert.False(t, result.AutoApprove)
	})

	t.Run("a capture without a location goes to review", func(t *testing.T) {
		input := clean
		input.Location = valueobject.GeoPoint{}
		input.LocationKnown = false
		result := guard.Check(input)
		assert.False(t, result.Flagged)
		assert.False(t, result.AutoApprove)
	})
}

func TestFraudGuardDeterminism(t *testing.T) {
	guard := service.NewFraudGuard()
	home := guardPoint(t, 0)
	input := service.GuardInput{
		Location:       guardPoint(t, 0.0025),
		LocationKnown:  true,
		CustomerHome:   home,
		HomeKnown:      true,
		Channel:        valueobject.PaymentChannelCash,
		CapturedAt:     time.Date(2025, time.June, 10, 11, 0, 0, 0, time.UTC),
		LastCaptureAt:  time.Date(2025, time.June, 10, 10, 59, 55, 0, time.UTC),
		HasLastCapture: true,
	}

	first := guard.Check(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, guard.Check(input))
	}
}
