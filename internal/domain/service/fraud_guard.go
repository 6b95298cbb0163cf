package service

import (
	"fmt"
	"math"
	"time"

	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

const (
	// GeofenceRadiusMeters is the distance from the customer's profile
	// location beyond which a capture is flagged.
	GeofenceRadiusMeters = 200.0

	// AutoApproveRadiusMeters is the distance within which a clean cash
	// capture can skip human review.
	AutoApproveRadiusMeters = 50.0

	// VelocityWindow is the minimum gap between two captures by the same
	// agent before the second one is flagged.
	VelocityWindow = 30 * time.Second
)

// GuardInput contains the data required for fraud gating of one capture.
type GuardInput struct {
	Location         valueobject.GeoPoint
	LocationKnown    bool
	CustomerHome     valueobject.GeoPoint
	HomeKnown        bool
	Channel          valueobject.PaymentChannel
	CapturedAt       time.Time
	LastCaptureAt    time.Time
	HasLastCapture   bool
	AgentFlaggedOpen int
}

// GuardResult contains the gating outcome.
type GuardResult struct {
	Flagged        bool
	Reasons        []string
	DistanceMeters float64
	AutoApprove    bool
}

// FraudGuard is a domain service that gates collection captures with
// deterministic geo and velocity rules. It never calls out of process; the
// same input always yields the same result.
type FraudGuard struct{}

// NewFraudGuard creates a new FraudGuard instance.
func NewFraudGuard() *FraudGuard {
	return &FraudGuard{}
}

// Check evaluates one capture. A capture more than GeofenceRadiusMeters from
// the customer's home, or less than VelocityWindow after the agent's previous
// capture, is flagged for review. The geofence rule needs both the capture
// location and the customer's home; when either is missing it is skipped. A
// clean cash capture within AutoApproveRadiusMeters by an agent with no open
// flags qualifies for auto-approval.
func (g *FraudGuard) Check(input GuardInput) GuardResult {
	reasons := make([]string, 0, 2)
	distance := -1.0

	if input.LocationKnown && input.HomeKnown {
		distance = input.Location.DistanceMeters(input.CustomerHome)
		if distance > GeofenceRadiusMeters {
			reasons = append(reasons, fmt.Sprintf(
				"Geofencing Violation: %dm away from customer profile location",
				int(math.Round(distance)),
			))
		}
	}

	if input.HasLastCapture {
		// A negative gap means clock skew between captures; that is as
		// suspicious as a rapid-fire entry and is flagged the same way.
		gap := input.CapturedAt.Sub(input.LastCaptureAt)
		if gap < VelocityWindow {
			reasons = append(reasons, fmt.Sprintf(
				"Velocity Anomaly: entries captured too quickly (%ds since last entry)",
				int(gap.Seconds()),
			))
		}
	}

	flagged := len(reasons) > 0

	autoApprove := !flagged &&
		input.Channel.Equal(valueobject.PaymentChannelCash) &&
		input.HomeKnown &&
		distance >= 0 && distance < AutoApproveRadiusMeters &&
		input.AgentFlaggedOpen == 0

	return GuardResult{
		Flagged:        flagged,
		Reasons:        reasons,
		DistanceMeters: distance,
		AutoApprove:    autoApprove,
	}
}
