package valueobject

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// TenureUnit – installment cadence
// ---------------------------------------------------------------------------

// TenureUnit is the cadence at which installments fall due. It also drives
// the conversion of an annual rate to a periodic rate.
type TenureUnit struct {
	value string
}

const (
	tenureUnitDays   = "days"
	tenureUnitWeeks  = "weeks"
	tenureUnitMonths = "months"
)

var (
	TenureUnitDays   = TenureUnit{value: tenureUnitDays}
	TenureUnitWeeks  = TenureUnit{value: tenureUnitWeeks}
	TenureUnitMonths = TenureUnit{value: tenureUnitMonths}
)

var validTenureUnits = map[string]TenureUnit{
	tenureUnitDays:   TenureUnitDays,
	tenureUnitWeeks:  TenureUnitWeeks,
	tenureUnitMonths: TenureUnitMonths,
}

// NewTenureUnit creates a TenureUnit from a raw string.
func NewTenureUnit(s string) (TenureUnit, error) {
	v, ok := validTenureUnits[s]
	if !ok {
		return TenureUnit{}, fmt.Errorf("invalid tenure unit: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (u TenureUnit) String() string { return u.value }

// IsZero returns true when not initialised.
func (u TenureUnit) IsZero() bool { return u.value == "" }

// Equal returns true when both units match.
func (u TenureUnit) Equal(other TenureUnit) bool { return u.value == other.value }

// PeriodsPerYear returns the divisor used to derive a periodic rate from an
// annual rate: 365 for days, 52 for weeks, 12 for months.
func (u TenureUnit) PeriodsPerYear() int {
	switch u.value {
	case tenureUnitDays:
		return 365
	case tenureUnitWeeks:
		return 52
	default:
		return 12
	}
}

// Next steps a date forward by one unit. Month stepping clamps the
// day-of-month to the last valid day of the target month, so a schedule
// started on Jan 31 falls due on Feb 28 (or 29).
func (u TenureUnit) Next(t time.Time) time.Time {
	switch u.value {
	case tenureUnitDays:
		return t.AddDate(0, 0, 1)
	case tenureUnitWeeks:
		return t.AddDate(0, 0, 7)
	default:
		year, month := t.Year(), int(t.Month())+1
		if month > 12 {
			month = 1
			year++
		}
		day := t.Day()
		if last := daysInMonth(year, time.Month(month)); day > last {
			day = last
		}
		return time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ---------------------------------------------------------------------------
// InterestModel – amortization model
// ---------------------------------------------------------------------------

// InterestModel selects the amortization model for a loan.
type InterestModel struct {
	value string
}

const (
	interestModelFlat     = "flat"
	interestModelReducing = "reducing"
)

var (
	InterestModelFlat     = InterestModel{value: interestModelFlat}
	InterestModelReducing = InterestModel{value: interestModelReducing}
)

// NewInterestModel creates an InterestModel from a raw string.
func NewInterestModel(s string) (InterestModel, error) {
	switch s {
	case interestModelFlat:
		return InterestModelFlat, nil
	case interestModelReducing:
		return InterestModelReducing, nil
	default:
		return InterestModel{}, fmt.Errorf("invalid interest model: %q", s)
	}
}

// String returns the string representation.
func (m InterestModel) String() string { return m.value }

// IsZero returns true when not initialised.
func (m InterestModel) IsZero() bool { return m.value == "" }

// Equal returns true when both models match.
func (m InterestModel) Equal(other InterestModel) bool { return m.value == other.value }

// ---------------------------------------------------------------------------
// PaymentChannel
// ---------------------------------------------------------------------------

// PaymentChannel is the means by which an installment was collected.
type PaymentChannel struct {
	value string
}

const (
	paymentChannelCash = "cash"
	paymentChannelUPI  = "upi"
)

var (
	PaymentChannelCash = PaymentChannel{value: paymentChannelCash}
	PaymentChannelUPI  = PaymentChannel{value: paymentChannelUPI}
)

// NewPaymentChannel creates a PaymentChannel from a raw string.
func NewPaymentChannel(s string) (PaymentChannel, error) {
	switch s {
	case paymentChannelCash:
		return PaymentChannelCash, nil
	case paymentChannelUPI:
		return PaymentChannelUPI, nil
	default:
		return PaymentChannel{}, fmt.Errorf("invalid payment channel: %q", s)
	}
}

// String returns the string representation.
func (c PaymentChannel) String() string { return c.value }

// IsZero returns true when not initialised.
func (c PaymentChannel) IsZero() bool { return c.value == "" }

// Equal returns true when both channels match.
func (c PaymentChannel) Equal(other PaymentChannel) bool { return c.value == other.value }
