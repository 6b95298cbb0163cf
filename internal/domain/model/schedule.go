package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

var (
	hundred = decimal.NewFromInt(100)
)

// EMIEntry is one installment in a loan's repayment schedule.
//
// ScheduleBalance is the calculator's remaining-total column: the amount of
// the total payable left after this installment, frozen at approval time.
// Outstanding is the live per-installment balance the allocator draws down;
// it starts equal to Amount and only ever decreases.
type EMIEntry struct {
	ID              uuid.UUID
	LoanID          uuid.UUID
	EmiNo           int
	DueDate         time.Time
	Amount          decimal.Decimal
	PrincipalPart   decimal.Decimal
	InterestPart    decimal.Decimal
	ScheduleBalance decimal.Decimal
	Outstanding     decimal.Decimal
	Status          valueobject.EMIStatus
}

// FlatSchedule computes an n-installment schedule under the flat-interest
// model used in simple microfinance workflows: the rate is applied to the
// principal once for the whole tenure, and principal and interest portions
// are divided evenly across installments rather than amortized. This shape
// is kept deliberately.
func FlatSchedule(principal, annualRate decimal.Decimal, n int) []EMIEntry {
	if n <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	count := decimal.NewFromInt(int64(n))
	totalInterest := principal.Mul(annualRate).Div(hundred)
	totalPayable := principal.Add(totalInterest)
	emi := totalPayable.Div(count)

	principalPart := principal.Div(count).Round(2)
	interestPart := totalInterest.Div(count).Round(2)

	entries := make([]EMIEntry, 0, n)
	balance := totalPayable

	for i := 1; i <= n; i++ {
		balance = balance.Sub(emi)
		entries = append(entries, EMIEntry{
			EmiNo:           i,
			Amount:          emi.Round(2),
			PrincipalPart:   principalPart,
			InterestPart:    interestPart,
			ScheduleBalance: clampZero(balance).Round(2),
			Outstanding:     emi.Round(2),
			Status:          valueobject.EMIStatusPending,
		})
	}

	return entries
}

// ReducingSchedule computes an n-installment schedule under the reducing
// balance model: the annual rate is converted to a periodic rate by tenure
// unit and each period's interest is recomputed on the outstanding balance.
// The fixed installment comes from the standard annuity formula; the power
// term is computed in float64 and converted back for monetary arithmetic.
func ReducingSchedule(principal, annualRate decimal.Decimal, n int, unit valueobject.TenureUnit) []EMIEntry {
	if n <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	count := decimal.NewFromInt(int64(n))
	periodicRate := annualRate.InexactFloat64() / 100 / float64(unit.PeriodsPerYear())

	var emi decimal.Decimal
	if periodicRate == 0 {
		emi = principal.Div(count)
	} else {
		// P * i * (1+i)^n / ((1+i)^n - 1)
		factor := math.Pow(1+periodicRate, float64(n))
		emi = decimal.NewFromFloat(principal.InexactFloat64() * periodicRate * factor / (factor - 1))
	}

	rate := decimal.NewFromFloat(periodicRate)
	entries := make([]EMIEntry, 0, n)
	balance := principal

	for i := 1; i <= n; i++ {
		interestPart := balance.Mul(rate)
		principalPart := emi.Sub(interestPart)
		balance = balance.Sub(principalPart)

		entries = append(entries, EMIEntry{
			EmiNo:           i,
			Amount:          emi.Round(2),
			PrincipalPart:   principalPart.Round(2),
			InterestPart:    interestPart.Round(2),
			ScheduleBalance: clampZero(balance).Round(2),
			Outstanding:     emi.Round(2),
			Status:          valueobject.EMIStatusPending,
		})
	}

	return entries
}

// DueDates generates n due dates by stepping from start one tenure unit at a
// time. The first due date is one unit after start.
func DueDates(start time.Time, n int, unit valueobject.TenureUnit) []time.Time {
	dates := make([]time.Time, 0, n)
	curr := start
	for i := 0; i < n; i++ {
		curr = unit.Next(curr)
		dates = append(dates, curr)
	}
	return dates
}

// BuildSchedule produces the full EMI schedule for a loan: amounts per the
// interest model, due dates stepped from startDate. It returns the entries
// and the total payable (the sum of installment amounts).
func BuildSchedule(
	interestModel valueobject.InterestModel,
	principal, annualRate decimal.Decimal,
	n int,
	unit valueobject.TenureUnit,
	startDate time.Time,
) ([]EMIEntry, decimal.Decimal) {
	var entries []EMIEntry
	if interestModel.Equal(valueobject.InterestModelReducing) {
		entries = ReducingSchedule(principal, annualRate, n, unit)
	} else {
		entries = FlatSchedule(principal, annualRate, n)
	}

	dates := DueDates(startDate, len(entries), unit)
	total := decimal.Zero
	for i := range entries {
		entries[i].DueDate = dates[i]
		total = total.Add(entries[i].Amount)
	}
	return entries, total
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}
