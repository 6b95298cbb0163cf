package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

var (
	// paidTolerance absorbs rounding residue when deciding whether an
	// installment is fully settled.
	paidTolerance = decimal.NewFromFloat(0.10)

	// closureTolerance is the residual pending total under which a loan is
	// considered fully repaid.
	closureTolerance = decimal.NewFromInt(10)
)

// AllocationLine records how much of a payment landed on one installment.
type AllocationLine struct {
	EntryID     uuid.UUID
	EmiNo       int
	Applied     decimal.Decimal
	Outstanding decimal.Decimal
	Status      valueobject.EMIStatus
}

// AllocationResult is the outcome of applying a payment across a loan's
// unpaid installments.
type AllocationResult struct {
	Lines         []AllocationLine
	Entries       []EMIEntry
	PendingAmount decimal.Decimal
	Closed        bool
	Summary       string
}

// Allocate applies amount across the loan's unpaid installments oldest due
// first. Each installment absorbs at most its outstanding balance; the
// remainder rolls forward. An installment with outstanding within the paid
// tolerance of zero becomes PAID, otherwise PARTIAL once touched. The loan
// closes when every installment is PAID and the pending total is within the
// closure tolerance.
//
// Allocate is pure: it returns updated copies of the touched entries and
// never mutates its input slice's elements beyond the returned copies.
func Allocate(entries []EMIEntry, amount decimal.Decimal) AllocationResult {
	updated := make([]EMIEntry, len(entries))
	copy(updated, entries)

	sort.SliceStable(updated, func(i, j int) bool {
		if updated[i].DueDate.Equal(updated[j].DueDate) {
			return updated[i].EmiNo < updated[j].EmiNo
		}
		return updated[i].DueDate.Before(updated[j].DueDate)
	})

	remaining := amount
	lines := make([]AllocationLine, 0, len(updated))

	for i := range updated {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		entry := &updated[i]
		if entry.Status.IsPaid() {
			continue
		}

		outstanding := entry.Outstanding
		// Stale rows can carry a non-positive balance while still unpaid;
		// treat the whole installment amount as owed rather than skipping.
		if outstanding.LessThanOrEqual(decimal.Zero) {
			outstanding = entry.Amount
		}

		take := decimal.Min(remaining, outstanding)
		outstanding = outstanding.Sub(take)
		remaining = remaining.Sub(take)

		entry.Outstanding = clampZero(outstanding)
		if entry.Outstanding.LessThanOrEqual(paidTolerance) {
			entry.Outstanding = decimal.Zero
			entry.Status = valueobject.EMIStatusPaid
		} else {
			entry.Status = valueobject.EMIStatusPartial
		}

		lines = append(lines, AllocationLine{
			EntryID:     entry.ID,
			EmiNo:       entry.EmiNo,
			Applied:     take,
			Outstanding: entry.Outstanding,
			Status:      entry.Status,
		})
	}

	pending := decimal.Zero
	allPaid := true
	for _, entry := range updated {
		if !entry.Status.IsPaid() {
			allPaid = false
			pending = pending.Add(entry.Outstanding)
		}
	}

	closed := allPaid && pending.LessThanOrEqual(closureTolerance)

	return AllocationResult{
		Lines:         lines,
		Entries:       updated,
		PendingAmount: pending,
		Closed:        closed,
		Summary:       summarize(lines, remaining, closed),
	}
}

func summarize(lines []AllocationLine, unapplied decimal.Decimal, closed bool) string {
	if len(lines) == 0 {
		return "no unpaid installments; nothing allocated"
	}
	first := lines[0].EmiNo
	last := lines[len(lines)-1].EmiNo
	s := fmt.Sprintf("allocated across EMI %d..%d", first, last)
	if unapplied.GreaterThan(decimal.Zero) {
		s += fmt.Sprintf(", %s unapplied", unapplied.Round(2).String())
	}
	if closed {
		s += ", loan fully settled"
	}
	return s
}
