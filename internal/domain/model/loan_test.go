package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

func draftLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoanDraft(
		"LN-2025-000042", uuid.New(), uuid.New(),
		decimal.NewFromInt(10000), decimal.NewFromInt(10),
		valueobject.InterestModelFlat, valueobject.TenureUnitMonths, 10,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return loan
}

func TestNewLoanDraft(t *testing.T) {
	t.Run("starts in created with the principal pending", func(t *testing.T) {
		loan := draftLoan(t)
		assert.True(t, loan.Status().Equal(valueobject.LoanStatusCreated))
		assert.True(t, loan.TotalPayable().IsZero())
		assert.True(t, decimal.NewFromInt(10000).Equal(loan.PendingAmount()),
			"pending %s", loan.PendingAmount())
		assert.Empty(t, loan.DomainEvents())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := model.NewLoanDraft("", uuid.New(), uuid.New(),
			decimal.NewFromInt(1000), decimal.NewFromInt(10),
			valueobject.InterestModelFlat, valueobject.TenureUnitMonths, 10, time.Now())
		assert.Error(t, err)

		_, err = model.NewLoanDraft("LN-2025-000001", uuid.New(), uuid.New(),
			decimal.Zero, decimal.NewFromInt(10),
			valueobject.InterestModelFlat, valueobject.TenureUnitMonths, 10, time.Now())
		assert.Error(t, err)

		_, err = model.NewLoanDraft("LN-2025-000001", uuid.New(), uuid.New(),
			decimal.NewFromInt(1000), decimal.NewFromInt(10),
			valueobject.InterestModelFlat, valueobject.TenureUnitMonths, 0, time.Now())
		assert.Error(t, err)
	})
}

func TestLoanApprove(t *testing.T) {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	t.Run("builds the schedule and fixes the total payable", func(t *testing.T) {
		loan := draftLoan(t)

		approved, entries, err := loan.Approve(start, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, approved.Status().Equal(valueobject.LoanStatusApproved))
		assert.Equal(t, start, approved.StartDate())
		assert.True(t, decimal.NewFromInt(11000).Equal(approved.TotalPayable()),
			"total payable %s", approved.TotalPayable())
		assert.True(t, approved.PendingAmount().Equal(approved.TotalPayable()))
		require.Len(t, entries, 10)
		for _, e := range entries {
			assert.Equal(t, approved.ID(), e.LoanID)
			assert.NotEqual(t, uuid.Nil, e.ID)
		}
		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
		require.Len(t, approved.DomainEvents(), 1)
		assert.Equal(t, "loan.approved", approved.DomainEvents()[0].EventType())

		// Original copy untouched.
		assert.True(t, loan.Status().Equal(valueobject.LoanStatusCreated))
		assert.True(t, loan.TotalPayable().IsZero())
	})

	t.Run("rejects a zero start date", func(t *testing.T) {
		loan := draftLoan(t)
		_, _, err := loan.Approve(time.Time{}, time.Now().UTC())
		assert.Error(t, err)
	})

	t.Run("rejects double approval", func(t *testing.T) {
		loan := draftLoan(t)
		approved, _, err := loan.Approve(start, time.Now().UTC())
		require.NoError(t, err)

		_, _, err = approved.Approve(start, time.Now().UTC())
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestLoanActivate(t *testing.T) {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	t.Run("opens repayment without touching the schedule amounts", func(t *testing.T) {
		loan := draftLoan(t)
		approved, _, err := loan.Approve(start, time.Now().UTC())
		require.NoError(t, err)
		totalBefore := approved.TotalPayable()
		pendingBefore := approved.PendingAmount()

		active, err := approved.ClearEvents().Activate(time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, active.Status().Equal(valueobject.LoanStatusActive))
		assert.Equal(t, start, active.StartDate())
		assert.True(t, active.TotalPayable().Equal(totalBefore))
		assert.True(t, active.PendingAmount().Equal(pendingBefore))
		require.Len(t, active.DomainEvents(), 1)
		assert.Equal(t, "loan.activated", active.DomainEvents()[0].EventType())
	})

	t.Run("rejects activating a draft", func(t *testing.T) {
		loan := draftLoan(t)
		_, err := loan.Activate(time.Now().UTC())
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func activeLoan(t *testing.T) model.Loan {
	t.Helper()
	loan := draftLoan(t)
	approved, _, err := loan.Approve(
		time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())
	require.NoError(t, err)
	active, err := approved.Activate(time.Now().UTC())
	require.NoError(t, err)
	return active.ClearEvents()
}

func TestLoanApplyAllocation(t *testing.T) {
	t.Run("updates the pending total", func(t *testing.T) {
		loan := activeLoan(t)

		updated, err := loan.ApplyAllocation(model.AllocationResult{
			PendingAmount: decimal.NewFromInt(9900),
		}, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(9900).Equal(updated.PendingAmount()))
		assert.True(t, updated.Status().Equal(valueobject.LoanStatusActive))
	})

	t.Run("closes the loan when the allocation settles it", func(t *testing.T) {
		loan := activeLoan(t)

		updated, err := loan.ApplyAllocation(model.AllocationResult{
			PendingAmount: decimal.NewFromInt(4),
			Closed:        true,
		}, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, updated.Status().Equal(valueobject.LoanStatusClosed))
		assert.True(t, updated.PendingAmount().IsZero())
		require.NotEmpty(t, updated.DomainEvents())
		assert.Equal(t, "loan.closed", updated.DomainEvents()[len(updated.DomainEvents())-1].EventType())
	})

	t.Run("rejects allocation on a draft", func(t *testing.T) {
		loan := draftLoan(t)
		_, err := loan.ApplyAllocation(model.AllocationResult{}, time.Now().UTC())
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestLoanForeclose(t *testing.T) {
	t.Run("settles an active loan", func(t *testing.T) {
		active := activeLoan(t)

		closed, err := active.Foreclose(decimal.NewFromInt(9500), time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, closed.Status().Equal(valueobject.LoanStatusClosed))
		assert.True(t, closed.PendingAmount().IsZero())
		require.Len(t, closed.DomainEvents(), 1)
		assert.Equal(t, "loan.foreclosed", closed.DomainEvents()[0].EventType())
	})

	t.Run("rejects foreclosing a draft", func(t *testing.T) {
		loan := draftLoan(t)
		_, err := loan.Foreclose(decimal.NewFromInt(100), time.Now().UTC())
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("rejects a non-positive settlement", func(t *testing.T) {
		active := activeLoan(t)
		_, err := active.Foreclose(decimal.Zero, time.Now().UTC())
		assert.Error(t, err)
	})
}
