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

func pendingEntries(t *testing.T, amounts ...int64) []model.EMIEntry {
	t.Helper()
	base := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]model.EMIEntry, 0, len(amounts))
	for i, a := range amounts {
		amt := decimal.NewFromInt(a)
		entries = append(entries, model.EMIEntry{
			ID:          uuid.New(),
			EmiNo:       i + 1,
			DueDate:     base.AddDate(0, i, 0),
			Amount:      amt,
			Outstanding: amt,
			Status:      valueobject.EMIStatusPending,
		})
	}
	return entries
}

func TestAllocate(t *testing.T) {
	t.Run("exact installment settles the oldest entry", func(t *testing.T) {
		entries := pendingEntries(t, 1100, 1100, 1100)

		result := model.Allocate(entries, decimal.NewFromInt(1100))

		require.Len(t, result.Lines, 1)
		assert.Equal(t, 1, result.Lines[0].EmiNo)
		assert.True(t, result.Entries[0].Status.IsPaid())
		assert.True(t, decimal.Zero.Equal(result.Entries[0].Outstanding))
		assert.True(t, result.Entries[1].Status.Equal(valueobject.EMIStatusPending))
		assert.True(t, decimal.NewFromInt(2200).Equal(result.PendingAmount))
		assert.False(t, result.Closed)
	})

	t.Run("overpayment rolls into the next installment", func(t *testing.T) {
		entries := pendingEntries(t, 1100, 1100, 1100)

		result := model.Allocate(entries, decimal.NewFromInt(1500))

		require.Len(t, result.Lines, 2)
		assert.True(t, result.Entries[0].Status.IsPaid())
		assert.True(t, result.Entries[1].Status.Equal(valueobject.EMIStatusPartial))
		assert.True(t, decimal.NewFromInt(700).Equal(result.Entries[1].Outstanding))
		assert.True(t, decimal.NewFromInt(1800).Equal(result.PendingAmount))
	})

	t.Run("partial payment leaves the entry partial", func(t *testing.T) {
		entries := pendingEntries(t, 1100)

		result := model.Allocate(entries, decimal.NewFromInt(400))

		assert.True(t, result.Entries[0].Status.Equal(valueobject.EMIStatusPartial))
		assert.True(t, decimal.NewFromInt(700).Equal(result.Entries[0].Outstanding))
	})

	t.Run("residue within the paid tolerance settles the entry", func(t *testing.T) {
		entries := pendingEntries(t, 1100)

		result := model.Allocate(entries, decimal.NewFromFloat(1099.95))

		assert.True(t, result.Entries[0].Status.IsPaid())
		assert.True(t, decimal.Zero.Equal(result.Entries[0].Outstanding))
	})

	t.Run("residue beyond the paid tolerance stays partial", func(t *testing.T) {
		entries := pendingEntries(t, 1100)

		result := model.Allocate(entries, decimal.NewFromFloat(1099.80))

		assert.True(t, result.Entries[0].Status.Equal(valueobject.EMIStatusPartial))
	})

	t.Run("settling every installment closes the loan", func(t *testing.T) {
		entries := pendingEntries(t, 1100, 1100)

		result := model.Allocate(entries, decimal.NewFromInt(2200))

		assert.True(t, result.Closed)
		assert.True(t, decimal.Zero.Equal(result.PendingAmount))
	})

	t.Run("paid entries are skipped", func(t *testing.T) {
		entries := pendingEntries(t, 1100, 1100)
		entries[0].Status = valueobject.EMIStatusPaid
		entries[0].Outstanding = decimal.Zero

		result := model.Allocate(entries, decimal.NewFromInt(500))

		require.Len(t, result.Lines, 1)
		assert.Equal(t, 2, result.Lines[0].EmiNo)
	})

	t.Run("allocation is conserved", func(t *testing.T) {
		entries := pendingEntries(t, 900, 900, 900)

		result := model.Allocate(entries, decimal.NewFromInt(2000))

		applied := decimal.Zero
		for _, line := range result.Lines {
			applied = applied.Add(line.Applied)
		}
		assert.True(t, decimal.NewFromInt(2000).Equal(applied), "applied %s", applied)
	})

	t.Run("unpaid entry with stale zero balance owes its full amount", func(t *testing.T) {
		entries := pendingEntries(t, 1100)
		entries[0].Outstanding = decimal.Zero

		result := model.Allocate(entries, decimal.NewFromInt(500))

		assert.True(t, result.Entries[0].Status.Equal(valueobject.EMIStatusPartial))
		assert.True(t, decimal.NewFromInt(600).Equal(result.Entries[0].Outstanding))
	})

	t.Run("allocates oldest due first regardless of slice order", func(t *testing.T) {
		entries := pendingEntries(t, 1000, 1000)
		entries[0], entries[1] = entries[1], entries[0]

		result := model.Allocate(entries, decimal.NewFromInt(1000))

		require.Len(t, result.Lines, 1)
		assert.Equal(t, 1, result.Lines[0].EmiNo)
	})

	t.Run("excess beyond the schedule is reported unapplied", func(t *testing.T) {
		entries := pendingEntries(t, 1000)

		result := model.Allocate(entries, decimal.NewFromInt(1500))

		assert.True(t, result.Closed)
		assert.Contains(t, result.Summary, "unapplied")
	})
}
