package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/application/usecase"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

func TestDeleteLoan_Execute(t *testing.T) {
	t.Run("deletes a draft and records the removal", func(t *testing.T) {
		loan := draftLoanFixture(t)
		scope := &fakeLoanScope{loan: loan}
		uc := usecase.NewDeleteLoanUseCase(&fakeScopeRunner{scope: scope}, testLogger())

		err := uc.Execute(context.Background(), dto.DeleteLoanRequest{
			LoanID:  loan.ID().String(),
			ActorID: uuid.New().String(),
		})

		require.NoError(t, err)
		require.Len(t, scope.deleted, 1)
		assert.Equal(t, loan.ID(), scope.deleted[0])
		assert.Equal(t, []string{model.AuditLoanDeleted}, scope.auditActions())
	})

	t.Run("deletes a closed loan", func(t *testing.T) {
		active, _ := activeLoanFixture(t)
		closed, err := active.Foreclose(decimal.NewFromInt(9500), time.Now().UTC())
		require.NoError(t, err)

		scope := &fakeLoanScope{loan: closed.ClearEvents()}
		uc := usecase.NewDeleteLoanUseCase(&fakeScopeRunner{scope: scope}, testLogger())

		err = uc.Execute(context.Background(), dto.DeleteLoanRequest{
			LoanID:  closed.ID().String(),
			ActorID: uuid.New().String(),
		})

		require.NoError(t, err)
		require.Len(t, scope.deleted, 1)
	})

	t.Run("refuses to delete an active loan", func(t *testing.T) {
		active, _ := activeLoanFixture(t)
		scope := &fakeLoanScope{loan: active}
		uc := usecase.NewDeleteLoanUseCase(&fakeScopeRunner{scope: scope}, testLogger())

		err := uc.Execute(context.Background(), dto.DeleteLoanRequest{
			LoanID:  active.ID().String(),
			ActorID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
		assert.Empty(t, scope.deleted)
		assert.Empty(t, scope.audits)
	})

	t.Run("reports a missing loan", func(t *testing.T) {
		scope := &fakeLoanScope{loanErr: port.ErrNotFound}
		uc := usecase.NewDeleteLoanUseCase(&fakeScopeRunner{scope: scope}, testLogger())

		err := uc.Execute(context.Background(), dto.DeleteLoanRequest{
			LoanID:  uuid.New().String(),
			ActorID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, port.ErrNotFound)
		assert.Empty(t, scope.deleted)
	})

	t.Run("rejects a malformed loan ID", func(t *testing.T) {
		uc := usecase.NewDeleteLoanUseCase(&fakeScopeRunner{scope: &fakeLoanScope{}}, testLogger())

		err := uc.Execute(context.Background(), dto.DeleteLoanRequest{
			LoanID:  "drop table loans",
			ActorID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, usecase.ErrBadRequest)
	})
}
