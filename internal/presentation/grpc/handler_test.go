package grpc

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Madhuarvind/ak-finserv/internal/application/usecase"
	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/service"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
	"github.com/Madhuarvind/ak-finserv/pkg/auth"
)

// --- Mock implementations ---

type stubLoanRepo struct {
	loan    model.Loan
	loanErr error
	opened  int
}

func (s *stubLoanRepo) Create(context.Context, model.Loan, model.AuditRecord) error { return nil }

func (s *stubLoanRepo) FindByID(context.Context, uuid.UUID) (model.Loan, error) {
	if s.loanErr != nil {
		return model.Loan{}, s.loanErr
	}
	return s.loan, nil
}

func (s *stubLoanRepo) Schedule(context.Context, uuid.UUID) ([]model.EMIEntry, error) {
	return nil, nil
}

func (s *stubLoanRepo) CountOpenedInYear(context.Context, int) (int, error) {
	return s.opened, nil
}

type stubCollectionRepo struct {
	collection model.CollectionEvent
	err        error
}

func (s *stubCollectionRepo) FindByID(context.Context, uuid.UUID) (model.CollectionEvent, error) {
	if s.err != nil {
		return model.CollectionEvent{}, s.err
	}
	return s.collection, nil
}

func (s *stubCollectionRepo) ListPendingReview(context.Context, int) ([]model.CollectionEvent, error) {
	return nil, nil
}

type stubHistory struct{}

func (stubHistory) FlaggedOpenCount(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (stubHistory) LastCaptureAt(context.Context, uuid.UUID) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

type stubCustomers struct {
	home valueobject.GeoPoint
}

func (s stubCustomers) HomeLocation(context.Context, uuid.UUID) (valueobject.GeoPoint, bool, error) {
	return s.home, true, nil
}

type stubRoutes struct{}

func (stubRoutes) WorkingWindow(context.Context, uuid.UUID) (valueobject.TimeWindow, bool, error) {
	return valueobject.TimeWindow{Start: "00:00", End: "23:59"}, true, nil
}

type stubAuditTrail struct {
	records []model.AuditRecord
}

func (s stubAuditTrail) ListForLoan(context.Context, uuid.UUID) ([]model.AuditRecord, error) {
	return s.records, nil
}

type stubRisk struct{}

func (stubRisk) Score(context.Context, model.CollectionEvent) (float64, error) { return 0.1, nil }

type stubPublisher struct{}

func (stubPublisher) Publish(context.Context, ...event.DomainEvent) error { return nil }

// stubScope serves one loan and its schedule from memory.
type stubScope struct {
	loan       model.Loan
	loanErr    error
	entries    []model.EMIEntry
	collection *model.CollectionEvent
}

func (s *stubScope) Loan(context.Context, uuid.UUID) (model.Loan, error) {
	if s.loanErr != nil {
		return model.Loan{}, s.loanErr
	}
	return s.loan, nil
}

func (s *stubScope) UnpaidEntries(context.Context, uuid.UUID) ([]model.EMIEntry, error) {
	return s.entries, nil
}

func (s *stubScope) HasCollectionOnDay(context.Context, uuid.UUID, time.Time) (bool, error) {
	return false, nil
}

func (s *stubScope) CollectionForUpdate(context.Context, uuid.UUID) (model.CollectionEvent, error) {
	if s.collection == nil {
		return model.CollectionEvent{}, port.ErrNotFound
	}
	return *s.collection, nil
}

func (s *stubScope) InsertCollection(context.Context, model.CollectionEvent) error { return nil }
func (s *stubScope) UpdateCollection(context.Context, model.CollectionEvent) error { return nil }
func (s *stubScope) SaveLoan(context.Context, model.Loan) error                    { return nil }
func (s *stubScope) InsertEntries(context.Context, []model.EMIEntry) error         { return nil }
func (s *stubScope) SaveEntries(context.Context, []model.EMIEntry) error           { return nil }
func (s *stubScope) AppendAudit(context.Context, model.AuditRecord) error          { return nil }
func (s *stubScope) DeleteLoanCascade(context.Context, uuid.UUID) error            { return nil }

type stubRunner struct {
	scope *stubScope
}

func (r *stubRunner) InLoanScope(_ context.Context, _ uuid.UUID, fn func(scope port.LoanScope) error) error {
	return fn(r.scope)
}

// --- Helpers ---

func contextWithRoles(roles ...string) context.Context {
	claims := &auth.Claims{
		UserID: uuid.New(),
		Roles:  roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func activeTestLoan(t *testing.T) (model.Loan, []model.EMIEntry) {
	t.Helper()
	draft, err := model.NewLoanDraft(
		"LN-2025-000009", uuid.New(), uuid.New(),
		decimal.NewFromInt(10000), decimal.NewFromInt(10),
		valueobject.InterestModelFlat, valueobject.TenureUnitMonths, 10,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	approved, entries, err := draft.Approve(
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())
	require.NoError(t, err)
	active, err := approved.Activate(time.Now().UTC())
	require.NoError(t, err)
	return active.ClearEvents(), entries
}

func draftTestLoan(t *testing.T) model.Loan {
	t.Helper()
	draft, err := model.NewLoanDraft(
		"LN-2025-000010", uuid.New(), uuid.New(),
		decimal.NewFromInt(5000), decimal.NewFromInt(12),
		valueobject.InterestModelFlat, valueobject.TenureUnitMonths, 5,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return draft
}

func buildTestHandler(t *testing.T, scope *stubScope, loanRepo *stubLoanRepo, collRepo *stubCollectionRepo) *FieldLoanHandler {
	t.Helper()
	runner := &stubRunner{scope: scope}
	publisher := stubPublisher{}
	logger := testLogger()

	home, err := valueobject.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	metrics, err := usecase.NewIntakeMetrics(noop.Meter{})
	require.NoError(t, err)

	return NewFieldLoanHandler(
		usecase.NewCreateLoanUseCase(loanRepo),
		usecase.NewApproveLoanUseCase(runner, publisher),
		usecase.NewActivateLoanUseCase(runner, publisher),
		usecase.NewGetLoanUseCase(loanRepo),
		usecase.NewSubmitCollectionUseCase(
			runner, stubHistory{}, stubCustomers{home: home}, stubRoutes{},
			service.NewFraudGuard(), stubRisk{}, publisher, metrics, time.UTC, logger,
		),
		usecase.NewReviewCollectionUseCase(collRepo, runner, publisher),
		usecase.NewForecloseLoanUseCase(runner, publisher),
		usecase.NewListPendingCollectionsUseCase(collRepo),
		usecase.NewDeleteLoanUseCase(runner, logger),
		usecase.NewGetLoanAuditUseCase(stubAuditTrail{}),
		logger,
	)
}

func coord(v float64) *float64 { return &v }

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %T: %v", err, err)
	assert.Equal(t, code, st.Code(), "expected gRPC code %s, got %s: %s", code, st.Code(), st.Message())
}

// --- Tests ---

func TestCreateLoanDraftHandler(t *testing.T) {
	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.CreateLoanDraft(context.Background(), &CreateLoanDraftRequest{})
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("field agent cannot open drafts", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.CreateLoanDraft(contextWithRoles(auth.RoleFieldAgent), &CreateLoanDraftRequest{})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.CreateLoanDraft(contextWithRoles(auth.RoleAdmin), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("malformed principal returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.CreateLoanDraft(contextWithRoles(auth.RoleAdmin), &CreateLoanDraftRequest{
			CustomerID:    uuid.New().String(),
			AgentID:       uuid.New().String(),
			Principal:     "ten thousand",
			AnnualRatePct: "10",
			InterestModel: "flat",
			TenureUnit:    "months",
			Installments:  10,
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid principal")
	})

	t.Run("happy path returns the draft", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{opened: 11}, &stubCollectionRepo{})
		resp, err := h.CreateLoanDraft(contextWithRoles(auth.RoleManager), &CreateLoanDraftRequest{
			CustomerID:    uuid.New().String(),
			AgentID:       uuid.New().String(),
			Principal:     "10000",
			AnnualRatePct: "10",
			InterestModel: "flat",
			TenureUnit:    "months",
			Installments:  10,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Loan)
		assert.Equal(t, "CREATED", resp.Loan.Status)
		assert.Contains(t, resp.Loan.LoanNumber, "-000012")
	})
}

func TestApproveLoanHandler(t *testing.T) {
	t.Run("missing loan returns NotFound", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{loanErr: port.ErrNotFound}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.ApproveLoan(contextWithRoles(auth.RoleAdmin), &ApproveLoanRequest{
			LoanID: uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("double approval returns FailedPrecondition", func(t *testing.T) {
		active, _ := activeTestLoan(t)
		h := buildTestHandler(t, &stubScope{loan: active}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.ApproveLoan(contextWithRoles(auth.RoleAdmin), &ApproveLoanRequest{
			LoanID: active.ID().String(),
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestSubmitCollectionHandler(t *testing.T) {
	t.Run("manager cannot submit field captures", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.SubmitCollection(contextWithRoles(auth.RoleManager), &SubmitCollectionRequest{})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("happy path captures and allocates", func(t *testing.T) {
		active, entries := activeTestLoan(t)
		scope := &stubScope{loan: active, entries: entries}
		h := buildTestHandler(t, scope, &stubLoanRepo{}, &stubCollectionRepo{})

		resp, err := h.SubmitCollection(contextWithRoles(auth.RoleFieldAgent), &SubmitCollectionRequest{
			LoanID:  active.ID().String(),
			Amount:  "1100",
			Channel: "cash",
			Lat:     coord(12.9716),
			Lng:     coord(77.5946),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Collection)
		assert.Equal(t, "APPROVED", resp.Collection.Status)
		assert.True(t, resp.Collection.AutoApproved)
		require.Len(t, resp.Allocation, 1)
		assert.Equal(t, "9900", resp.LoanPending)
	})

	t.Run("accepts a capture without coordinates", func(t *testing.T) {
		active, entries := activeTestLoan(t)
		scope := &stubScope{loan: active, entries: entries}
		h := buildTestHandler(t, scope, &stubLoanRepo{}, &stubCollectionRepo{})

		resp, err := h.SubmitCollection(contextWithRoles(auth.RoleFieldAgent), &SubmitCollectionRequest{
			LoanID:  active.ID().String(),
			Amount:  "1100",
			Channel: "cash",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Collection)
		assert.Equal(t, "PENDING", resp.Collection.Status)
		assert.Nil(t, resp.Collection.Lat)
		assert.Nil(t, resp.Collection.Lng)
	})

	t.Run("draft loan returns FailedPrecondition", func(t *testing.T) {
		draft := draftTestLoan(t)
		h := buildTestHandler(t, &stubScope{loan: draft}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.SubmitCollection(contextWithRoles(auth.RoleFieldAgent), &SubmitCollectionRequest{
			LoanID:  draft.ID().String(),
			Amount:  "1000",
			Channel: "cash",
			Lat:     coord(12.9716),
			Lng:     coord(77.5946),
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestDeleteLoanHandler(t *testing.T) {
	t.Run("only admins may delete", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.DeleteLoan(contextWithRoles(auth.RoleManager), &DeleteLoanRequest{
			LoanID: uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("admin deletes a draft loan", func(t *testing.T) {
		draft := draftTestLoan(t)
		h := buildTestHandler(t, &stubScope{loan: draft}, &stubLoanRepo{}, &stubCollectionRepo{})
		resp, err := h.DeleteLoan(contextWithRoles(auth.RoleAdmin), &DeleteLoanRequest{
			LoanID: draft.ID().String(),
		})
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})

	t.Run("active loan returns FailedPrecondition", func(t *testing.T) {
		active, _ := activeTestLoan(t)
		h := buildTestHandler(t, &stubScope{loan: active}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.DeleteLoan(contextWithRoles(auth.RoleAdmin), &DeleteLoanRequest{
			LoanID: active.ID().String(),
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestGetLoanAuditHandler(t *testing.T) {
	t.Run("field agent cannot read the trail", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		_, err := h.GetLoanAudit(contextWithRoles(auth.RoleFieldAgent), &GetLoanAuditRequest{
			LoanID: uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("manager reads an empty trail", func(t *testing.T) {
		h := buildTestHandler(t, &stubScope{}, &stubLoanRepo{}, &stubCollectionRepo{})
		resp, err := h.GetLoanAudit(contextWithRoles(auth.RoleManager), &GetLoanAuditRequest{
			LoanID: uuid.New().String(),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Records)
	})
}

func TestMapError(t *testing.T) {
	requireGRPCCode(t, mapError(model.ErrDuplicateSameDay), codes.FailedPrecondition)
	requireGRPCCode(t, mapError(model.ErrOutsideWindow), codes.FailedPrecondition)
	requireGRPCCode(t, mapError(port.ErrNotFound), codes.NotFound)
	requireGRPCCode(t, mapError(usecase.ErrBadRequest), codes.InvalidArgument)
	requireGRPCCode(t, mapError(assert.AnError), codes.Internal)
}
