package usecase_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockLoanRepository struct {
	createdLoan   *model.Loan
	createdAudit  *model.AuditRecord
	createFunc    func(ctx context.Context, loan model.Loan, audit model.AuditRecord) error
	findByIDFunc  func(ctx context.Context, id uuid.UUID) (model.Loan, error)
	scheduleFunc  func(ctx context.Context, loanID uuid.UUID) ([]model.EMIEntry, error)
	openedInYear  int
	countYearFunc func(ctx context.Context, year int) (int, error)
}

func (m *mockLoanRepository) Create(ctx context.Context, loan model.Loan, audit model.AuditRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, loan, audit)
	}
	m.createdLoan = &loan
	m.createdAudit = &audit
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, port.ErrNotFound
}

func (m *mockLoanRepository) Schedule(ctx context.Context, loanID uuid.UUID) ([]model.EMIEntry, error) {
	if m.scheduleFunc != nil {
		return m.scheduleFunc(ctx, loanID)
	}
	return nil, nil
}

func (m *mockLoanRepository) CountOpenedInYear(ctx context.Context, year int) (int, error) {
	if m.countYearFunc != nil {
		return m.countYearFunc(ctx, year)
	}
	return m.openedInYear, nil
}

type mockCollectionRepository struct {
	findByIDFunc    func(ctx context.Context, id uuid.UUID) (model.CollectionEvent, error)
	listPendingFunc func(ctx context.Context, limit int) ([]model.CollectionEvent, error)
}

func (m *mockCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (model.CollectionEvent, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.CollectionEvent{}, port.ErrNotFound
}

func (m *mockCollectionRepository) ListPendingReview(ctx context.Context, limit int) ([]model.CollectionEvent, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, limit)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishedEvents []event.DomainEvent
	publishFunc     func(ctx context.Context, evts ...event.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockCollectionHistory struct {
	lastAt      time.Time
	hasLast     bool
	flaggedOpen int
	lastErr     error
	flaggedErr  error
}

func (m *mockCollectionHistory) FlaggedOpenCount(context.Context, uuid.UUID) (int, error) {
	return m.flaggedOpen, m.flaggedErr
}

func (m *mockCollectionHistory) LastCaptureAt(context.Context, uuid.UUID) (time.Time, bool, error) {
	return m.lastAt, m.hasLast, m.lastErr
}

type mockCustomerDirectory struct {
	home  valueobject.GeoPoint
	known bool
	err   error
}

func (m *mockCustomerDirectory) HomeLocation(context.Context, uuid.UUID) (valueobject.GeoPoint, bool, error) {
	return m.home, m.known, m.err
}

type mockRouteDirectory struct {
	window     valueobject.TimeWindow
	configured bool
	err        error
}

func (m *mockRouteDirectory) WorkingWindow(context.Context, uuid.UUID) (valueobject.TimeWindow, bool, error) {
	return m.window, m.configured, m.err
}

type mockAuditTrail struct {
	records []model.AuditRecord
	err     error
}

func (m *mockAuditTrail) ListForLoan(context.Context, uuid.UUID) ([]model.AuditRecord, error) {
	return m.records, m.err
}

type mockRiskProvider struct {
	score float64
	err   error
}

func (m *mockRiskProvider) Score(context.Context, model.CollectionEvent) (float64, error) {
	return m.score, m.err
}

// fakeLoanScope is an in-memory LoanScope recording every write it receives.
type fakeLoanScope struct {
	loan            model.Loan
	loanErr         error
	entries         []model.EMIEntry
	dupOnDay        bool
	collections     map[uuid.UUID]model.CollectionEvent
	inserted        []model.CollectionEvent
	updated         []model.CollectionEvent
	savedLoans      []model.Loan
	insertedEntries []model.EMIEntry
	savedEntries    []model.EMIEntry
	audits          []model.AuditRecord
	deleted         []uuid.UUID
}

func (f *fakeLoanScope) Loan(context.Context, uuid.UUID) (model.Loan, error) {
	if f.loanErr != nil {
		return model.Loan{}, f.loanErr
	}
	return f.loan, nil
}

func (f *fakeLoanScope) UnpaidEntries(context.Context, uuid.UUID) ([]model.EMIEntry, error) {
	return f.entries, nil
}

func (f *fakeLoanScope) HasCollectionOnDay(context.Context, uuid.UUID, time.Time) (bool, error) {
	return f.dupOnDay, nil
}

func (f *fakeLoanScope) CollectionForUpdate(_ context.Context, id uuid.UUID) (model.CollectionEvent, error) {
	c, ok := f.collections[id]
	if !ok {
		return model.CollectionEvent{}, port.ErrNotFound
	}
	return c, nil
}

func (f *fakeLoanScope) InsertCollection(_ context.Context, c model.CollectionEvent) error {
	f.inserted = append(f.inserted, c)
	return nil
}

func (f *fakeLoanScope) UpdateCollection(_ context.Context, c model.CollectionEvent) error {
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeLoanScope) SaveLoan(_ context.Context, loan model.Loan) error {
	f.savedLoans = append(f.savedLoans, loan)
	return nil
}

func (f *fakeLoanScope) InsertEntries(_ context.Context, entries []model.EMIEntry) error {
	f.insertedEntries = append(f.insertedEntries, entries...)
	return nil
}

func (f *fakeLoanScope) SaveEntries(_ context.Context, entries []model.EMIEntry) error {
	f.savedEntries = append(f.savedEntries, entries...)
	return nil
}

func (f *fakeLoanScope) AppendAudit(_ context.Context, rec model.AuditRecord) error {
	f.audits = append(f.audits, rec)
	return nil
}

func (f *fakeLoanScope) DeleteLoanCascade(_ context.Context, loanID uuid.UUID) error {
	f.deleted = append(f.deleted, loanID)
	return nil
}

type fakeScopeRunner struct {
	scope *fakeLoanScope
	err   error
}

func (r *fakeScopeRunner) InLoanScope(_ context.Context, _ uuid.UUID, fn func(scope port.LoanScope) error) error {
	if r.err != nil {
		return r.err
	}
	return fn(r.scope)
}

// --- Shared fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// draftLoanFixture builds a CREATED flat loan of 10000 at 10% over 10 months.
func draftLoanFixture(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoanDraft(
		"LN-2025-000001", uuid.New(), uuid.New(),
		decimal.NewFromInt(10000), decimal.NewFromInt(10),
		valueobject.InterestModelFlat, valueobject.TenureUnitMonths, 10,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return loan
}

// activeLoanFixture walks the fixture through approval and activation and
// returns it with its generated schedule, events cleared.
func activeLoanFixture(t *testing.T) (model.Loan, []model.EMIEntry) {
	t.Helper()
	approved, entries, err := draftLoanFixture(t).Approve(
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())
	require.NoError(t, err)
	active, err := approved.Activate(time.Now().UTC())
	require.NoError(t, err)
	return active.ClearEvents(), entries
}

func (f *fakeLoanScope) auditActions() []string {
	actions := make([]string, 0, len(f.audits))
	for _, a := range f.audits {
		actions = append(actions, a.Action)
	}
	return actions
}
