package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
	pkgpg "github.com/Madhuarvind/ak-finserv/pkg/postgres"
)

type scannable interface {
	Scan(dest ...any) error
}

const loanColumns = `id, loan_number, customer_id, agent_id, principal, annual_rate_pct,
	interest_model, tenure_unit, installments, total_payable, pending_amount,
	status, start_date, version, created_at, updated_at`

func scanLoan(s scannable) (model.Loan, error) {
	var (
		id, customerID, agentID      uuid.UUID
		loanNumber                   string
		principal, annualRate        decimal.Decimal
		modelStr, unitStr, statusStr string
		installments, version        int
		totalPayable, pendingAmount  decimal.Decimal
		startDate                    *time.Time
		createdAt, updatedAt         time.Time
	)

	err := s.Scan(
		&id, &loanNumber, &customerID, &agentID, &principal, &annualRate,
		&modelStr, &unitStr, &installments, &totalPayable, &pendingAmount,
		&statusStr, &startDate, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}
	interestModel, err := valueobject.NewInterestModel(modelStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse interest model: %w", err)
	}
	tenureUnit, err := valueobject.NewTenureUnit(unitStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse tenure unit: %w", err)
	}

	var start time.Time
	if startDate != nil {
		start = *startDate
	}

	return model.ReconstructLoan(
		id, loanNumber, customerID, agentID,
		principal, annualRate, interestModel, tenureUnit, installments,
		totalPayable, pendingAmount, status, start,
		version, createdAt, updatedAt,
	), nil
}

func saveLoan(ctx context.Context, q pkgpg.Querier, loan model.Loan) error {
	var startDate *time.Time
	if !loan.StartDate().IsZero() {
		sd := loan.StartDate()
		startDate = &sd
	}

	query := `
		UPDATE loans SET
			total_payable  = $2,
			pending_amount = $3,
			status         = $4,
			start_date     = $5,
			version        = version + 1,
			updated_at     = $6
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		loan.ID(), loan.TotalPayable(), loan.PendingAmount(),
		loan.Status().String(), startDate, loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save loan: no row updated")
	}
	return nil
}

const entryColumns = `id, loan_id, emi_no, due_date, amount, principal_part,
	interest_part, schedule_balance, outstanding, status`

func scanEntry(s scannable) (model.EMIEntry, error) {
	var (
		e         model.EMIEntry
		statusStr string
	)
	err := s.Scan(
		&e.ID, &e.LoanID, &e.EmiNo, &e.DueDate, &e.Amount, &e.PrincipalPart,
		&e.InterestPart, &e.ScheduleBalance, &e.Outstanding, &statusStr,
	)
	if err != nil {
		return model.EMIEntry{}, fmt.Errorf("scan EMI entry: %w", err)
	}
	e.Status, err = valueobject.NewEMIStatus(statusStr)
	if err != nil {
		return model.EMIEntry{}, fmt.Errorf("parse EMI status: %w", err)
	}
	return e, nil
}

const collectionColumns = `id, loan_id, agent_id, line_id, amount, channel, lat, lng,
	captured_at, status, flag_reasons, risk_score, auto_approved, reviewer_id,
	remarks, created_at, updated_at`

func scanCollection(s scannable) (model.CollectionEvent, error) {
	var (
		id, loanID, agentID  uuid.UUID
		lineID               *uuid.UUID
		amount               decimal.Decimal
		channelStr           string
		lat, lng             *float64
		capturedAt           time.Time
		statusStr            string
		reasonsJSON          []byte
		riskScore            *float64
		autoApproved         bool
		reviewerID           *uuid.UUID
		remarks              string
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &loanID, &agentID, &lineID, &amount, &channelStr, &lat, &lng,
		&capturedAt, &statusStr, &reasonsJSON, &riskScore, &autoApproved,
		&reviewerID, &remarks, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.CollectionEvent{}, fmt.Errorf("scan collection: %w", err)
	}

	status, err := valueobject.NewCollectionStatus(statusStr)
	if err != nil {
		return model.CollectionEvent{}, fmt.Errorf("parse collection status: %w", err)
	}
	channel, err := valueobject.NewPaymentChannel(channelStr)
	if err != nil {
		return model.CollectionEvent{}, fmt.Errorf("parse payment channel: %w", err)
	}

	var reasons []string
	if len(reasonsJSON) > 0 {
		if err := json.Unmarshal(reasonsJSON, &reasons); err != nil {
			return model.CollectionEvent{}, fmt.Errorf("unmarshal flag reasons: %w", err)
		}
	}

	var reviewer uuid.UUID
	if reviewerID != nil {
		reviewer = *reviewerID
	}
	var line uuid.UUID
	if lineID != nil {
		line = *lineID
	}
	var location valueobject.GeoPoint
	hasLocation := lat != nil && lng != nil
	if hasLocation {
		location = valueobject.GeoPoint{Lat: *lat, Lng: *lng}
	}

	return model.ReconstructCollectionEvent(
		id, loanID, agentID, line, amount, channel,
		location, hasLocation,
		capturedAt, status, reasons, riskScore, autoApproved,
		reviewer, remarks, createdAt, updatedAt,
	), nil
}

func insertCollection(ctx context.Context, q pkgpg.Querier, c model.CollectionEvent) error {
	reasonsJSON, err := json.Marshal(c.FlagReasons())
	if err != nil {
		return fmt.Errorf("marshal flag reasons: %w", err)
	}

	var reviewerID *uuid.UUID
	if c.ReviewerID() != uuid.Nil {
		rid := c.ReviewerID()
		reviewerID = &rid
	}
	var lineID *uuid.UUID
	if c.LineID() != uuid.Nil {
		lid := c.LineID()
		lineID = &lid
	}
	var lat, lng *float64
	if point, ok := c.Location(); ok {
		la, ln := point.Lat, point.Lng
		lat, lng = &la, &ln
	}

	query := `
		INSERT INTO collection_events (id, loan_id, agent_id, line_id, amount, channel, lat, lng,
			captured_at, status, flag_reasons, risk_score, auto_approved, reviewer_id,
			remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = q.Exec(ctx, query,
		c.ID(), c.LoanID(), c.AgentID(), lineID, c.Amount(), c.Channel().String(),
		lat, lng, c.CapturedAt(), c.Status().String(),
		reasonsJSON, c.RiskScore(), c.AutoApproved(), reviewerID,
		c.Remarks(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func appendAudit(ctx context.Context, q pkgpg.Querier, rec model.AuditRecord) error {
	var collectionID *uuid.UUID
	if rec.CollectionID != uuid.Nil {
		cid := rec.CollectionID
		collectionID = &cid
	}

	query := `
		INSERT INTO loan_audit_logs (id, loan_id, collection_id, actor_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		rec.ID, rec.LoanID, collectionID, rec.ActorID, rec.Action, rec.Details, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}
