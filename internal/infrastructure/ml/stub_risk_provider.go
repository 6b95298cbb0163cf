package ml

import (
	"context"
	"log/slog"

	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

// StubRiskProvider implements port.RiskSignalProvider as a stub for
// development. In production this would call an external scoring service;
// the deterministic guard rules carry the actual gating either way.
type StubRiskProvider struct {
	logger *slog.Logger
}

// NewStubRiskProvider creates a new stub risk provider.
func NewStubRiskProvider(logger *slog.Logger) *StubRiskProvider {
	return &StubRiskProvider{logger: logger}
}

// Score returns a neutral advisory score.
func (p *StubRiskProvider) Score(ctx context.Context, c model.CollectionEvent) (float64, error) {
	p.logger.Debug("stub risk score requested",
		slog.String("collection_id", c.ID().String()),
	)
	return 0.5, nil
}

var _ port.RiskSignalProvider = (*StubRiskProvider)(nil)
