// Package ledger implements the campaign funding ledger: validation and
// atomic application of contributions against a campaign's goal. The running
// total never exceeds the goal, even under concurrent requests, and every
// accepted contribution is recorded in an append-only log.
package ledger

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Ledger orchestrates contribution handling. The atomic check-and-apply is
// delegated to the store; the ledger never does its own read-then-write
// outside that boundary.
type Ledger struct {
	store  domain.LedgerStore
	logger zerolog.Logger
}

// New creates a funding ledger on top of the given store.
func New(store domain.LedgerStore, logger zerolog.Logger) *Ledger {
	return &Ledger{store: store, logger: logger}
}

// Contribute validates and applies a contribution for the authenticated
// contributor. On success the created contribution record (id and timestamp)
// is returned. Rejections come back as domain errors: ErrInvalidAmount,
// ErrCampaignNotFound or ErrGoalExceeded.
func (l *Ledger) Contribute(ctx context.Context, campaignID, contributorID string, amount int64) (*domain.Contribution, error) {
	if strings.TrimSpace(contributorID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	contribution, err := l.store.AtomicApplyContribution(ctx, campaignID, contributorID, amount)
	if err != nil {
		l.logger.Debug().Err(err).
			Str("campaign_id", campaignID).
			Int64("amount", amount).
			Msg("contribution rejected")
		return nil, err
	}

	l.logger.Info().
		Str("campaign_id", campaignID).
		Str("contribution_id", contribution.ID).
		Int64("amount", amount).
		Msg("contribution applied")
	return contribution, nil
}

// ListContributions returns the campaign's contribution log in insertion
// order. Unknown campaigns fail with ErrCampaignNotFound.
func (l *Ledger) ListContributions(ctx context.Context, campaignID string) ([]domain.Contribution, error) {
	if _, err := l.store.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	return l.store.ListContributions(ctx, campaignID)
}
