package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
	"server/internal/sqlinline"
)

// LedgerRepositoryPG implements domain.LedgerStore on PostgreSQL. Unlike the
// other repositories it holds the pool directly because the atomic apply
// needs a transaction.
type LedgerRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepositoryPG.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepositoryPG {
	return &LedgerRepositoryPG{pool: pool}
}

// GetCampaign fetches the campaign's committed state.
func (r *LedgerRepositoryPG) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, sqlinline.QSelectCampaignByID, id))
}

// AtomicApplyContribution runs the guarded increment and the contribution
// insert in one transaction. The UPDATE's WHERE clause re-checks the goal
// against committed state, so concurrent applies for the same campaign
// serialize on the row lock and a lost update is impossible. On any failure
// the transaction rolls back and nothing is recorded.
func (r *LedgerRepositoryPG) AtomicApplyContribution(ctx context.Context, campaignID, contributorID string, amount int64) (*domain.Contribution, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	defer tx.Rollback(ctx)

	var current int64
	err = tx.QueryRow(ctx, sqlinline.QApplyContribution, campaignID, amount).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.rejectReason(ctx, tx, campaignID)
	}
	if err != nil {
		return nil, storeErr(err)
	}

	contribution := domain.Contribution{
		ID:            uuid.NewString(),
		CampaignID:    campaignID,
		ContributorID: contributorID,
		Amount:        amount,
	}
	err = tx.QueryRow(ctx, sqlinline.QInsertContribution,
		contribution.ID, campaignID, contributorID, amount).Scan(&contribution.CreatedAt)
	if err != nil {
		return nil, storeErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr(err)
	}
	return &contribution, nil
}

// rejectReason distinguishes a missing campaign from a goal rejection after
// the guarded update matched no row. It reads within the same transaction.
func (r *LedgerRepositoryPG) rejectReason(ctx context.Context, tx pgx.Tx, campaignID string) error {
	var goal, current int64
	err := tx.QueryRow(ctx, sqlinline.QSelectCampaignFunds, campaignID).Scan(&goal, &current)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCampaignNotFound
	}
	if err != nil {
		return storeErr(err)
	}
	return domain.ErrGoalExceeded
}

// ListContributions returns the campaign's log in insertion order.
func (r *LedgerRepositoryPG) ListContributions(ctx context.Context, campaignID string) ([]domain.Contribution, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListContributions, campaignID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var items []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.ID, &c.CampaignID, &c.ContributorID, &c.Amount, &c.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

var _ domain.LedgerStore = (*LedgerRepositoryPG)(nil)
