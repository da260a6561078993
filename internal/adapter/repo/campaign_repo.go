package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// CampaignRepositoryPG implements the campaign directory on PostgreSQL.
// It owns titles, descriptions and campaign creation; current_amount is
// seeded to zero here and mutated only by the ledger repository.
type CampaignRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCampaignRepository creates a new CampaignRepositoryPG.
func NewCampaignRepository(sql infra.SQLExecutor) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{sql: sql}
}

// Create inserts a campaign with a zero running total.
func (r *CampaignRepositoryPG) Create(ctx context.Context, campaign *domain.Campaign) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertCampaign,
		campaign.ID, campaign.Title, campaign.Description, campaign.GoalAmount, campaign.CreatorID)
	if err := row.Scan(&campaign.CreatedAt, &campaign.UpdatedAt); err != nil {
		return storeErr(err)
	}
	campaign.CurrentAmount = 0
	return nil
}

// GetByID fetches a campaign by id.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return scanCampaign(r.sql.QueryRow(ctx, sqlinline.QSelectCampaignByID, id))
}

// List returns all campaigns ordered by creation time.
func (r *CampaignRepositoryPG) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCampaigns)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, storeErr(err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

// UpdateMetadata edits title and description. Goal and running total are not
// touched by the directory.
func (r *CampaignRepositoryPG) UpdateMetadata(ctx context.Context, id, title, description string) (*domain.Campaign, error) {
	return scanCampaign(r.sql.QueryRow(ctx, sqlinline.QUpdateCampaignMetadata, id, title, description))
}

// Delete removes a campaign only when it holds no funds and no contribution
// records. A funded campaign keeps its audit trail and the call fails with
// domain.ErrCampaignFunded.
func (r *CampaignRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteUnfundedCampaign, id)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrCampaignFunded
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, storeErr(err)
	}
	return &c, nil
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
