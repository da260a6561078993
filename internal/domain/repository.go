package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// CampaignRepository is the campaign directory: it owns descriptive metadata
// and campaign creation, but never writes CurrentAmount.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	UpdateMetadata(ctx context.Context, id, title, description string) (*Campaign, error)
	// Delete removes a campaign. It fails with ErrCampaignFunded when the
	// campaign has any recorded contribution or a nonzero running total.
	Delete(ctx context.Context, id string) error
}

// LedgerStore is the durable side of the funding ledger. CurrentAmount is
// mutated through AtomicApplyContribution and nowhere else.
type LedgerStore interface {
	GetCampaign(ctx context.Context, id string) (*Campaign, error)

	// AtomicApplyContribution re-reads the campaign, re-checks the goal
	// against the freshest committed state, increments CurrentAmount and
	// appends the contribution record, all as one indivisible unit relative
	// to concurrent calls for the same campaign. On rejection nothing is
	// written.
	AtomicApplyContribution(ctx context.Context, campaignID, contributorID string, amount int64) (*Contribution, error)

	// ListContributions returns the campaign's contributions in insertion
	// order. Each call is a fresh read.
	ListContributions(ctx context.Context, campaignID string) ([]Contribution, error)
}
