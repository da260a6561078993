package domain

import "time"

// Contribution is an immutable record of one accepted payment toward a
// campaign. Records are append-only; the sum of a campaign's contributions
// always equals its CurrentAmount.
type Contribution struct {
	ID            string
	CampaignID    string
	ContributorID string
	Amount        int64
	CreatedAt     time.Time
}
