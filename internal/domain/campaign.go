package domain

import "time"

// Campaign is a funding goal with a running total of accepted contributions.
// Amounts are stored in minor currency units to avoid floating point drift.
type Campaign struct {
	ID            string
	Title         string
	Description   string
	GoalAmount    int64
	CurrentAmount int64
	CreatorID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Remaining returns how much can still be contributed before the goal is met.
func (c *Campaign) Remaining() int64 {
	return c.GoalAmount - c.CurrentAmount
}

// Fulfilled reports whether the campaign reached its goal. The state is
// derived from CurrentAmount so it can never drift from the ledger.
func (c *Campaign) Fulfilled() bool {
	return c.CurrentAmount == c.GoalAmount
}
