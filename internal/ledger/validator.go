package ledger

import "server/internal/domain"

// ValidateAmount checks that a proposed contribution amount is a valid
// positive value.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

// ValidateContribution applies the contribution rules in order: amount
// validity, campaign existence, then the goal guard. It is pure and never
// mutates the campaign. The first failing rule wins.
//
// The goal guard is written against Remaining rather than the naive
// current+amount sum so a huge proposed amount cannot overflow int64.
func ValidateContribution(campaign *domain.Campaign, amount int64) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if campaign == nil {
		return domain.ErrCampaignNotFound
	}
	if amount > campaign.Remaining() {
		return domain.ErrGoalExceeded
	}
	return nil
}
