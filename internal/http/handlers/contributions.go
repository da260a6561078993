package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type contributionRequest struct {
	CampaignID string `json:"campaign_id"`
	Amount     int64  `json:"amount"`
}

type contributionDTO struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	ContributorID string    `json:"contributor_id"`
	Amount        int64     `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func contributionToDTO(c *domain.Contribution) contributionDTO {
	return contributionDTO{
		ID:            c.ID,
		CampaignID:    c.CampaignID,
		ContributorID: c.ContributorID,
		Amount:        c.Amount,
		CreatedAt:     c.CreatedAt,
	}
}

// ContributionsCreate applies a contribution to a campaign. The heavy
// lifting, including the atomic goal check, happens in the ledger; a non-JSON
// or non-integer amount never reaches it.
func (a *App) ContributionsCreate(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "amount" {
			a.error(w, http.StatusBadRequest, "invalid_amount", "amount must be a whole number of minor units")
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.CampaignID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "campaign_id is required")
		return
	}

	contribution, err := a.Ledger.Contribute(r.Context(), req.CampaignID, a.currentUserID(r), req.Amount)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, contributionToDTO(contribution))
}

func (a *App) ContributionsList(w http.ResponseWriter, r *http.Request) {
	contributions, err := a.Ledger.ListContributions(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]contributionDTO, 0, len(contributions))
	for i := range contributions {
		items = append(items, contributionToDTO(&contributions[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
