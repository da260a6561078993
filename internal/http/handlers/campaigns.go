package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
)

type campaignCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goal_amount"`
}

type campaignUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type campaignDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	GoalAmount    int64     `json:"goal_amount"`
	CurrentAmount int64     `json:"current_amount"`
	CreatorID     string    `json:"creator_id"`
	Fulfilled     bool      `json:"fulfilled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func campaignToDTO(c *domain.Campaign) campaignDTO {
	return campaignDTO{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		GoalAmount:    c.GoalAmount,
		CurrentAmount: c.CurrentAmount,
		CreatorID:     c.CreatorID,
		Fulfilled:     c.Fulfilled(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req campaignCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" || req.Description == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title and description are required")
		return
	}
	if req.GoalAmount <= 0 {
		a.error(w, http.StatusBadRequest, "invalid_amount", "goal_amount must be a positive value")
		return
	}

	campaign := &domain.Campaign{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		CreatorID:   a.currentUserID(r),
	}
	if err := a.Campaigns.Create(r.Context(), campaign); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, campaignToDTO(campaign))
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Campaigns.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]campaignDTO, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, campaignToDTO(&campaigns[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, campaignToDTO(campaign))
}

// CampaignsUpdate edits title and description. The funding goal is fixed at
// creation and the running total belongs to the ledger, so neither can be
// changed here.
func (a *App) CampaignsUpdate(w http.ResponseWriter, r *http.Request) {
	var req campaignUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" || req.Description == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title and description are required")
		return
	}

	campaign, err := a.Campaigns.UpdateMetadata(r.Context(), chi.URLParam(r, "id"), req.Title, req.Description)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, campaignToDTO(campaign))
}

func (a *App) CampaignsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Campaigns.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"message": "campaign deleted"})
}
