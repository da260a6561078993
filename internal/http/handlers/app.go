package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/ledger"
	"server/internal/middleware"
)

// App is the handler container. It exposes the funding ledger, the campaign
// directory and the identity provider to the HTTP layer.
type App struct {
	Ledger    *ledger.Ledger
	Campaigns domain.CampaignRepository
	Identity  *auth.Service
	Logger    zerolog.Logger
}

func NewApp(l *ledger.Ledger, campaigns domain.CampaignRepository, identity *auth.Service, logger zerolog.Logger) *App {
	return &App{Ledger: l, Campaigns: campaigns, Identity: identity, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// domainError maps ledger and directory errors onto HTTP responses. Every
// rejection keeps its own code: callers must be able to tell a goal
// rejection from a missing campaign.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", "amount must be a positive value")
	case errors.Is(err, domain.ErrGoalExceeded):
		a.error(w, http.StatusBadRequest, "goal_exceeded", "contribution exceeds goal")
	case errors.Is(err, domain.ErrCampaignNotFound):
		a.error(w, http.StatusNotFound, "campaign_not_found", "campaign not found")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrCampaignFunded):
		a.error(w, http.StatusConflict, "campaign_funded", "campaign has contributions and cannot be deleted")
	case errors.Is(err, domain.ErrEmailTaken):
		a.error(w, http.StatusBadRequest, "email_taken", "email already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		a.error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrStoreUnavailable):
		a.Logger.Error().Err(err).Msg("store unavailable")
		a.error(w, http.StatusServiceUnavailable, "store_unavailable", "storage temporarily unavailable")
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
