package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/ledger"
	"server/internal/middleware"
)

func newTestApp(t *testing.T) (*App, *ledger.MemStore) {
	t.Helper()
	store := ledger.NewMemStore()
	identity := auth.NewService(store.Users(), "test-secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
	return NewApp(ledger.New(store, zerolog.Nop()), store, identity, zerolog.Nop()), store
}

func seedCampaign(t *testing.T, store *ledger.MemStore, goal int64) string {
	t.Helper()
	c := &domain.Campaign{ID: uuid.NewString(), Title: "well", Description: "water", GoalAmount: goal, CreatorID: uuid.NewString()}
	if err := store.Create(context.Background(), c); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c.ID
}

func authedRequest(method, target, body, userID string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error
}

func TestContributionsCreateAccepted(t *testing.T) {
	app, store := newTestApp(t)
	id := seedCampaign(t, store, 100)

	rr := httptest.NewRecorder()
	req := authedRequest("POST", "/api/contributions", `{"campaign_id":"`+id+`","amount":60}`, "user-1")
	app.ContributionsCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var resp contributionDTO
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" || resp.CreatedAt.IsZero() {
		t.Fatalf("response missing id or timestamp: %+v", resp)
	}
	if resp.Amount != 60 || resp.CampaignID != id || resp.ContributorID != "user-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	campaign, _ := store.GetCampaign(context.Background(), id)
	if campaign.CurrentAmount != 60 {
		t.Fatalf("CurrentAmount = %d, want 60", campaign.CurrentAmount)
	}
}

func TestContributionsCreateGoalExceeded(t *testing.T) {
	app, store := newTestApp(t)
	id := seedCampaign(t, store, 100)

	rr := httptest.NewRecorder()
	app.ContributionsCreate(rr, authedRequest("POST", "/api/contributions", `{"campaign_id":"`+id+`","amount":60}`, "u1"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("first contribution status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	app.ContributionsCreate(rr, authedRequest("POST", "/api/contributions", `{"campaign_id":"`+id+`","amount":50}`, "u2"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if code := decodeError(t, rr); code != "goal_exceeded" {
		t.Fatalf("error code = %q, want goal_exceeded", code)
	}
}

func TestContributionsCreateRejections(t *testing.T) {
	app, store := newTestApp(t)
	id := seedCampaign(t, store, 100)

	tests := []struct {
		name     string
		body     string
		userID   string
		wantCode int
		wantErr  string
	}{
		{
			name:     "negative amount",
			body:     `{"campaign_id":"` + id + `","amount":-5}`,
			userID:   "u1",
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid_amount",
		},
		{
			name:     "non-numeric amount",
			body:     `{"campaign_id":"` + id + `","amount":"lots"}`,
			userID:   "u1",
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid_amount",
		},
		{
			name:     "malformed json",
			body:     `{"campaign_id":`,
			userID:   "u1",
			wantCode: http.StatusBadRequest,
			wantErr:  "bad_request",
		},
		{
			name:     "non-string campaign id",
			body:     `{"campaign_id":7,"amount":10}`,
			userID:   "u1",
			wantCode: http.StatusBadRequest,
			wantErr:  "bad_request",
		},
		{
			name:     "unknown campaign",
			body:     `{"campaign_id":"` + uuid.NewString() + `","amount":10}`,
			userID:   "u1",
			wantCode: http.StatusNotFound,
			wantErr:  "campaign_not_found",
		},
		{
			name:     "missing campaign id",
			body:     `{"amount":10}`,
			userID:   "u1",
			wantCode: http.StatusBadRequest,
			wantErr:  "bad_request",
		},
		{
			name:     "missing caller identity",
			body:     `{"campaign_id":"` + id + `","amount":10}`,
			userID:   "",
			wantCode: http.StatusUnauthorized,
			wantErr:  "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.ContributionsCreate(rr, authedRequest("POST", "/api/contributions", tt.body, tt.userID))
			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.wantCode, rr.Body.String())
			}
			if code := decodeError(t, rr); code != tt.wantErr {
				t.Fatalf("error code = %q, want %q", code, tt.wantErr)
			}
		})
	}

	campaign, _ := store.GetCampaign(context.Background(), id)
	if campaign.CurrentAmount != 0 {
		t.Fatalf("rejected requests mutated CurrentAmount: %d", campaign.CurrentAmount)
	}
}

func TestContributionsList(t *testing.T) {
	app, store := newTestApp(t)
	id := seedCampaign(t, store, 100)

	for _, amt := range []int64{10, 20} {
		rr := httptest.NewRecorder()
		app.ContributionsCreate(rr, authedRequest("POST", "/api/contributions", `{"campaign_id":"`+id+`","amount":`+jsonInt(amt)+`}`, "u1"))
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed contribution status = %d", rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest("GET", "/api/contributions/"+id, nil), "campaignID", id)
	app.ContributionsList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload struct {
		Items []contributionDTO `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 2 || payload.Items[0].Amount != 10 || payload.Items[1].Amount != 20 {
		t.Fatalf("unexpected items: %+v", payload.Items)
	}
}

func TestContributionsListUnknownCampaign(t *testing.T) {
	app, _ := newTestApp(t)

	rr := httptest.NewRecorder()
	missing := uuid.NewString()
	req := withURLParam(httptest.NewRequest("GET", "/api/contributions/"+missing, nil), "campaignID", missing)
	app.ContributionsList(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if code := decodeError(t, rr); code != "campaign_not_found" {
		t.Fatalf("error code = %q, want campaign_not_found", code)
	}
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
