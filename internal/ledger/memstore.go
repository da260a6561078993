package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

// MemStore is an in-memory implementation of the ledger store and the
// campaign/user repositories. It backs development mode and tests.
//
// Concurrency model: the outer RWMutex only guards the maps; every campaign
// carries its own mutex so the read-check-increment sequence is serialized
// per campaign and two campaigns never contend with each other.
type MemStore struct {
	mu        sync.RWMutex
	campaigns map[string]*memCampaign
	users     map[string]*domain.User
	emails    map[string]string
}

type memCampaign struct {
	mu      sync.Mutex
	c       domain.Campaign
	log     []domain.Contribution
	deleted bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		campaigns: make(map[string]*memCampaign),
		users:     make(map[string]*domain.User),
		emails:    make(map[string]string),
	}
}

func (s *MemStore) campaign(id string) (*memCampaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mc, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	return mc, nil
}

// GetCampaign returns a snapshot of the campaign. Reads may be slightly
// stale relative to an in-flight atomic apply.
func (s *MemStore) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	mc, err := s.campaign(id)
	if err != nil {
		return nil, err
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.deleted {
		return nil, domain.ErrCampaignNotFound
	}
	cp := mc.c
	return &cp, nil
}

// AtomicApplyContribution performs the check-and-increment and the log append
// inside the campaign's critical section, so either both happen or neither.
func (s *MemStore) AtomicApplyContribution(_ context.Context, campaignID, contributorID string, amount int64) (*domain.Contribution, error) {
	mc, err := s.campaign(campaignID)
	if err != nil {
		return nil, err
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	// The pointer was resolved outside mc.mu, so a concurrent Delete may have
	// removed the campaign in between. Without this re-check the contribution
	// would land on an orphaned struct and vanish from every later read.
	if mc.deleted {
		return nil, domain.ErrCampaignNotFound
	}
	if err := ValidateContribution(&mc.c, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if n := len(mc.log); n > 0 && now.Before(mc.log[n-1].CreatedAt) {
		now = mc.log[n-1].CreatedAt
	}

	contribution := domain.Contribution{
		ID:            uuid.NewString(),
		CampaignID:    campaignID,
		ContributorID: contributorID,
		Amount:        amount,
		CreatedAt:     now,
	}
	mc.c.CurrentAmount += amount
	mc.c.UpdatedAt = now
	mc.log = append(mc.log, contribution)

	cp := contribution
	return &cp, nil
}

// ListContributions returns a copy of the campaign's log in insertion order.
func (s *MemStore) ListContributions(_ context.Context, campaignID string) ([]domain.Contribution, error) {
	mc, err := s.campaign(campaignID)
	if err != nil {
		return nil, err
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.deleted {
		return nil, domain.ErrCampaignNotFound
	}
	out := make([]domain.Contribution, len(mc.log))
	copy(out, mc.log)
	return out, nil
}

// Create registers a new campaign with a zero running total.
func (s *MemStore) Create(_ context.Context, campaign *domain.Campaign) error {
	now := time.Now().UTC()
	campaign.CurrentAmount = 0
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[campaign.ID] = &memCampaign{c: *campaign}
	return nil
}

// GetByID implements the campaign directory lookup.
func (s *MemStore) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.GetCampaign(ctx, id)
}

// List returns all campaigns ordered by creation time.
func (s *MemStore) List(_ context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	out := make([]domain.Campaign, 0, len(s.campaigns))
	for _, mc := range s.campaigns {
		mc.mu.Lock()
		out = append(out, mc.c)
		mc.mu.Unlock()
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateMetadata edits title and description only. GoalAmount and
// CurrentAmount are out of the directory's reach.
func (s *MemStore) UpdateMetadata(_ context.Context, id, title, description string) (*domain.Campaign, error) {
	mc, err := s.campaign(id)
	if err != nil {
		return nil, err
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.deleted {
		return nil, domain.ErrCampaignNotFound
	}
	mc.c.Title = title
	mc.c.Description = description
	mc.c.UpdatedAt = time.Now().UTC()
	cp := mc.c
	return &cp, nil
}

// Delete removes an unfunded campaign. Campaigns with recorded contributions
// keep their audit trail and fail with ErrCampaignFunded.
func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mc, ok := s.campaigns[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	// The funded-check, the tombstone and the map removal happen in one
	// critical section, so an apply that already resolved the pointer finds
	// either the live campaign or the tombstone, never a silent orphan.
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.c.CurrentAmount > 0 || len(mc.log) > 0 {
		return domain.ErrCampaignFunded
	}
	mc.deleted = true
	delete(s.campaigns, id)
	return nil
}

// CreateUser stores a new user, enforcing email uniqueness.
func (s *MemStore) CreateUser(_ context.Context, user *domain.User) error {
	email := strings.ToLower(user.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[email]; ok {
		return domain.ErrEmailTaken
	}
	cp := *user
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.users[cp.ID] = &cp
	s.emails[email] = cp.ID
	return nil
}

// GetUserByID looks a user up by id.
func (s *MemStore) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// GetUserByEmail looks a user up by normalized email.
func (s *MemStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

// Users adapts the store to domain.UserRepository.
func (s *MemStore) Users() domain.UserRepository { return memUsers{s} }

type memUsers struct{ s *MemStore }

func (m memUsers) Create(ctx context.Context, user *domain.User) error {
	return m.s.CreateUser(ctx, user)
}

func (m memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.s.GetUserByID(ctx, id)
}

func (m memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.s.GetUserByEmail(ctx, email)
}

var (
	_ domain.LedgerStore        = (*MemStore)(nil)
	_ domain.CampaignRepository = (*MemStore)(nil)
	_ domain.UserRepository     = memUsers{}
)
