package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/domain"
)

// simpleRow adapts a scan function to pgx.Row. A nil scan function behaves
// like an empty result set.
type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type fakeSQL struct {
	execTag  pgconn.CommandTag
	execErr  error
	row      pgx.Row
	rows     pgx.Rows
	queryErr error
	queries  []string
}

func (f *fakeSQL) Exec(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, query)
	return f.execTag, f.execErr
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	f.queries = append(f.queries, query)
	if f.row == nil {
		return simpleRow{}
	}
	return f.row
}

func (f *fakeSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, query)
	return f.rows, f.queryErr
}

func campaignRow(c domain.Campaign) simpleRow {
	return simpleRow{scan: func(dest ...any) error {
		if len(dest) != 8 {
			return fmt.Errorf("unexpected scan args: %d", len(dest))
		}
		*dest[0].(*string) = c.ID
		*dest[1].(*string) = c.Title
		*dest[2].(*string) = c.Description
		*dest[3].(*int64) = c.GoalAmount
		*dest[4].(*int64) = c.CurrentAmount
		*dest[5].(*string) = c.CreatorID
		*dest[6].(*time.Time) = c.CreatedAt
		*dest[7].(*time.Time) = c.UpdatedAt
		return nil
	}}
}

func TestUserRepositoryCreateMapsUniqueViolation(t *testing.T) {
	sql := &fakeSQL{execErr: &pgconn.PgError{Code: "23505"}}
	repo := NewUserRepository(sql)

	err := repo.Create(context.Background(), &domain.User{ID: "u1", Email: "a@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("Create = %v, want ErrEmailTaken", err)
	}
}

func TestUserRepositoryCreateWrapsStoreFailure(t *testing.T) {
	sql := &fakeSQL{execErr: errors.New("connection refused")}
	repo := NewUserRepository(sql)

	err := repo.Create(context.Background(), &domain.User{ID: "u1"})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Create = %v, want ErrStoreUnavailable", err)
	}
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	repo := NewUserRepository(&fakeSQL{})

	_, err := repo.GetByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByEmail = %v, want ErrNotFound", err)
	}
}

func TestCampaignRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewCampaignRepository(&fakeSQL{})

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("GetByID = %v, want ErrCampaignNotFound", err)
	}
}

func TestCampaignRepositoryDeleteUnfunded(t *testing.T) {
	sql := &fakeSQL{execTag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewCampaignRepository(sql)

	if err := repo.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete = %v, want nil", err)
	}
}

func TestCampaignRepositoryDeleteFundedConflict(t *testing.T) {
	// The guarded delete matches nothing, but the campaign still exists:
	// it must be reported as funded, not missing.
	sql := &fakeSQL{
		execTag: pgconn.NewCommandTag("DELETE 0"),
		row:     campaignRow(domain.Campaign{ID: "c1", GoalAmount: 100, CurrentAmount: 40}),
	}
	repo := NewCampaignRepository(sql)

	if err := repo.Delete(context.Background(), "c1"); !errors.Is(err, domain.ErrCampaignFunded) {
		t.Fatalf("Delete = %v, want ErrCampaignFunded", err)
	}
}

func TestCampaignRepositoryDeleteMissing(t *testing.T) {
	sql := &fakeSQL{execTag: pgconn.NewCommandTag("DELETE 0")}
	repo := NewCampaignRepository(sql)

	if err := repo.Delete(context.Background(), "c1"); !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("Delete = %v, want ErrCampaignNotFound", err)
	}
}
