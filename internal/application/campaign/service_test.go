package campaign

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/oauth2"

	"adsmanager/internal/domain/account"
	domainauth "adsmanager/internal/domain/auth"
	domain "adsmanager/internal/domain/campaign"
	"adsmanager/internal/domain/googleads"
	"adsmanager/internal/domain/user"
	"adsmanager/internal/infrastructure/database/databasetest"
	"adsmanager/internal/infrastructure/repository"
)

type fakeProvider struct{}

func (fakeProvider) AuthCodeURL(callbackURL, state string) string { return "" }

func (fakeProvider) Exchange(ctx context.Context, code, callbackURL string) (*domainauth.GoogleTokens, error) {
	return nil, domainauth.ErrInvalidTokens
}

func (fakeProvider) TokenSource(ctx context.Context, tokens account.Tokens) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tokens.AccessToken})
}

type fakeAds struct {
	nextID    string
	createErr error
	removeErr error
	created   []googleads.CampaignSpec
	removed   []string
}

func (f *fakeAds) ListAccessibleAccounts(ctx context.Context, ts oauth2.TokenSource) ([]googleads.AdsAccount, error) {
	return nil, nil
}

func (f *fakeAds) CheckAccess(ctx context.Context, ts oauth2.TokenSource, customerID string) (bool, error) {
	return true, nil
}

func (f *fakeAds) CreateCampaign(ctx context.Context, ts oauth2.TokenSource, customerID string, spec googleads.CampaignSpec) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, spec)
	return f.nextID, nil
}

func (f *fakeAds) RemoveCampaign(ctx context.Context, ts oauth2.TokenSource, customerID, campaignID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, customerID+"/"+campaignID)
	return nil
}

type fixture struct {
	svc       Service
	ads       *fakeAds
	accounts  account.Repository
	campaigns domain.Repository
	owner     *user.User
	account   *account.ManagedAccount
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := databasetest.New(t)
	users := repository.NewUserRepository(db)
	accounts := repository.NewManagedAccountRepository(db)
	campaigns := repository.NewCampaignRepository(db)

	owner := &user.User{Email: "owner@example.com", Name: "Owner"}
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("create user: %v", err)
	}
	a := &account.ManagedAccount{UserID: owner.ID, ManagedGoogleID: "sub", ManagedEmail: "ads@example.com", AccessToken: "at"}
	if err := accounts.Connect(ctx, a); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := accounts.SetAdsAccount(ctx, a.ID, "1234567890"); err != nil {
		t.Fatalf("set ads account: %v", err)
	}

	ads := &fakeAds{nextID: "777"}
	return &fixture{
		svc: NewService(Deps{
			Accounts:  accounts,
			Campaigns: campaigns,
			Provider:  fakeProvider{},
			Ads:       ads,
		}),
		ads:       ads,
		accounts:  accounts,
		campaigns: campaigns,
		owner:     owner,
		account:   a,
	}
}

func validRequest() domain.CreateRequest {
	return domain.CreateRequest{Name: "Spring", Status: "ENABLED", Budget: 20, StartDate: "2025-03-01", EndDate: "2025-03-31"}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.owner.ID, f.account.ID, validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.CampaignID != "777" || c.ManagedAccountID != f.account.ID || c.Status != domain.StatusEnabled {
		t.Fatalf("campaign = %+v", c)
	}
	if len(f.ads.created) != 1 || f.ads.created[0].Budget != 20 {
		t.Fatalf("remote creates = %+v", f.ads.created)
	}

	list, err := f.svc.List(ctx, f.owner.ID, f.account.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("List() = %v, %v", list, err)
	}
}

func TestCreateRejects(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture) (uint, uint, domain.CreateRequest)
		want  error
	}{
		{
			name: "invalid budget",
			setup: func(t *testing.T, f *fixture) (uint, uint, domain.CreateRequest) {
				req := validRequest()
				req.Budget = 0
				return f.owner.ID, f.account.ID, req
			},
			want: domain.ErrInvalidBudget,
		},
		{
			name: "budget above maximum",
			setup: func(t *testing.T, f *fixture) (uint, uint, domain.CreateRequest) {
				req := validRequest()
				req.Budget = domain.MaxBudget * 10
				return f.owner.ID, f.account.ID, req
			},
			want: domain.ErrInvalidBudget,
		},
		{
			name: "not owned",
			setup: func(t *testing.T, f *fixture) (uint, uint, domain.CreateRequest) {
				return f.owner.ID + 1, f.account.ID, validRequest()
			},
			want: account.ErrAccountNotFound,
		},
		{
			name: "no ads account",
			setup: func(t *testing.T, f *fixture) (uint, uint, domain.CreateRequest) {
				a := &account.ManagedAccount{UserID: f.owner.ID, ManagedGoogleID: "other", ManagedEmail: "o@example.com"}
				if err := f.accounts.Connect(context.Background(), a); err != nil {
					t.Fatalf("connect: %v", err)
				}
				return f.owner.ID, a.ID, validRequest()
			},
			want: account.ErrNoAdsAccount,
		},
		{
			name: "google failure",
			setup: func(t *testing.T, f *fixture) (uint, uint, domain.CreateRequest) {
				f.ads.createErr = errors.New("quota")
				return f.owner.ID, f.account.ID, validRequest()
			},
			want: account.ErrGoogleUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			userID, accountID, req := tt.setup(t, f)
			if _, err := f.svc.Create(context.Background(), userID, accountID, req); !errors.Is(err, tt.want) {
				t.Fatalf("Create() error = %v, want %v", err, tt.want)
			}
			if len(f.ads.created) != 0 {
				t.Fatalf("remote creates = %d, want 0", len(f.ads.created))
			}
			list, _ := f.campaigns.ListByAccount(context.Background(), accountID)
			if len(list) != 0 {
				t.Fatalf("campaigns = %d, want 0", len(list))
			}
		})
	}
}

func TestCreateLocalFailureKeepsRemote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.owner.ID, f.account.ID, validRequest()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// Google hands back the same id; the local insert then collides.
	if _, err := f.svc.Create(ctx, f.owner.ID, f.account.ID, validRequest()); !errors.Is(err, domain.ErrCampaignExists) {
		t.Fatalf("Create() error = %v, want ErrCampaignExists", err)
	}
	if len(f.ads.created) != 2 || len(f.ads.removed) != 0 {
		t.Fatalf("remote calls = %d creates, %d removes", len(f.ads.created), len(f.ads.removed))
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.owner.ID, f.account.ID, validRequest()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := f.svc.Delete(ctx, f.owner.ID+1, f.account.ID, "777"); !errors.Is(err, account.ErrAccountNotFound) {
		t.Fatalf("Delete(stranger) error = %v, want ErrAccountNotFound", err)
	}
	if err := f.svc.Delete(ctx, f.owner.ID, f.account.ID, "000"); !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("Delete(missing) error = %v, want ErrCampaignNotFound", err)
	}

	f.ads.removeErr = errors.New("boom")
	if err := f.svc.Delete(ctx, f.owner.ID, f.account.ID, "777"); !errors.Is(err, account.ErrGoogleUnavailable) {
		t.Fatalf("Delete(remote failure) error = %v, want ErrGoogleUnavailable", err)
	}
	if _, err := f.campaigns.GetByExternalID(ctx, f.account.ID, "777"); err != nil {
		t.Fatalf("campaign removed locally after remote failure: %v", err)
	}

	f.ads.removeErr = nil
	if err := f.svc.Delete(ctx, f.owner.ID, f.account.ID, "777"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(f.ads.removed) != 1 || f.ads.removed[0] != "1234567890/777" {
		t.Fatalf("removed = %v", f.ads.removed)
	}
	if _, err := f.campaigns.GetByExternalID(ctx, f.account.ID, "777"); !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("GetByExternalID() error = %v, want ErrCampaignNotFound", err)
	}
}
