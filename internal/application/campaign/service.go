package campaign

import (
	"context"
	"log"

	"golang.org/x/oauth2"

	"adsmanager/internal/domain/account"
	domainauth "adsmanager/internal/domain/auth"
	domain "adsmanager/internal/domain/campaign"
	"adsmanager/internal/domain/googleads"
	"adsmanager/internal/infrastructure/events"
)

// Service defines the campaign service interface
type Service interface {
	List(ctx context.Context, userID, accountID uint) ([]domain.Campaign, error)
	Create(ctx context.Context, userID, accountID uint, req domain.CreateRequest) (*domain.Campaign, error)
	Delete(ctx context.Context, userID, accountID uint, campaignID string) error
}

// Deps are the collaborators of the campaign service.
type Deps struct {
	Accounts  account.Repository
	Campaigns domain.Repository
	Provider  domainauth.OAuthProvider
	Ads       googleads.API
	Events    events.Publisher
}

type service struct {
	Deps
}

// NewService creates a new campaign service
func NewService(deps Deps) Service {
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	return &service{Deps: deps}
}

func (s *service) List(ctx context.Context, userID, accountID uint) ([]domain.Campaign, error) {
	if _, err := s.Accounts.GetForUser(ctx, userID, accountID); err != nil {
		return nil, err
	}
	return s.Campaigns.ListByAccount(ctx, accountID)
}

// Create creates the campaign in Google Ads, then records it locally. A
// failed local write is logged and returned; the remote campaign is kept.
func (s *service) Create(ctx context.Context, userID, accountID uint, req domain.CreateRequest) (*domain.Campaign, error) {
	v, err := req.Validate()
	if err != nil {
		return nil, err
	}

	a, err := s.adsAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	campaignID, err := s.Ads.CreateCampaign(ctx, s.tokenSource(ctx, a), *a.AdsAccountID, googleads.CampaignSpec{
		Name:      v.Name,
		Status:    v.Status,
		Budget:    v.Budget,
		StartDate: v.StartDate,
		EndDate:   v.EndDate,
	})
	if err != nil {
		log.Printf("[campaign] create in customer %s: %v", *a.AdsAccountID, err)
		return nil, account.ErrGoogleUnavailable
	}

	c := &domain.Campaign{
		ManagedAccountID: a.ID,
		CampaignID:       campaignID,
		Name:             v.Name,
		Status:           v.Status,
		Budget:           v.Budget,
		StartDate:        v.StartDate,
		EndDate:          v.EndDate,
	}
	if err := s.Campaigns.Create(ctx, c); err != nil {
		log.Printf("[campaign] campaign %s created in customer %s but not saved: %v", campaignID, *a.AdsAccountID, err)
		return nil, err
	}

	events.Emit(ctx, s.Events, events.CampaignCreated, c)
	return c, nil
}

func (s *service) Delete(ctx context.Context, userID, accountID uint, campaignID string) error {
	a, err := s.Accounts.GetForUser(ctx, userID, accountID)
	if err != nil {
		return err
	}
	c, err := s.Campaigns.GetByExternalID(ctx, a.ID, campaignID)
	if err != nil {
		return err
	}
	if !a.HasAdsAccount() {
		return account.ErrNoAdsAccount
	}
	if s.Provider == nil {
		return domainauth.ErrGoogleDisabled
	}

	if err := s.Ads.RemoveCampaign(ctx, s.tokenSource(ctx, a), *a.AdsAccountID, campaignID); err != nil {
		log.Printf("[campaign] remove %s from customer %s: %v", campaignID, *a.AdsAccountID, err)
		return account.ErrGoogleUnavailable
	}
	if err := s.Campaigns.Delete(ctx, c.ID); err != nil {
		return err
	}

	events.Emit(ctx, s.Events, events.CampaignDeleted, c)
	return nil
}

func (s *service) adsAccount(ctx context.Context, userID, accountID uint) (*account.ManagedAccount, error) {
	a, err := s.Accounts.GetForUser(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if !a.HasAdsAccount() {
		return nil, account.ErrNoAdsAccount
	}
	if s.Provider == nil {
		return nil, domainauth.ErrGoogleDisabled
	}
	return a, nil
}

func (s *service) tokenSource(ctx context.Context, a *account.ManagedAccount) oauth2.TokenSource {
	return s.Provider.TokenSource(ctx, account.Tokens{AccessToken: a.AccessToken, RefreshToken: a.RefreshToken})
}
