package googleads

import (
	"context"

	"golang.org/x/oauth2"
)

// API is the subset of the Google Ads API used by the application.
type API interface {
	ListAccessibleAccounts(ctx context.Context, ts oauth2.TokenSource) ([]AdsAccount, error)
	CheckAccess(ctx context.Context, ts oauth2.TokenSource, customerID string) (bool, error)
	CreateCampaign(ctx context.Context, ts oauth2.TokenSource, customerID string, spec CampaignSpec) (string, error)
	RemoveCampaign(ctx context.Context, ts oauth2.TokenSource, customerID, campaignID string) error
}
