package account

import (
	"time"

	"adsmanager/internal/domain/campaign"
)

// ManagedAccount links a local user to a Google identity whose delegated
// tokens are used for Google Ads calls. AdsAccountID is the customer the
// user picked among the ones reachable with those tokens.
type ManagedAccount struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_managed_user_google" json:"userId"`
	ManagedGoogleID string    `gorm:"size:255;not null;uniqueIndex:idx_managed_user_google" json:"managedGoogleId"`
	ManagedEmail    string    `gorm:"size:320;not null" json:"managedEmail"`
	AccessToken     string    `gorm:"type:text" json:"-"`
	RefreshToken    string    `gorm:"type:text" json:"-"`
	AdsAccountID    *string   `gorm:"size:32" json:"adsAccountId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Campaigns []campaign.Campaign `gorm:"constraint:OnDelete:CASCADE" json:"campaigns,omitempty"`
}

// HasAdsAccount reports whether an ads customer has been selected.
func (a *ManagedAccount) HasAdsAccount() bool {
	return a.AdsAccountID != nil && *a.AdsAccountID != ""
}

// Tokens are the delegated OAuth credentials stored with a linkage.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// SelectAdsAccountRequest selects which ads customer a managed account operates on.
type SelectAdsAccountRequest struct {
	CustomerID string `json:"customerId"`
}
