package campaign

import (
	"strings"
	"time"
)

// DateLayout is the wire format of campaign start and end dates.
const DateLayout = "2006-01-02"

// MaxBudget is the largest budget the decimal(10,2) budget column holds.
const MaxBudget = 99_999_999.99

// Status values accepted by Google Ads when creating a campaign.
const (
	StatusEnabled = "ENABLED"
	StatusPaused  = "PAUSED"
)

// Campaign mirrors a campaign created through the Google Ads API.
type Campaign struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ManagedAccountID uint      `gorm:"not null;uniqueIndex:idx_campaign_account_external" json:"managedAccountId"`
	CampaignID       string    `gorm:"size:64;not null;uniqueIndex:idx_campaign_account_external" json:"campaignId"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Status           string    `gorm:"size:32;not null" json:"status"`
	Budget           float64   `gorm:"type:decimal(10,2);not null" json:"budget"`
	StartDate        time.Time `gorm:"not null" json:"startDate"`
	EndDate          time.Time `gorm:"not null" json:"endDate"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateRequest represents the request to create a campaign
type CreateRequest struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Budget    float64 `json:"budget"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
}

// Validated is a CreateRequest after parsing and defaulting.
type Validated struct {
	Name      string
	Status    string
	Budget    float64
	StartDate time.Time
	EndDate   time.Time
}

// Validate checks the request and returns its parsed form.
func (r CreateRequest) Validate() (Validated, error) {
	v := Validated{
		Name:   strings.TrimSpace(r.Name),
		Status: strings.ToUpper(strings.TrimSpace(r.Status)),
		Budget: r.Budget,
	}
	if v.Name == "" {
		return v, ErrInvalidName
	}
	if !(v.Budget > 0 && v.Budget <= MaxBudget) {
		return v, ErrInvalidBudget
	}
	switch v.Status {
	case "":
		v.Status = StatusPaused
	case StatusEnabled, StatusPaused:
	default:
		return v, ErrInvalidStatus
	}

	start, err := time.Parse(DateLayout, strings.TrimSpace(r.StartDate))
	if err != nil {
		return v, ErrInvalidDates
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(r.EndDate))
	if err != nil {
		return v, ErrInvalidDates
	}
	if end.Before(start) {
		return v, ErrInvalidDates
	}
	v.StartDate, v.EndDate = start, end
	return v, nil
}
