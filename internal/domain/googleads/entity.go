package googleads

import (
	"strings"
	"time"
)

// AccountCreationURL is where users without an ads account are sent to create one.
const AccountCreationURL = "https://ads.google.com/nav/selectaccount"

// AdsAccount represents Google Ads account information
type AdsAccount struct {
	CustomerID      string `json:"customerId"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	TimeZone        string `json:"timeZone"`
	Status          string `json:"status"`
}

// CampaignSpec describes a campaign to create under a customer.
type CampaignSpec struct {
	Name      string
	Status    string
	Budget    float64 // in account currency units
	StartDate time.Time
	EndDate   time.Time
}

// NormalizeCustomerID strips the dashes of the "123-456-7890" display form
// and reports whether what remains is a plausible customer id.
func NormalizeCustomerID(id string) (string, bool) {
	id = strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if id == "" || len(id) > 20 {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id, true
}
