package campaign

import "errors"

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignExists   = errors.New("campaign already exists")
	ErrInvalidName      = errors.New("campaign name is required")
	ErrInvalidBudget    = errors.New("budget must be greater than zero and at most 99999999.99")
	ErrInvalidStatus    = errors.New("status must be ENABLED or PAUSED")
	ErrInvalidDates     = errors.New("dates must be YYYY-MM-DD and end on or after start")
)
