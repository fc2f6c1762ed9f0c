package campaign

import "context"

// Repository defines the contract for campaign storage
type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	ListByAccount(ctx context.Context, managedAccountID uint) ([]Campaign, error)
	GetByExternalID(ctx context.Context, managedAccountID uint, campaignID string) (*Campaign, error)
	Delete(ctx context.Context, id uint) error
}
