package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"adsmanager/internal/domain/campaign"
	"adsmanager/internal/infrastructure/database"
)

type campaignRepository struct {
	db *database.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *database.DB) campaign.Repository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return campaign.ErrCampaignExists
	}
	return err
}

func (r *campaignRepository) ListByAccount(ctx context.Context, managedAccountID uint) ([]campaign.Campaign, error) {
	campaigns := []campaign.Campaign{}
	err := r.db.WithContext(ctx).
		Where("managed_account_id = ?", managedAccountID).
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}

func (r *campaignRepository) GetByExternalID(ctx context.Context, managedAccountID uint, campaignID string) (*campaign.Campaign, error) {
	var c campaign.Campaign
	err := r.db.WithContext(ctx).
		Where("managed_account_id = ? AND campaign_id = ?", managedAccountID, campaignID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, campaign.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campaignRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&campaign.Campaign{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return campaign.ErrCampaignNotFound
	}
	return nil
}
