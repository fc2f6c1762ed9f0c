package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adsmanager/internal/domain/account"
	"adsmanager/internal/infrastructure/database"
)

var linkageColumns = []clause.Column{{Name: "user_id"}, {Name: "managed_google_id"}}

type managedAccountRepository struct {
	db *database.DB
}

// NewManagedAccountRepository creates a new managed account repository
func NewManagedAccountRepository(db *database.DB) account.Repository {
	return &managedAccountRepository{db: db}
}

func (r *managedAccountRepository) Connect(ctx context.Context, a *account.ManagedAccount) error {
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: linkageColumns, DoNothing: true}).
		Create(a)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return account.ErrAlreadyConnected
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return account.ErrAlreadyConnected
	}
	return nil
}

func (r *managedAccountRepository) Upsert(ctx context.Context, a *account.ManagedAccount) (*account.ManagedAccount, error) {
	// An empty refresh token means Google did not issue a new one; keep the stored one.
	update := []string{"managed_email", "access_token", "updated_at"}
	if a.RefreshToken != "" {
		update = append(update, "refresh_token")
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: linkageColumns, DoUpdates: clause.AssignmentColumns(update)}).
		Create(a).Error
	if err != nil {
		return nil, err
	}

	var stored account.ManagedAccount
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND managed_google_id = ?", a.UserID, a.ManagedGoogleID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *managedAccountRepository) GetForUser(ctx context.Context, userID, id uint) (*account.ManagedAccount, error) {
	var a account.ManagedAccount
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *managedAccountRepository) ListByUser(ctx context.Context, userID uint) ([]account.ManagedAccount, error) {
	accounts := []account.ManagedAccount{}
	err := r.db.WithContext(ctx).
		Preload("Campaigns").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *managedAccountRepository) FindByAdsAccount(ctx context.Context, userID uint, customerID string) (*account.ManagedAccount, error) {
	var a account.ManagedAccount
	err := r.db.WithContext(ctx).Where("user_id = ? AND ads_account_id = ?", userID, customerID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *managedAccountRepository) SetAdsAccount(ctx context.Context, id uint, customerID string) error {
	result := r.db.WithContext(ctx).
		Model(&account.ManagedAccount{}).
		Where("id = ?", id).
		Update("ads_account_id", customerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *managedAccountRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&account.ManagedAccount{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}
