package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adsmanager/internal/domain/user"
	"adsmanager/internal/infrastructure/database"
)

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrUserAlreadyExists
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	return r.first(ctx, "google_id = ?", googleID)
}

func (r *userRepository) first(ctx context.Context, query string, args ...any) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).Model(u).
		Select("google_id", "email", "password_hash", "name", "picture", "access_token", "refresh_token", "updated_at").
		Updates(u)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return user.ErrUserAlreadyExists
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete removes the user; the database cascades to managed accounts and
// their campaigns.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&user.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
