package user

import (
	"time"

	"adsmanager/internal/domain/account"
)

// User represents a local identity. Users registered with a password have no
// GoogleID until they sign in with Google once.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GoogleID     *string   `gorm:"uniqueIndex;size:255" json:"-"`
	Email        string    `gorm:"uniqueIndex;size:320;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"` // Never expose password in JSON
	Name         string    `gorm:"size:255;not null" json:"name"`
	Picture      string    `gorm:"size:1024" json:"picture,omitempty"`
	AccessToken  string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	ManagedAccounts []account.ManagedAccount `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// UserResponse is the safe user representation for API responses
type UserResponse struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Picture      string    `json:"picture,omitempty"`
	GoogleLinked bool      `json:"googleLinked"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToResponse converts a User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Picture:      u.Picture,
		GoogleLinked: u.GoogleID != nil && *u.GoogleID != "",
		CreatedAt:    u.CreatedAt,
	}
}

// HasPassword reports whether the user can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
