package account

import "context"

// Repository defines the contract for managed account storage.
type Repository interface {
	// Connect inserts a new linkage and fails with ErrAlreadyConnected when
	// the (UserID, ManagedGoogleID) pair already exists.
	Connect(ctx context.Context, a *ManagedAccount) error
	// Upsert inserts the linkage or refreshes the stored tokens of the
	// existing one in a single statement.
	Upsert(ctx context.Context, a *ManagedAccount) (*ManagedAccount, error)
	GetForUser(ctx context.Context, userID, id uint) (*ManagedAccount, error)
	ListByUser(ctx context.Context, userID uint) ([]ManagedAccount, error)
	FindByAdsAccount(ctx context.Context, userID uint, customerID string) (*ManagedAccount, error)
	SetAdsAccount(ctx context.Context, id uint, customerID string) error
	DeleteForUser(ctx context.Context, userID, id uint) error
}
