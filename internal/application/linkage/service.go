package linkage

import (
	"context"
	"errors"
	"log"

	"golang.org/x/oauth2"

	"adsmanager/internal/domain/account"
	domain "adsmanager/internal/domain/auth"
	"adsmanager/internal/domain/googleads"
	"adsmanager/internal/infrastructure/events"
)

// Service manages the Google identities a user links for Google Ads access.
type Service interface {
	// StartLink returns the consent URL for linking a new Google identity
	// and the nonce to bind to the browser.
	StartLink(userID uint) (url string, nonce string, err error)
	// StartRefresh is StartLink for renewing the tokens of an existing linkage.
	StartRefresh(ctx context.Context, userID, accountID uint) (url string, nonce string, err error)
	// Complete handles the OAuth callback of both flows.
	Complete(ctx context.Context, state, nonce, code string) (*account.ManagedAccount, error)

	List(ctx context.Context, userID uint) ([]account.ManagedAccount, error)
	ListAdsAccounts(ctx context.Context, userID, accountID uint) ([]googleads.AdsAccount, error)
	SelectAdsAccount(ctx context.Context, userID, accountID uint, customerID string) (*account.ManagedAccount, error)
	Unlink(ctx context.Context, userID, accountID uint) error
}

// Deps are the collaborators of the linkage service. A nil Provider
// disables the OAuth flows.
type Deps struct {
	Accounts    account.Repository
	Provider    domain.OAuthProvider
	Verifier    domain.IdentityVerifier
	States      domain.StateCodec
	Ads         googleads.API
	Events      events.Publisher
	CallbackURL string
}

// Event is the payload of managed account events.
type Event struct {
	UserID          uint    `json:"userId"`
	AccountID       uint    `json:"accountId"`
	ManagedGoogleID string  `json:"managedGoogleId,omitempty"`
	AdsAccountID    *string `json:"adsAccountId,omitempty"`
}

type service struct {
	Deps
}

// NewService creates a new linkage service
func NewService(deps Deps) Service {
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	return &service{Deps: deps}
}

func (s *service) StartLink(userID uint) (string, string, error) {
	return s.start(domain.State{Purpose: domain.PurposeLink, UserID: userID})
}

func (s *service) StartRefresh(ctx context.Context, userID, accountID uint) (string, string, error) {
	if _, err := s.Accounts.GetForUser(ctx, userID, accountID); err != nil {
		return "", "", err
	}
	return s.start(domain.State{Purpose: domain.PurposeRefresh, UserID: userID, AccountID: accountID})
}

func (s *service) start(st domain.State) (string, string, error) {
	if s.Provider == nil {
		return "", "", domain.ErrGoogleDisabled
	}
	state, nonce, err := s.States.Sign(st)
	if err != nil {
		return "", "", err
	}
	return s.Provider.AuthCodeURL(s.CallbackURL, state), nonce, nil
}

func (s *service) Complete(ctx context.Context, state, nonce, code string) (*account.ManagedAccount, error) {
	if s.Provider == nil {
		return nil, domain.ErrGoogleDisabled
	}
	st, err := s.States.Parse(state, nonce, domain.PurposeLink, domain.PurposeRefresh)
	if err != nil {
		log.Printf("[linkage] rejected state: %v", err)
		return nil, domain.ErrInvalidState
	}

	tokens, err := s.Provider.Exchange(ctx, code, s.CallbackURL)
	if err != nil {
		return nil, err
	}
	identity, err := s.Verifier.Verify(ctx, tokens.IDToken)
	if err != nil {
		return nil, err
	}

	linked := &account.ManagedAccount{
		UserID:          st.UserID,
		ManagedGoogleID: identity.Subject,
		ManagedEmail:    identity.Email,
		AccessToken:     tokens.AccessToken,
		RefreshToken:    tokens.RefreshToken,
	}

	eventKey := events.ManagedAccountLinked
	switch st.Purpose {
	case domain.PurposeRefresh:
		existing, err := s.Accounts.GetForUser(ctx, st.UserID, st.AccountID)
		if err != nil {
			return nil, err
		}
		if existing.ManagedGoogleID != identity.Subject {
			return nil, account.ErrIdentityMismatch
		}
		if linked, err = s.Accounts.Upsert(ctx, linked); err != nil {
			return nil, err
		}
		eventKey = events.ManagedAccountRefreshed
	default:
		if err := s.Accounts.Connect(ctx, linked); err != nil {
			return nil, err
		}
	}

	if !linked.HasAdsAccount() {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tokens.AccessToken, TokenType: "Bearer"})
		s.autoSelect(ctx, linked, ts)
	}

	events.Emit(ctx, s.Events, eventKey, Event{
		UserID:          linked.UserID,
		AccountID:       linked.ID,
		ManagedGoogleID: linked.ManagedGoogleID,
		AdsAccountID:    linked.AdsAccountID,
	})
	return linked, nil
}

// autoSelect picks the ads account when exactly one is accessible. Failures
// leave the linkage without a selection.
func (s *service) autoSelect(ctx context.Context, a *account.ManagedAccount, ts oauth2.TokenSource) {
	accounts, err := s.Ads.ListAccessibleAccounts(ctx, ts)
	if err != nil {
		log.Printf("[linkage] listing ads accounts for managed account %d: %v", a.ID, err)
		return
	}
	if len(accounts) != 1 {
		return
	}

	customerID := accounts[0].CustomerID
	if other, err := s.Accounts.FindByAdsAccount(ctx, a.UserID, customerID); err == nil && other.ID != a.ID {
		return
	}
	if err := s.Accounts.SetAdsAccount(ctx, a.ID, customerID); err != nil {
		log.Printf("[linkage] selecting ads account %s: %v", customerID, err)
		return
	}
	a.AdsAccountID = &customerID
}

func (s *service) List(ctx context.Context, userID uint) ([]account.ManagedAccount, error) {
	return s.Accounts.ListByUser(ctx, userID)
}

func (s *service) ListAdsAccounts(ctx context.Context, userID, accountID uint) ([]googleads.AdsAccount, error) {
	a, err := s.Accounts.GetForUser(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if s.Provider == nil {
		return nil, domain.ErrGoogleDisabled
	}

	accounts, err := s.Ads.ListAccessibleAccounts(ctx, s.tokenSource(ctx, a))
	if err != nil {
		log.Printf("[linkage] listing ads accounts for managed account %d: %v", a.ID, err)
		return nil, account.ErrGoogleUnavailable
	}
	return accounts, nil
}

func (s *service) SelectAdsAccount(ctx context.Context, userID, accountID uint, customerID string) (*account.ManagedAccount, error) {
	id, ok := googleads.NormalizeCustomerID(customerID)
	if !ok {
		return nil, account.ErrInvalidCustomerID
	}

	a, err := s.Accounts.GetForUser(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if s.Provider == nil {
		return nil, domain.ErrGoogleDisabled
	}

	other, err := s.Accounts.FindByAdsAccount(ctx, userID, id)
	switch {
	case err == nil && other.ID != a.ID:
		return nil, account.ErrAlreadyConnected
	case err == nil:
		return a, nil
	case !errors.Is(err, account.ErrAccountNotFound):
		return nil, err
	}

	hasAccess, err := s.Ads.CheckAccess(ctx, s.tokenSource(ctx, a), id)
	if err != nil {
		log.Printf("[linkage] checking access to %s: %v", id, err)
		return nil, account.ErrGoogleUnavailable
	}
	if !hasAccess {
		return nil, account.ErrAccessDenied
	}

	if err := s.Accounts.SetAdsAccount(ctx, a.ID, id); err != nil {
		return nil, err
	}
	a.AdsAccountID = &id
	return a, nil
}

func (s *service) Unlink(ctx context.Context, userID, accountID uint) error {
	if err := s.Accounts.DeleteForUser(ctx, userID, accountID); err != nil {
		return err
	}
	events.Emit(ctx, s.Events, events.ManagedAccountUnlinked, Event{UserID: userID, AccountID: accountID})
	return nil
}

func (s *service) tokenSource(ctx context.Context, a *account.ManagedAccount) oauth2.TokenSource {
	return s.Provider.TokenSource(ctx, account.Tokens{AccessToken: a.AccessToken, RefreshToken: a.RefreshToken})
}
