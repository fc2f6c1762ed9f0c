package auth

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "adsmanager/internal/domain/auth"
	"adsmanager/internal/domain/user"
	"adsmanager/internal/infrastructure/token"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service defines the authentication service interface
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.TokenResponse, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*user.User, error)

	// Google sign-in
	GoogleEnabled() bool
	StartGoogleLogin() (url string, nonce string, err error)
	CompleteGoogleLogin(ctx context.Context, state, nonce, code string) (*domain.TokenResponse, error)
	LoginWithGoogle(ctx context.Context, identity domain.GoogleIdentity, tokens domain.GoogleTokens) (*domain.TokenResponse, error)
}

// GoogleLogin groups the collaborators of the Google sign-in flow. A nil
// Provider disables it.
type GoogleLogin struct {
	Provider    domain.OAuthProvider
	Verifier    domain.IdentityVerifier
	States      domain.StateCodec
	CallbackURL string
}

type service struct {
	userRepo user.Repository
	issuer   *token.Issuer
	google   GoogleLogin
}

// NewService creates a new auth service
func NewService(userRepo user.Repository, issuer *token.Issuer, google GoogleLogin) Service {
	return &service{
		userRepo: userRepo,
		issuer:   issuer,
		google:   google,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)

	if !emailPattern.MatchString(email) {
		return nil, user.ErrInvalidEmail
	}
	if len(req.Password) < 6 {
		return nil, user.ErrInvalidPassword
	}
	if name == "" {
		return nil, user.ErrInvalidName
	}

	// Check if user already exists
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrUserAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	newUser := &user.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.issue(newUser)
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// Users created through Google sign-in have no password to check.
	if !u.HasPassword() || !checkPassword(u.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *service) ValidateToken(ctx context.Context, tokenStr string) (*user.User, error) {
	claims, err := s.issuer.Parse(tokenStr)
	if err != nil {
		return nil, user.ErrUnauthorized
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrUnauthorized
	}
	return u, err
}

func (s *service) GoogleEnabled() bool {
	return s.google.Provider != nil
}

func (s *service) StartGoogleLogin() (string, string, error) {
	if !s.GoogleEnabled() {
		return "", "", domain.ErrGoogleDisabled
	}
	state, nonce, err := s.google.States.Sign(domain.State{Purpose: domain.PurposeLogin})
	if err != nil {
		return "", "", err
	}
	return s.google.Provider.AuthCodeURL(s.google.CallbackURL, state), nonce, nil
}

func (s *service) CompleteGoogleLogin(ctx context.Context, state, nonce, code string) (*domain.TokenResponse, error) {
	if !s.GoogleEnabled() {
		return nil, domain.ErrGoogleDisabled
	}
	if _, err := s.google.States.Parse(state, nonce, domain.PurposeLogin); err != nil {
		log.Printf("[auth] rejected google login state: %v", err)
		return nil, domain.ErrInvalidState
	}

	tokens, err := s.google.Provider.Exchange(ctx, code, s.google.CallbackURL)
	if err != nil {
		return nil, err
	}
	identity, err := s.google.Verifier.Verify(ctx, tokens.IDToken)
	if err != nil {
		return nil, err
	}

	return s.LoginWithGoogle(ctx, *identity, *tokens)
}

// LoginWithGoogle finds the user by Google subject, then by email, and
// creates one when neither matches. Stored tokens are refreshed each time.
// Linking by email and creating a user both require a verified email, and a
// user already linked to another Google subject is never relinked.
func (s *service) LoginWithGoogle(ctx context.Context, identity domain.GoogleIdentity, tokens domain.GoogleTokens) (*domain.TokenResponse, error) {
	if identity.Subject == "" || identity.Email == "" {
		return nil, domain.ErrIdentityUnavailable
	}

	u, err := s.userRepo.GetByGoogleID(ctx, identity.Subject)
	switch {
	case err == nil:
		applyGoogle(u, identity, tokens)
		if err := s.userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
		return s.issue(u)
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	if !identity.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	// Link an existing local account with the same email
	u, err = s.userRepo.GetByEmail(ctx, normalizeEmail(identity.Email))
	switch {
	case err == nil:
		if u.GoogleID != nil && *u.GoogleID != "" {
			return nil, user.ErrUserAlreadyExists
		}
		applyGoogle(u, identity, tokens)
		if err := s.userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
		return s.issue(u)
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.Split(identity.Email, "@")[0]
	}
	u = &user.User{
		Email: normalizeEmail(identity.Email),
		Name:  name,
	}
	applyGoogle(u, identity, tokens)
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *service) issue(u *user.User) (*domain.TokenResponse, error) {
	signed, expiresAt, err := s.issuer.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, err
	}
	return &domain.TokenResponse{Token: signed, ExpiresAt: expiresAt.Unix()}, nil
}

func applyGoogle(u *user.User, identity domain.GoogleIdentity, tokens domain.GoogleTokens) {
	subject := identity.Subject
	u.GoogleID = &subject
	u.AccessToken = tokens.AccessToken
	// Google only returns a refresh token on consent; keep the previous one otherwise.
	if tokens.RefreshToken != "" {
		u.RefreshToken = tokens.RefreshToken
	}
	if identity.Picture != "" {
		u.Picture = identity.Picture
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
