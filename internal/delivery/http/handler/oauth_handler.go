package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"adsmanager/internal/application/auth"
	domain "adsmanager/internal/domain/auth"
	"adsmanager/internal/domain/user"
	"adsmanager/internal/infrastructure/token"
)

const stateCookie = "oauth_state"

// OAuthHandler handles Google sign-in
type OAuthHandler struct {
	authService auth.Service
	frontendURL string
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(authService auth.Service, frontendURL string) *OAuthHandler {
	return &OAuthHandler{
		authService: authService,
		frontendURL: frontendURL,
	}
}

// GoogleLogin redirects to the Google consent screen
func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	authURL, nonce, err := h.authService.StartGoogleLogin()
	if err != nil {
		sendDomainError(w, err)
		return
	}

	setStateCookie(w, nonce, strings.HasPrefix(h.frontendURL, "https"))
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// GoogleCallback handles the OAuth callback from Google
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	nonce := consumeStateCookie(w, r)

	// Check for error from Google
	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		h.redirectWithError(w, r, errMsg)
		return
	}

	resp, err := h.authService.CompleteGoogleLogin(r.Context(), r.URL.Query().Get("state"), nonce, r.URL.Query().Get("code"))
	if err != nil {
		_, message := classify(err)
		if !isExpected(err) {
			log.Printf("[oauth] google login failed: %v", err)
			message = "Failed to sign in with Google"
		}
		h.redirectWithError(w, r, message)
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", h.frontendURL, url.QueryEscape(resp.Token))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// GoogleStatus returns whether Google OAuth is configured
func (h *OAuthHandler) GoogleStatus(w http.ResponseWriter, r *http.Request) {
	SendSuccess(w, "", map[string]any{
		"enabled": h.authService.GoogleEnabled(),
	})
}

// redirectWithError redirects to frontend with error message
func (h *OAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, errMsg string) {
	redirectURL := fmt.Sprintf("%s/auth/callback?error=%s", h.frontendURL, url.QueryEscape(errMsg))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrInvalidTokens) ||
		errors.Is(err, domain.ErrIdentityUnavailable) ||
		errors.Is(err, domain.ErrGoogleDisabled) ||
		errors.Is(err, domain.ErrEmailNotVerified) ||
		errors.Is(err, user.ErrUserAlreadyExists)
}

func setStateCookie(w http.ResponseWriter, nonce string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    nonce,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   int(token.StateTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// consumeStateCookie returns the nonce bound to the browser and clears it,
// so a state can be completed once.
func consumeStateCookie(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(stateCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Value
}
