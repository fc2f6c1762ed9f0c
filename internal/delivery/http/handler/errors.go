package handler

import (
	"errors"
	"log"
	"net/http"

	"adsmanager/internal/domain/account"
	"adsmanager/internal/domain/auth"
	"adsmanager/internal/domain/campaign"
	"adsmanager/internal/domain/user"
)

// sendDomainError maps service errors to HTTP responses.
func sendDomainError(w http.ResponseWriter, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("[http] internal error: %v", err)
	}
	SendError(w, message, status)
}

func classify(err error) (int, string) {
	switch {
	// Users
	case errors.Is(err, user.ErrUserAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, user.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email address"
	case errors.Is(err, user.ErrInvalidPassword):
		return http.StatusBadRequest, "Password must be at least 6 characters"
	case errors.Is(err, user.ErrInvalidName):
		return http.StatusBadRequest, "Name is required"
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, user.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid or expired token"

	// OAuth
	case errors.Is(err, auth.ErrGoogleDisabled):
		return http.StatusServiceUnavailable, "Google OAuth not configured"
	case errors.Is(err, auth.ErrInvalidState):
		return http.StatusBadRequest, "Invalid or expired OAuth state"
	case errors.Is(err, auth.ErrInvalidTokens):
		return http.StatusBadRequest, "Invalid authorization code"
	case errors.Is(err, auth.ErrIdentityUnavailable):
		return http.StatusBadRequest, "Could not get user information"
	case errors.Is(err, auth.ErrEmailNotVerified):
		return http.StatusBadRequest, "Google account email is not verified"

	// Managed accounts
	case errors.Is(err, account.ErrAccountNotFound):
		return http.StatusNotFound, "Managed account not found"
	case errors.Is(err, account.ErrAlreadyConnected):
		return http.StatusBadRequest, "This Google Ads account is already connected"
	case errors.Is(err, account.ErrNoAdsAccount):
		return http.StatusBadRequest, "No Google Ads account selected"
	case errors.Is(err, account.ErrAccessDenied):
		return http.StatusForbidden, "Insufficient permissions for this Google Ads account"
	case errors.Is(err, account.ErrInvalidCustomerID):
		return http.StatusBadRequest, "Invalid customer ID"
	case errors.Is(err, account.ErrIdentityMismatch):
		return http.StatusBadRequest, "Signed in with a different Google account"
	case errors.Is(err, account.ErrGoogleUnavailable):
		return http.StatusBadGateway, "Google Ads request failed"

	// Campaigns
	case errors.Is(err, campaign.ErrCampaignNotFound):
		return http.StatusNotFound, "Campaign not found"
	case errors.Is(err, campaign.ErrCampaignExists):
		return http.StatusConflict, "Campaign already exists"
	case errors.Is(err, campaign.ErrInvalidName),
		errors.Is(err, campaign.ErrInvalidBudget),
		errors.Is(err, campaign.ErrInvalidStatus),
		errors.Is(err, campaign.ErrInvalidDates):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}
