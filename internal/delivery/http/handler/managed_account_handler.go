package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"adsmanager/internal/application/linkage"
	"adsmanager/internal/domain/account"
	"adsmanager/internal/domain/googleads"
)

// ManagedAccountHandler handles linking Google identities for Ads access
type ManagedAccountHandler struct {
	service     linkage.Service
	frontendURL string
}

// NewManagedAccountHandler creates a new managed account handler
func NewManagedAccountHandler(service linkage.Service, frontendURL string) *ManagedAccountHandler {
	return &ManagedAccountHandler{
		service:     service,
		frontendURL: frontendURL,
	}
}

// List handles GET /api/managed-accounts
func (h *ManagedAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())

	accounts, err := h.service.List(r.Context(), u.ID)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	SendSuccess(w, "", accounts)
}

// Add handles GET /api/managed-accounts/add
func (h *ManagedAccountHandler) Add(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())

	authURL, nonce, err := h.service.StartLink(u.ID)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	h.sendConsent(w, r, authURL, nonce)
}

// Reauthorize handles GET /api/managed-accounts/{id}/reauthorize
func (h *ManagedAccountHandler) Reauthorize(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		SendError(w, "Invalid managed account ID", http.StatusBadRequest)
		return
	}

	authURL, nonce, err := h.service.StartRefresh(r.Context(), u.ID, id)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	h.sendConsent(w, r, authURL, nonce)
}

// sendConsent redirects the browser to Google. API clients asking for JSON
// get the URL instead and follow it themselves.
func (h *ManagedAccountHandler) sendConsent(w http.ResponseWriter, r *http.Request, authURL, nonce string) {
	setStateCookie(w, nonce, strings.HasPrefix(h.frontendURL, "https"))
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		SendSuccess(w, "", map[string]string{"url": authURL})
		return
	}
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// Callback handles GET /api/managed-accounts/callback. The caller is
// identified by the signed state, not by a bearer token.
func (h *ManagedAccountHandler) Callback(w http.ResponseWriter, r *http.Request) {
	nonce := consumeStateCookie(w, r)

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		SendError(w, "Google authorization failed: "+errMsg, http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		SendError(w, "Invalid authorization code", http.StatusBadRequest)
		return
	}

	a, err := h.service.Complete(r.Context(), r.URL.Query().Get("state"), nonce, code)
	if err != nil {
		sendDomainError(w, err)
		return
	}

	log.Printf("[accounts] user %d linked managed account %d", a.UserID, a.ID)
	http.Redirect(w, r, fmt.Sprintf("%s/dashboard/accounts/%d", h.frontendURL, a.ID), http.StatusFound)
}

// AdsAccounts handles GET /api/managed-accounts/{id}/ads-accounts
func (h *ManagedAccountHandler) AdsAccounts(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		SendError(w, "Invalid managed account ID", http.StatusBadRequest)
		return
	}

	accounts, err := h.service.ListAdsAccounts(r.Context(), u.ID, id)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	if len(accounts) == 0 {
		SendSuccess(w, "No Google Ads accounts found", map[string]any{
			"accounts":           accounts,
			"accountCreationUrl": googleads.AccountCreationURL,
		})
		return
	}
	SendSuccess(w, "", map[string]any{"accounts": accounts})
}

// SelectAdsAccount handles PUT /api/managed-accounts/{id}/ads-account
func (h *ManagedAccountHandler) SelectAdsAccount(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		SendError(w, "Invalid managed account ID", http.StatusBadRequest)
		return
	}

	var req account.SelectAdsAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.service.SelectAdsAccount(r.Context(), u.ID, id, req.CustomerID)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	SendSuccess(w, "Google Ads account selected", a)
}

// Delete handles DELETE /api/managed-accounts/{id}
func (h *ManagedAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		SendError(w, "Invalid managed account ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Unlink(r.Context(), u.ID, id); err != nil {
		sendDomainError(w, err)
		return
	}
	SendSuccess(w, "Managed account deleted successfully", nil)
}
