package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	campaignService "adsmanager/internal/application/campaign"
	"adsmanager/internal/domain/campaign"
)

// CampaignHandler handles campaigns of managed accounts
type CampaignHandler struct {
	service campaignService.Service
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(service campaignService.Service) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// List handles GET /api/campaigns/{managedAccountId}
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	accountID, ok := pathID(r, "managedAccountId")
	if !ok {
		SendError(w, "Invalid managed account ID", http.StatusBadRequest)
		return
	}

	campaigns, err := h.service.List(r.Context(), u.ID, accountID)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	SendSuccess(w, "", campaigns)
}

// Create handles POST /api/campaigns/{managedAccountId}
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	accountID, ok := pathID(r, "managedAccountId")
	if !ok {
		SendError(w, "Invalid managed account ID", http.StatusBadRequest)
		return
	}

	var req campaign.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Create(r.Context(), u.ID, accountID, req)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	SendCreated(w, "Campaign created", c)
}

// Delete handles DELETE /api/campaigns/{managedAccountId}/{campaignId}
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	accountID, ok := pathID(r, "managedAccountId")
	if !ok {
		SendError(w, "Invalid managed account ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), u.ID, accountID, chi.URLParam(r, "campaignId")); err != nil {
		sendDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
