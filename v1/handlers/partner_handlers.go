package handlers

import (
	"net/http"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/utils"
)

// Partner routes serve projected data only. The partner identity comes from
// the verified token, never from a query parameter.

// handlePartnerBuyers handles the partner buyer routes
func (h *V1Handler) handlePartnerBuyers(w http.ResponseWriter, r *http.Request) {
	user, err := utils.RequirePartner(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Partner access required")
		return
	}
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/partner/buyers")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/partner/buyers
	if len(parts) == 1 && parts[0] == "" {
		envelope, err := h.partnerService.ListSharedBuyers(r.Context(), user.IdpUserID, listQueryFrom(r))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, envelope)
		return
	}

	// Handle detail endpoint: GET /api/v1/partner/buyers/:buyerId
	if len(parts) == 1 && parts[0] != "" {
		envelope, err := h.partnerService.GetSharedBuyer(r.Context(), user.IdpUserID, parts[0])
		if err != nil {
			respondServiceError(w, err, "Buyer not found")
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, envelope)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

// handlePartnerSellers handles the partner seller routes
func (h *V1Handler) handlePartnerSellers(w http.ResponseWriter, r *http.Request) {
	user, err := utils.RequirePartner(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Partner access required")
		return
	}
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/partner/sellers")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/partner/sellers
	if len(parts) == 1 && parts[0] == "" {
		envelope, err := h.partnerService.ListSharedSellers(r.Context(), user.IdpUserID, listQueryFrom(r))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, envelope)
		return
	}

	// Handle detail endpoint: GET /api/v1/partner/sellers/:sellerId
	if len(parts) == 1 && parts[0] != "" {
		envelope, err := h.partnerService.GetSharedSeller(r.Context(), user.IdpUserID, parts[0])
		if err != nil {
			respondServiceError(w, err, "Seller not found")
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, envelope)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

// handlePartnerDeals handles GET /api/v1/partner/deals
func (h *V1Handler) handlePartnerDeals(w http.ResponseWriter, r *http.Request) {
	user, err := utils.RequirePartner(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Partner access required")
		return
	}
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var deals *models.CollectionResponse
	deals, err = h.partnerService.ListSharedDeals(r.Context(), user.IdpUserID, listQueryFrom(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, deals)
}
