package handlers

import (
	"net/http"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/utils"
)

// handleDeals handles deal-related routes
func (h *V1Handler) handleDeals(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/deals")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/deals and POST /api/v1/deals
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listDeals(w, r)
		case http.MethodPost:
			h.createDeal(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Deal ID is required")
		return
	}

	dealId := parts[0]

	// Handle base deal endpoint: GET /api/v1/deals/:dealId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getDeal(w, r, dealId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle stage endpoint: PUT /api/v1/deals/:dealId/stage
	if len(parts) == 2 && parts[1] == "stage" {
		if r.Method != http.MethodPut {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.updateDealStage(w, r, dealId)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) listDeals(w http.ResponseWriter, r *http.Request) {
	q := listQueryFrom(r)
	buyerId := r.URL.Query().Get("buyerId")
	sellerId := r.URL.Query().Get("sellerId")
	stage := models.DealStage(r.URL.Query().Get("stage"))

	deals, total, err := h.dealService.ListDeals(r.Context(), q, buyerId, sellerId, stage)
	if err != nil {
		respondServiceError(w, err, "Deals not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, listResponse{Items: deals, Total: total, Page: q.Page})
}

func (h *V1Handler) createDeal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDealRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	deal, err := h.dealService.CreateDeal(r.Context(), &req, user.IdpUserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, deal)
}

func (h *V1Handler) getDeal(w http.ResponseWriter, r *http.Request, dealId string) {
	deal, err := h.dealService.GetDeal(r.Context(), dealId)
	if err != nil {
		respondServiceError(w, err, "Deal not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, deal)
}

func (h *V1Handler) updateDealStage(w http.ResponseWriter, r *http.Request, dealId string) {
	var req models.UpdateDealStageRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	deal, err := h.dealService.UpdateStage(r.Context(), dealId, req.Stage)
	if err != nil {
		if strings.Contains(err.Error(), "invalid stage transition") {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondServiceError(w, err, "Deal not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, deal)
}

// handleMatches handles the suggestion list endpoint: the caller passes
// either buyerId or sellerId
func (h *V1Handler) handleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	buyerId := r.URL.Query().Get("buyerId")
	sellerId := r.URL.Query().Get("sellerId")
	switch {
	case buyerId != "":
		h.getBuyerMatches(w, r, buyerId)
	case sellerId != "":
		h.getSellerMatches(w, r, sellerId)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "buyerId or sellerId is required")
	}
}

func (h *V1Handler) getBuyerMatches(w http.ResponseWriter, r *http.Request, buyerId string) {
	suggestions, err := h.matchService.SuggestForBuyer(r.Context(), buyerId, matchLimitFrom(r))
	if err != nil {
		respondServiceError(w, err, "Buyer not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{Items: suggestions, Count: len(suggestions)})
}

func (h *V1Handler) getSellerMatches(w http.ResponseWriter, r *http.Request, sellerId string) {
	suggestions, err := h.matchService.SuggestForSeller(r.Context(), sellerId, matchLimitFrom(r))
	if err != nil {
		respondServiceError(w, err, "Seller not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{Items: suggestions, Count: len(suggestions)})
}

func matchLimitFrom(r *http.Request) int {
	q := listQueryFrom(r)
	if r.URL.Query().Get("perPage") == "" {
		return 0
	}
	return q.PerPage
}
