package handlers

import (
	"net/http"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/utils"
)

// handleBuyers handles buyer-related routes
func (h *V1Handler) handleBuyers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/buyers")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/buyers and POST /api/v1/buyers
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listBuyers(w, r)
		case http.MethodPost:
			h.createBuyer(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Buyer ID is required")
		return
	}

	buyerId := parts[0]

	// Handle base buyer endpoint: GET /api/v1/buyers/:buyerId and PUT /api/v1/buyers/:buyerId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getBuyer(w, r, buyerId)
		case http.MethodPut:
			h.updateBuyer(w, r, buyerId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle match endpoint: GET /api/v1/buyers/:buyerId/matches
	if len(parts) == 2 && parts[1] == "matches" && r.Method == http.MethodGet {
		h.getBuyerMatches(w, r, buyerId)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) listBuyers(w http.ResponseWriter, r *http.Request) {
	q := listQueryFrom(r)
	buyers, total, err := h.buyerService.ListBuyers(r.Context(), q)
	if err != nil {
		respondServiceError(w, err, "Buyers not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, listResponse{Items: buyers, Total: total, Page: q.Page})
}

func (h *V1Handler) createBuyer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBuyerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	buyer, err := h.buyerService.CreateBuyer(r.Context(), &req, user.IdpUserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, buyer)
}

func (h *V1Handler) getBuyer(w http.ResponseWriter, r *http.Request, buyerId string) {
	buyer, err := h.buyerService.GetBuyer(r.Context(), buyerId)
	if err != nil {
		respondServiceError(w, err, "Buyer not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, buyer)
}

func (h *V1Handler) updateBuyer(w http.ResponseWriter, r *http.Request, buyerId string) {
	var req models.UpdateBuyerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	buyer, err := h.buyerService.UpdateBuyer(r.Context(), buyerId, &req)
	if err != nil {
		respondServiceError(w, err, "Buyer not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, buyer)
}

// handleSellers handles seller-related routes
func (h *V1Handler) handleSellers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/sellers")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/sellers and POST /api/v1/sellers
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listSellers(w, r)
		case http.MethodPost:
			h.createSeller(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Seller ID is required")
		return
	}

	sellerId := parts[0]

	// Handle base seller endpoint: GET /api/v1/sellers/:sellerId and PUT /api/v1/sellers/:sellerId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getSeller(w, r, sellerId)
		case http.MethodPut:
			h.updateSeller(w, r, sellerId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// Handle match endpoint: GET /api/v1/sellers/:sellerId/matches
	if len(parts) == 2 && parts[1] == "matches" && r.Method == http.MethodGet {
		h.getSellerMatches(w, r, sellerId)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) listSellers(w http.ResponseWriter, r *http.Request) {
	q := listQueryFrom(r)
	sellers, total, err := h.sellerService.ListSellers(r.Context(), q)
	if err != nil {
		respondServiceError(w, err, "Sellers not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, listResponse{Items: sellers, Total: total, Page: q.Page})
}

func (h *V1Handler) createSeller(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSellerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	seller, err := h.sellerService.CreateSeller(r.Context(), &req, user.IdpUserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, seller)
}

func (h *V1Handler) getSeller(w http.ResponseWriter, r *http.Request, sellerId string) {
	seller, err := h.sellerService.GetSeller(r.Context(), sellerId)
	if err != nil {
		respondServiceError(w, err, "Seller not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, seller)
}

func (h *V1Handler) updateSeller(w http.ResponseWriter, r *http.Request, sellerId string) {
	var req models.UpdateSellerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	seller, err := h.sellerService.UpdateSeller(r.Context(), sellerId, &req)
	if err != nil {
		respondServiceError(w, err, "Seller not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, seller)
}
