package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/middleware"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/services"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/sharing"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/utils"
)

// V1Handler handles all V1 API routes
type V1Handler struct {
	buyerService    *services.BuyerService
	sellerService   *services.SellerService
	dealService     *services.DealService
	shareService    *services.ShareService
	configService   *services.SharingConfigService
	partnerService  *services.PartnerService
	industryService *services.IndustryService
	importService   *services.ImportService
	matchService    *services.MatchService
}

// NewV1Handler creates a new V1 handler wired to one shared projection engine
func NewV1Handler(db *gorm.DB) *V1Handler {
	engine := sharing.NewEngine(sharing.NewConfigStore(db, nil, 0))

	return &V1Handler{
		buyerService:    services.NewBuyerService(db),
		sellerService:   services.NewSellerService(db),
		dealService:     services.NewDealService(db),
		shareService:    services.NewShareService(db),
		configService:   services.NewSharingConfigService(engine.Store()),
		partnerService:  services.NewPartnerService(db, engine),
		industryService: services.NewIndustryService(db),
		importService:   services.NewImportService(db),
		matchService:    services.NewMatchService(db),
	}
}

// SetupV1Routes configures all V1 API routes. Staff routes require the admin
// or broker role; partner routes require the partner role and only ever see
// projected data.
func (h *V1Handler) SetupV1Routes(mux *http.ServeMux) {
	authz := middleware.NewAuthorizationMiddleware()
	staff := func(handler http.HandlerFunc) http.Handler {
		return utils.PanicRecoveryMiddleware(authz.RequireStaffRole()(handler))
	}
	partner := func(handler http.HandlerFunc) http.Handler {
		return utils.PanicRecoveryMiddleware(authz.RequirePartnerRole()(handler))
	}

	// Buyer routes
	mux.Handle("/api/v1/buyers", staff(h.handleBuyers))
	mux.Handle("/api/v1/buyers/", staff(h.handleBuyers))

	// Seller routes
	mux.Handle("/api/v1/sellers", staff(h.handleSellers))
	mux.Handle("/api/v1/sellers/", staff(h.handleSellers))

	// Deal routes
	mux.Handle("/api/v1/deals", staff(h.handleDeals))
	mux.Handle("/api/v1/deals/", staff(h.handleDeals))

	// Share administration routes
	mux.Handle("/api/v1/shares", staff(h.handleShares))
	mux.Handle("/api/v1/shares/", staff(h.handleShares))

	// Sharing configuration routes
	mux.Handle("/api/v1/settings/sharing/", staff(h.handleSharingConfig))

	// Industry taxonomy routes
	mux.Handle("/api/v1/industries", staff(h.handleIndustries))
	mux.Handle("/api/v1/industries/", staff(h.handleIndustries))

	// Prospect import routes
	mux.Handle("/api/v1/imports", staff(h.handleImports))
	mux.Handle("/api/v1/imports/", staff(h.handleImports))

	// Match suggestion routes
	mux.Handle("/api/v1/matches", staff(h.handleMatches))

	// Partner routes
	mux.Handle("/api/v1/partner/buyers", partner(h.handlePartnerBuyers))
	mux.Handle("/api/v1/partner/buyers/", partner(h.handlePartnerBuyers))
	mux.Handle("/api/v1/partner/sellers", partner(h.handlePartnerSellers))
	mux.Handle("/api/v1/partner/sellers/", partner(h.handlePartnerSellers))
	mux.Handle("/api/v1/partner/deals", partner(h.handlePartnerDeals))
}

// decodeJSONBody decodes a JSON request body into target
func decodeJSONBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// listQueryFrom reads shared pagination/search query parameters
func listQueryFrom(r *http.Request) models.ListQuery {
	q := models.ListQuery{
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(r.URL.Query().Get("perPage")); err == nil {
		q.PerPage = perPage
	}
	q.Normalize()
	return q
}

// respondServiceError maps a service error onto an HTTP status
func respondServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, notFoundMessage)
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
}

// listResponse wraps a paged collection in the staff list shape
type listResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
}
