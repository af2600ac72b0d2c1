package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/utils"
)

// maxImportFileSize caps spreadsheet uploads at 10 MiB
const maxImportFileSize = 10 << 20

// handleShares handles partner share administration routes
func (h *V1Handler) handleShares(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/shares")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/shares and POST /api/v1/shares
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listShares(w, r)
		case http.MethodPost:
			h.grantShare(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Share ID is required")
		return
	}

	// Handle revoke endpoint: DELETE /api/v1/shares/:shareId
	if len(parts) == 1 && r.Method == http.MethodDelete {
		h.revokeShare(w, r, parts[0])
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) listShares(w http.ResponseWriter, r *http.Request) {
	shares, err := h.shareService.ListShares(r.Context(), r.URL.Query().Get("partnerId"))
	if err != nil {
		respondServiceError(w, err, "Shares not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{Items: shares, Count: len(shares)})
}

func (h *V1Handler) grantShare(w http.ResponseWriter, r *http.Request) {
	var req models.GrantShareRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	share, err := h.shareService.GrantShare(r.Context(), &req, user.IdpUserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, share)
}

func (h *V1Handler) revokeShare(w http.ResponseWriter, r *http.Request, shareId string) {
	if err := h.shareService.RevokeShare(r.Context(), shareId); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.RespondWithError(w, http.StatusNotFound, "Share not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, map[string]string{"status": "revoked"})
}

// handleSharingConfig handles the per-entity-type field allow-list:
// GET/PUT /api/v1/settings/sharing/:entityType
func (h *V1Handler) handleSharingConfig(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/settings/sharing")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) != 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Entity type is required")
		return
	}
	entityType := parts[0]

	switch r.Method {
	case http.MethodGet:
		config, err := h.configService.GetConfig(r.Context(), entityType)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, config)
	case http.MethodPut:
		var req models.UpdateSharingConfigRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		config, err := h.configService.UpdateConfig(r.Context(), entityType, &req)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, config)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleIndustries handles taxonomy routes
func (h *V1Handler) handleIndustries(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/industries")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/industries and POST /api/v1/industries
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listIndustries(w, r)
		case http.MethodPost:
			h.createIndustry(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) != 1 {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	switch parts[0] {
	case "reconcile":
		if r.Method != http.MethodGet {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.reconcileIndustries(w, r)
	case "promote":
		if r.Method != http.MethodPost {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.promoteIndustryTag(w, r)
	case "merge":
		if r.Method != http.MethodPost {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.mergeIndustryTag(w, r)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
	}
}

func (h *V1Handler) listIndustries(w http.ResponseWriter, r *http.Request) {
	industries, err := h.industryService.ListIndustries(r.Context())
	if err != nil {
		respondServiceError(w, err, "Industries not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{Items: industries, Count: len(industries)})
}

func (h *V1Handler) createIndustry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	industry, err := h.industryService.CreateIndustry(r.Context(), req.Name)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, industry)
}

func (h *V1Handler) reconcileIndustries(w http.ResponseWriter, r *http.Request) {
	findings, err := h.industryService.Reconcile(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{Items: findings, Count: len(findings)})
}

func (h *V1Handler) promoteIndustryTag(w http.ResponseWriter, r *http.Request) {
	var req models.PromoteTagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	industry, err := h.industryService.PromoteTag(r.Context(), &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, industry)
}

func (h *V1Handler) mergeIndustryTag(w http.ResponseWriter, r *http.Request) {
	var req models.MergeTagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	rewritten, err := h.industryService.MergeTag(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Industry not found")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, map[string]int{"rewrittenRecords": rewritten})
}

// handleImports handles prospect import routes
func (h *V1Handler) handleImports(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/imports")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /api/v1/imports and POST /api/v1/imports
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listImportBatches(w, r)
		case http.MethodPost:
			h.importProspects(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Batch ID is required")
		return
	}

	batchId := parts[0]

	// Handle base batch endpoint: GET /api/v1/imports/:batchId
	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		batch, err := h.importService.GetBatch(r.Context(), batchId)
		if err != nil {
			respondServiceError(w, err, "Import batch not found")
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, batch)
		return
	}

	// Handle prospects endpoint: GET /api/v1/imports/:batchId/prospects
	if len(parts) == 2 && parts[1] == "prospects" && r.Method == http.MethodGet {
		prospects, err := h.importService.ListProspects(r.Context(), batchId)
		if err != nil {
			respondServiceError(w, err, "Import batch not found")
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{Items: prospects, Count: len(prospects)})
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) listImportBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.importService.ListBatches(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, models.CollectionResponse{Items: batches, Count: len(batches)})
}

// importProspects accepts a multipart upload with a single "file" part
func (h *V1Handler) importProspects(w http.ResponseWriter, r *http.Request) {
	user, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxImportFileSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Uploaded file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImportFileSize))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	batch, err := h.importService.ImportProspects(r.Context(), header.Filename, content, user.IdpUserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, batch)
}
