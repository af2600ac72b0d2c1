package models

// Request/Response DTOs for V1 API endpoints

// CompanyOverviewInput carries company-overview fields on create/update
type CompanyOverviewInput struct {
	RegName       string   `json:"regName"`
	TradingName   *string  `json:"tradingName,omitempty"`
	Website       *string  `json:"website,omitempty"`
	Description   *string  `json:"description,omitempty"`
	HQCountry     *string  `json:"hqCountry,omitempty"`
	City          *string  `json:"city,omitempty"`
	FoundedYear   *int     `json:"foundedYear,omitempty"`
	EmployeeCount *int     `json:"employeeCount,omitempty"`
	IndustryTags  []string `json:"industryTags,omitempty"`
}

// FinancialDetailsInput carries financial fields on create/update
type FinancialDetailsInput struct {
	RevenueValue   *float64 `json:"revenueValue,omitempty"`
	EbitdaValue    *float64 `json:"ebitdaValue,omitempty"`
	EbitdaMargin   *float64 `json:"ebitdaMargin,omitempty"`
	NetDebt        *float64 `json:"netDebt,omitempty"`
	Currency       *string  `json:"currency,omitempty"`
	FiscalYear     *int     `json:"fiscalYear,omitempty"`
	AuditedByThird *bool    `json:"auditedByThird,omitempty"`
}

// CreateBuyerRequest creates a buyer profile with optional detail records
type CreateBuyerRequest struct {
	BuyerID          string                 `json:"buyerId" validate:"required"`
	Notes            *string                `json:"notes,omitempty"`
	TargetIndustries []string               `json:"targetIndustries,omitempty"`
	BudgetMin        *float64               `json:"budgetMin,omitempty"`
	BudgetMax        *float64               `json:"budgetMax,omitempty"`
	CompanyOverview  *CompanyOverviewInput  `json:"companyOverview,omitempty"`
	FinancialDetails *FinancialDetailsInput `json:"financialDetails,omitempty"`
}

// UpdateBuyerRequest applies partial updates to a buyer profile
type UpdateBuyerRequest struct {
	Pinned           *bool                  `json:"pinned,omitempty"`
	Status           *CompanyStatus         `json:"status,omitempty"`
	Notes            *string                `json:"notes,omitempty"`
	TargetIndustries []string               `json:"targetIndustries,omitempty"`
	BudgetMin        *float64               `json:"budgetMin,omitempty"`
	BudgetMax        *float64               `json:"budgetMax,omitempty"`
	CompanyOverview  *CompanyOverviewInput  `json:"companyOverview,omitempty"`
	FinancialDetails *FinancialDetailsInput `json:"financialDetails,omitempty"`
}

// CreateSellerRequest creates a seller profile with optional detail records
type CreateSellerRequest struct {
	SellerID         string                 `json:"sellerId" validate:"required"`
	Notes            *string                `json:"notes,omitempty"`
	AskingPrice      *float64               `json:"askingPrice,omitempty"`
	ReasonForSale    *string                `json:"reasonForSale,omitempty"`
	CompanyOverview  *CompanyOverviewInput  `json:"companyOverview,omitempty"`
	FinancialDetails *FinancialDetailsInput `json:"financialDetails,omitempty"`
}

// UpdateSellerRequest applies partial updates to a seller profile
type UpdateSellerRequest struct {
	Pinned           *bool                  `json:"pinned,omitempty"`
	Status           *CompanyStatus         `json:"status,omitempty"`
	Notes            *string                `json:"notes,omitempty"`
	AskingPrice      *float64               `json:"askingPrice,omitempty"`
	ReasonForSale    *string                `json:"reasonForSale,omitempty"`
	CompanyOverview  *CompanyOverviewInput  `json:"companyOverview,omitempty"`
	FinancialDetails *FinancialDetailsInput `json:"financialDetails,omitempty"`
}

// CreateDealRequest pairs a buyer with a seller
type CreateDealRequest struct {
	Title     string   `json:"title" validate:"required"`
	BuyerID   string   `json:"buyerId" validate:"required"`
	SellerID  string   `json:"sellerId" validate:"required"`
	DealValue *float64 `json:"dealValue,omitempty"`
	Currency  *string  `json:"currency,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// UpdateDealStageRequest moves a deal to a new pipeline stage
type UpdateDealStageRequest struct {
	Stage DealStage `json:"stage" validate:"required"`
}

// GrantShareRequest grants one partner row access to one entity
type GrantShareRequest struct {
	PartnerID  string `json:"partnerId" validate:"required"`
	EntityType string `json:"entityType" validate:"required"`
	EntityID   string `json:"entityId" validate:"required"`
}

// UpdateSharingConfigRequest replaces the allow-list for one entity type
type UpdateSharingConfigRequest struct {
	Fields FieldMap `json:"fields" validate:"required"`
}

// SharingConfigResponse echoes the stored config; RejectedKeys surfaces
// configured names that do not match any known field (admin typo aid, not
// an error)
type SharingConfigResponse struct {
	EntityType   string   `json:"entityType"`
	Fields       FieldMap `json:"fields"`
	RejectedKeys []string `json:"rejectedKeys,omitempty"`
	UpdatedAt    string   `json:"updatedAt"`
}

// PromoteTagRequest adds a free-text industry tag to the canonical taxonomy
type PromoteTagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

// MergeTagRequest rewrites a stray tag to a canonical industry name across
// all company overviews
type MergeTagRequest struct {
	FromTag string `json:"fromTag" validate:"required"`
	IntoID  string `json:"intoId" validate:"required"`
}

// UnknownTag is one reconciliation finding: a tag in use that is absent from
// the canonical taxonomy
type UnknownTag struct {
	Tag         string   `json:"tag"`
	Occurrences int      `json:"occurrences"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// MatchSuggestion scores one buyer/seller pairing
type MatchSuggestion struct {
	BuyerID       string   `json:"buyerId"`
	SellerID      string   `json:"sellerId"`
	Score         float64  `json:"score"`
	SharedTags    []string `json:"sharedTags,omitempty"`
	BudgetFit     bool     `json:"budgetFit"`
	SameGeography bool     `json:"sameGeography"`
}

// ImportBatchResponse reports the outcome of a spreadsheet import
type ImportBatchResponse struct {
	BatchID      string    `json:"batchId"`
	FileName     string    `json:"fileName"`
	Format       string    `json:"format"`
	Status       string    `json:"status"`
	TotalRows    int       `json:"totalRows"`
	InsertedRows int       `json:"insertedRows"`
	Errors       RowErrors `json:"errors,omitempty"`
	CreatedAt    string    `json:"createdAt"`
}

// ListQuery carries pagination/search/sort options shared by list endpoints
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Sort    string
}

// Normalize clamps pagination values into the allowed range
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPageSize
	}
	if q.PerPage > MaxPageSize {
		q.PerPage = MaxPageSize
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// CollectionResponse Generic collection response
type CollectionResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}
