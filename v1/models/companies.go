package models

// Country represents the countries lookup table used for flag/label rendering
type Country struct {
	Code      string `gorm:"primarykey;column:code" json:"code"`
	Name      string `gorm:"column:name;not null" json:"name"`
	FlagEmoji string `gorm:"column:flag_emoji" json:"flagEmoji"`
}

// TableName sets the table name for GORM
func (Country) TableName() string {
	return "countries"
}

// CompanyOverview represents the company_overviews table. Shared detail
// record for both buyer and seller profiles.
type CompanyOverview struct {
	ID            string     `gorm:"primarykey;column:id" json:"id"`
	RegName       string     `gorm:"column:reg_name;not null" json:"regName"`
	TradingName   string     `gorm:"column:trading_name" json:"tradingName"`
	Website       string     `gorm:"column:website" json:"website"`
	Description   string     `gorm:"column:description" json:"description"`
	HQCountry     string     `gorm:"column:hq_country" json:"hqCountry"`
	City          string     `gorm:"column:city" json:"city"`
	FoundedYear   int        `gorm:"column:founded_year" json:"foundedYear"`
	EmployeeCount int        `gorm:"column:employee_count" json:"employeeCount"`
	IndustryTags  StringList `gorm:"column:industry_tags" json:"industryTags"`

	// Relationships
	Country *Country `gorm:"foreignKey:HQCountry;references:Code" json:"country,omitempty"`
}

// TableName sets the table name for GORM
func (CompanyOverview) TableName() string {
	return "company_overviews"
}

// FinancialDetails represents the financial_details table
type FinancialDetails struct {
	ID             string  `gorm:"primarykey;column:id" json:"id"`
	RevenueValue   float64 `gorm:"column:revenue_value" json:"revenueValue"`
	EbitdaValue    float64 `gorm:"column:ebitda_value" json:"ebitdaValue"`
	EbitdaMargin   float64 `gorm:"column:ebitda_margin" json:"ebitdaMargin"`
	NetDebt        float64 `gorm:"column:net_debt" json:"netDebt"`
	Currency       string  `gorm:"column:currency" json:"currency"`
	FiscalYear     int     `gorm:"column:fiscal_year" json:"fiscalYear"`
	AuditedByThird bool    `gorm:"column:audited_by_third" json:"auditedByThird"`
}

// TableName sets the table name for GORM
func (FinancialDetails) TableName() string {
	return "financial_details"
}

// PartnershipDetails represents the partnership_details table
type PartnershipDetails struct {
	ID              string `gorm:"primarykey;column:id" json:"id"`
	ContactName     string `gorm:"column:contact_name" json:"contactName"`
	ContactEmail    string `gorm:"column:contact_email" json:"contactEmail"`
	ContactPhone    string `gorm:"column:contact_phone" json:"contactPhone"`
	ReferredBy      string `gorm:"column:referred_by" json:"referredBy"`
	EngagementTerms string `gorm:"column:engagement_terms" json:"engagementTerms"`
}

// TableName sets the table name for GORM
func (PartnershipDetails) TableName() string {
	return "partnership_details"
}

// TeaserCenter represents the teaser_centers table. Holds the anonymous
// teaser material circulated before an NDA is signed.
type TeaserCenter struct {
	ID          string `gorm:"primarykey;column:id" json:"id"`
	Headline    string `gorm:"column:headline" json:"headline"`
	Summary     string `gorm:"column:summary" json:"summary"`
	DocumentURL string `gorm:"column:document_url" json:"documentUrl"`
	Published   bool   `gorm:"column:published" json:"published"`
}

// TableName sets the table name for GORM
func (TeaserCenter) TableName() string {
	return "teaser_centers"
}

// Buyer represents the buyers table: an investor profile looking to acquire
type Buyer struct {
	ID       string        `gorm:"primarykey;column:id" json:"id"`
	BuyerID  string        `gorm:"column:buyer_id;not null;uniqueIndex" json:"buyerId"`
	Pinned   bool          `gorm:"column:pinned" json:"pinned"`
	Status   CompanyStatus `gorm:"column:status;not null" json:"status"`
	Notes    string        `gorm:"column:notes" json:"notes"`
	OwnerID  string        `gorm:"column:owner_id" json:"ownerId"`

	TargetIndustries StringList `gorm:"column:target_industries" json:"targetIndustries"`
	BudgetMin        float64    `gorm:"column:budget_min" json:"budgetMin"`
	BudgetMax        float64    `gorm:"column:budget_max" json:"budgetMax"`

	CompanyOverviewID    *string `gorm:"column:company_overview_id" json:"companyOverviewId,omitempty"`
	FinancialDetailsID   *string `gorm:"column:financial_details_id" json:"financialDetailsId,omitempty"`
	PartnershipDetailsID *string `gorm:"column:partnership_details_id" json:"partnershipDetailsId,omitempty"`
	TeaserCenterID       *string `gorm:"column:teaser_center_id" json:"teaserCenterId,omitempty"`
	BaseModel

	// Relationships
	CompanyOverview    *CompanyOverview    `gorm:"foreignKey:CompanyOverviewID;references:ID" json:"companyOverview,omitempty"`
	FinancialDetails   *FinancialDetails   `gorm:"foreignKey:FinancialDetailsID;references:ID" json:"financialDetails,omitempty"`
	PartnershipDetails *PartnershipDetails `gorm:"foreignKey:PartnershipDetailsID;references:ID" json:"partnershipDetails,omitempty"`
	TeaserCenter       *TeaserCenter       `gorm:"foreignKey:TeaserCenterID;references:ID" json:"teaserCenter,omitempty"`
	Deals              []Deal              `gorm:"foreignKey:BuyerID;references:ID" json:"deals,omitempty"`
}

// TableName sets the table name for GORM
func (Buyer) TableName() string {
	return "buyers"
}

// Seller represents the sellers table: a target company profile
type Seller struct {
	ID       string        `gorm:"primarykey;column:id" json:"id"`
	SellerID string        `gorm:"column:seller_id;not null;uniqueIndex" json:"sellerId"`
	Pinned   bool          `gorm:"column:pinned" json:"pinned"`
	Status   CompanyStatus `gorm:"column:status;not null" json:"status"`
	Notes    string        `gorm:"column:notes" json:"notes"`
	OwnerID  string        `gorm:"column:owner_id" json:"ownerId"`

	AskingPrice float64 `gorm:"column:asking_price" json:"askingPrice"`
	ReasonFor   string  `gorm:"column:reason_for_sale" json:"reasonForSale"`

	CompanyOverviewID    *string `gorm:"column:company_overview_id" json:"companyOverviewId,omitempty"`
	FinancialDetailsID   *string `gorm:"column:financial_details_id" json:"financialDetailsId,omitempty"`
	PartnershipDetailsID *string `gorm:"column:partnership_details_id" json:"partnershipDetailsId,omitempty"`
	TeaserCenterID       *string `gorm:"column:teaser_center_id" json:"teaserCenterId,omitempty"`
	BaseModel

	// Relationships
	CompanyOverview    *CompanyOverview    `gorm:"foreignKey:CompanyOverviewID;references:ID" json:"companyOverview,omitempty"`
	FinancialDetails   *FinancialDetails   `gorm:"foreignKey:FinancialDetailsID;references:ID" json:"financialDetails,omitempty"`
	PartnershipDetails *PartnershipDetails `gorm:"foreignKey:PartnershipDetailsID;references:ID" json:"partnershipDetails,omitempty"`
	TeaserCenter       *TeaserCenter       `gorm:"foreignKey:TeaserCenterID;references:ID" json:"teaserCenter,omitempty"`
	Deals              []Deal              `gorm:"foreignKey:SellerID;references:ID" json:"deals,omitempty"`
}

// TableName sets the table name for GORM
func (Seller) TableName() string {
	return "sellers"
}
