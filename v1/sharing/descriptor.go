package sharing

import (
	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// Relation describes one eager-loadable association of a projectable entity
type Relation struct {
	// Name is the canonical camelCase relation key used in configuration
	// and response metadata
	Name string
	// Association is the GORM association path used for Preload
	Association string
	// RootFK is the foreign key column on the root table, empty when the
	// relation side holds the key (has-many)
	RootFK string
	// Columns is the closed set of selectable columns; configured names
	// outside it are dropped and logged
	Columns []string
	// ForceColumns are always selected when the relation is loaded,
	// permission or not (geography for flag/label rendering)
	ForceColumns []string
	// NestedAssociations are unconditionally preloaded alongside the
	// relation (the country lookup), never column-restricted
	NestedAssociations []string
	// FixedColumns, when non-nil, locks the partner projection to exactly
	// this set regardless of configuration (deal minimization)
	FixedColumns []string
}

// EntityDescriptor enumerates the projectable surface of one entity type.
// The closed column tables make an unknown configured name a detectable,
// loggable anomaly instead of silent acceptance.
type EntityDescriptor struct {
	Type models.EntityType
	// RootAlways are structural columns every list view needs regardless of
	// permission: pinned-first ordering and audit display
	RootAlways []string
	// RootColumns is the closed set of selectable root columns
	RootColumns []string
	Relations   map[string]Relation
}

// rootAuditColumns are required by every list surface: pin ordering,
// creation/update display and status badges.
var rootAuditColumns = []string{"pinned", "status", "created_at", "updated_at"}

var detailRelationColumns = map[string][]string{
	"companyOverview": {
		IdentifierColumn, "reg_name", "trading_name", "website", "description",
		"hq_country", "city", "founded_year", "employee_count", "industry_tags",
	},
	"financialDetails": {
		IdentifierColumn, "revenue_value", "ebitda_value", "ebitda_margin",
		"net_debt", "currency", "fiscal_year", "audited_by_third",
	},
	"partnershipDetails": {
		IdentifierColumn, "contact_name", "contact_email", "contact_phone",
		"referred_by", "engagement_terms",
	},
	"teaserCenter": {
		IdentifierColumn, "headline", "summary", "document_url", "published",
	},
}

func detailRelations(parentFK string) map[string]Relation {
	return map[string]Relation{
		"companyOverview": {
			Name:               "companyOverview",
			Association:        "CompanyOverview",
			RootFK:             "company_overview_id",
			Columns:            detailRelationColumns["companyOverview"],
			ForceColumns:       []string{"hq_country"},
			NestedAssociations: []string{"CompanyOverview.Country"},
		},
		"financialDetails": {
			Name:        "financialDetails",
			Association: "FinancialDetails",
			RootFK:      "financial_details_id",
			Columns:     detailRelationColumns["financialDetails"],
		},
		"partnershipDetails": {
			Name:        "partnershipDetails",
			Association: "PartnershipDetails",
			RootFK:      "partnership_details_id",
			Columns:     detailRelationColumns["partnershipDetails"],
		},
		"teaserCenter": {
			Name:        "teaserCenter",
			Association: "TeaserCenter",
			RootFK:      "teaser_center_id",
			Columns:     detailRelationColumns["teaserCenter"],
		},
		// Deal data is always minimized for partners; the fixed set is not
		// widenable through configuration.
		"deals": {
			Name:         "deals",
			Association:  "Deals",
			FixedColumns: []string{IdentifierColumn, parentFK, "stage", "progress", "created_at"},
		},
	}
}

var buyerDescriptor = EntityDescriptor{
	Type:       models.EntityTypeBuyer,
	RootAlways: rootAuditColumns,
	RootColumns: []string{
		IdentifierColumn, "buyer_id", "pinned", "status", "notes", "owner_id",
		"target_industries", "budget_min", "budget_max",
		"company_overview_id", "financial_details_id",
		"partnership_details_id", "teaser_center_id",
		"created_at", "updated_at",
	},
	Relations: detailRelations("buyer_id"),
}

var sellerDescriptor = EntityDescriptor{
	Type:       models.EntityTypeSeller,
	RootAlways: rootAuditColumns,
	RootColumns: []string{
		IdentifierColumn, "seller_id", "pinned", "status", "notes", "owner_id",
		"asking_price", "reason_for_sale",
		"company_overview_id", "financial_details_id",
		"partnership_details_id", "teaser_center_id",
		"created_at", "updated_at",
	},
	Relations: detailRelations("seller_id"),
}

// DescriptorFor returns the descriptor for an entity type
func DescriptorFor(entityType models.EntityType) *EntityDescriptor {
	switch entityType {
	case models.EntityTypeSeller:
		return &sellerDescriptor
	default:
		return &buyerDescriptor
	}
}

func (d *EntityDescriptor) hasRootColumn(column string) bool {
	for _, c := range d.RootColumns {
		if c == column {
			return true
		}
	}
	return false
}

func (r *Relation) hasColumn(column string) bool {
	for _, c := range r.Columns {
		if c == column {
			return true
		}
	}
	return false
}
