package sharing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

func TestPlan_DefaultDeny(t *testing.T) {
	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(nil), d)

	assert.ElementsMatch(t,
		[]string{"id", "pinned", "status", "created_at", "updated_at"},
		plan.RootColumns(),
		"an absent config plans the identifier and structural columns only")
	assert.Empty(t, plan.Relations)
}

func TestPlan_RootFKAddedPerRelation(t *testing.T) {
	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(models.FieldMap{
		"financial_details.revenue_value": true,
	}), d)

	assert.True(t, plan.Root.Has("financial_details_id"),
		"enabling a relation pulls its foreign key into the root selection")
	assert.False(t, plan.Root.Has("company_overview_id"),
		"disabled relations contribute nothing")
}

func TestPlan_ForcedGeographyColumn(t *testing.T) {
	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(models.FieldMap{
		"company_overview.reg_name": true,
	}), d)

	cols := plan.Relations["companyOverview"]
	assert.True(t, cols.Has("hq_country"),
		"the geography column rides along whenever the overview is loaded")
	assert.True(t, cols.Has("reg_name"))
	assert.True(t, cols.Has(IdentifierColumn))
}

func TestPlan_RelationWithoutAttributes(t *testing.T) {
	d := DescriptorFor(models.EntityTypeSeller)
	fs := Resolve(nil)
	fs.Relationships["teaserCenter"] = NewFieldSet(IdentifierColumn)

	plan := Plan(fs, d)

	assert.Equal(t, []string{"id"}, plan.RelationColumns("teaserCenter"))
}

func TestPlan_FixedDealProjection(t *testing.T) {
	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(models.FieldMap{
		"deals.deal_value": true,
		"deals.notes":      true,
	}), d)

	assert.ElementsMatch(t,
		[]string{"id", "buyer_id", "stage", "progress", "created_at"},
		plan.RelationColumns("deals"),
		"deal columns cannot be widened through configuration")
	assert.False(t, plan.Root.Has("deals_id"))
}

func TestPlan_UnknownNamesDropped(t *testing.T) {
	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(models.FieldMap{
		"password_hash":            true,
		"secret_relation.anything": true,
		"company_overview.salary":  true,
		"company_overview.city":    true,
	}), d)

	assert.False(t, plan.Root.Has("password_hash"))
	_, ok := plan.Relations["secretRelation"]
	assert.False(t, ok)

	cols := plan.Relations["companyOverview"]
	assert.False(t, cols.Has("salary"))
	assert.True(t, cols.Has("city"), "valid siblings of a dropped name survive")
}

func TestPlan_Monotonicity(t *testing.T) {
	d := DescriptorFor(models.EntityTypeBuyer)
	base := models.FieldMap{
		"buyer_id":                  true,
		"company_overview.reg_name": true,
	}
	wider := models.FieldMap{
		"buyer_id":                   true,
		"company_overview.reg_name":  true,
		"notes":                      true,
		"financial_details.turnover": true,
	}

	basePlan := Plan(Resolve(base), d)
	widerPlan := Plan(Resolve(wider), d)

	for column := range basePlan.Root {
		assert.True(t, widerPlan.Root.Has(column),
			"widening the config must never drop root column %s", column)
	}
	for name, cols := range basePlan.Relations {
		widerCols, ok := widerPlan.Relations[name]
		assert.True(t, ok)
		for column := range cols {
			assert.True(t, widerCols.Has(column),
				"widening the config must never drop %s.%s", name, column)
		}
	}
}
