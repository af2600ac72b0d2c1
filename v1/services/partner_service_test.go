package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/sharing"
)

// partnerFixture wires the full partner read path against one seeded buyer,
// seller and deal: sharing config, row grants, projection engine.
type partnerFixture struct {
	db      *gorm.DB
	engine  *sharing.Engine
	service *PartnerService
	shares  *ShareService
}

func newPartnerFixture(t *testing.T) *partnerFixture {
	t.Helper()

	db := SetupSQLiteTestDB(t)
	engine := sharing.NewEngine(sharing.NewConfigStore(db, nil, 0))
	return &partnerFixture{
		db:      db,
		engine:  engine,
		service: NewPartnerService(db, engine),
		shares:  NewShareService(db),
	}
}

func (f *partnerFixture) seedBuyer(t *testing.T, id, buyerID string) *models.Buyer {
	t.Helper()

	overview := models.CompanyOverview{
		ID:        "cov_" + id,
		RegName:   "Reg " + buyerID,
		Website:   "https://" + buyerID + ".example",
		HQCountry: "DE",
	}
	require.NoError(t, f.db.Create(&overview).Error)

	buyer := models.Buyer{
		ID:                "buy_" + id,
		BuyerID:           buyerID,
		Status:            models.CompanyStatusActive,
		Notes:             "internal broker notes",
		BudgetMax:         10_000_000,
		CompanyOverviewID: &overview.ID,
	}
	require.NoError(t, f.db.Create(&buyer).Error)
	return &buyer
}

func (f *partnerFixture) seedSeller(t *testing.T, id, sellerID string) *models.Seller {
	t.Helper()

	seller := models.Seller{
		ID:          "sel_" + id,
		SellerID:    sellerID,
		Status:      models.CompanyStatusActive,
		AskingPrice: 4_000_000,
		Notes:       "internal broker notes",
	}
	require.NoError(t, f.db.Create(&seller).Error)
	return &seller
}

func (f *partnerFixture) grant(t *testing.T, partnerID, entityType, entityID string) {
	t.Helper()
	_, err := f.shares.GrantShare(context.Background(), &models.GrantShareRequest{
		PartnerID:  partnerID,
		EntityType: entityType,
		EntityID:   entityID,
	}, "usr_admin1")
	require.NoError(t, err)
}

func (f *partnerFixture) configure(t *testing.T, entityType models.EntityType, fields models.FieldMap) {
	t.Helper()
	require.NoError(t, f.engine.Store().Put(context.Background(), entityType, fields))
}

func TestPartnerService_ListSharedBuyers(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := context.Background()

	f.seedBuyer(t, "p1", "B-1001")
	f.seedBuyer(t, "p2", "B-1002")
	f.seedBuyer(t, "p3", "B-1003")

	f.grant(t, "ptn_1", "buyer", "buy_p1")
	f.grant(t, "ptn_1", "buyer", "buy_p2")

	f.configure(t, models.EntityTypeBuyer, models.FieldMap{
		"buyer_id":                  true,
		"company_overview.reg_name": true,
	})

	t.Run("returns only shared rows", func(t *testing.T) {
		envelope, err := f.service.ListSharedBuyers(ctx, "ptn_1", models.ListQuery{})
		require.NoError(t, err)

		assert.Equal(t, int64(2), envelope.Meta.Total)
		require.Len(t, envelope.Data, 2)
		for _, record := range envelope.Data {
			assert.NotEqual(t, "buy_p3", record["id"])
		}
	})

	t.Run("projects only enabled fields", func(t *testing.T) {
		envelope, err := f.service.ListSharedBuyers(ctx, "ptn_1", models.ListQuery{})
		require.NoError(t, err)

		record := envelope.Data[0]
		assert.Contains(t, record, "id")
		assert.Contains(t, record, "buyerId")
		assert.NotContains(t, record, "notes")
		assert.NotContains(t, record, "budgetMax")
		assert.NotContains(t, record, "status")

		overview, ok := record["companyOverview"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, overview, "regName")
		assert.Contains(t, overview, "hqCountry")
		assert.NotContains(t, overview, "website")
	})

	t.Run("partner without grants sees nothing", func(t *testing.T) {
		envelope, err := f.service.ListSharedBuyers(ctx, "ptn_other", models.ListQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), envelope.Meta.Total)
		assert.Empty(t, envelope.Data)
	})

	t.Run("search narrows shared rows", func(t *testing.T) {
		envelope, err := f.service.ListSharedBuyers(ctx, "ptn_1", models.ListQuery{Search: "1002"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), envelope.Meta.Total)
		require.Len(t, envelope.Data, 1)
		assert.Equal(t, "buy_p2", envelope.Data[0]["id"])
	})
}

func TestPartnerService_GetSharedBuyer(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := context.Background()

	f.seedBuyer(t, "g1", "B-2001")
	f.seedBuyer(t, "g2", "B-2002")
	f.grant(t, "ptn_1", "buyer", "buy_g1")

	f.configure(t, models.EntityTypeBuyer, models.FieldMap{"buyer_id": true})

	t.Run("returns shared buyer projected", func(t *testing.T) {
		envelope, err := f.service.GetSharedBuyer(ctx, "ptn_1", "buy_g1")
		require.NoError(t, err)

		assert.Equal(t, "buy_g1", envelope.Data["id"])
		assert.Equal(t, "B-2001", envelope.Data["buyerId"])
		assert.NotContains(t, envelope.Data, "notes")
	})

	t.Run("unshared buyer reads as not found", func(t *testing.T) {
		_, err := f.service.GetSharedBuyer(ctx, "ptn_1", "buy_g2")
		assert.Error(t, err)
	})

	t.Run("missing buyer reads as not found", func(t *testing.T) {
		_, err := f.service.GetSharedBuyer(ctx, "ptn_1", "buy_missing")
		assert.Error(t, err)
	})
}

func TestPartnerService_GetSharedSeller(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := context.Background()

	f.seedSeller(t, "s1", "S-1001")
	f.grant(t, "ptn_1", "seller", "sel_s1")

	f.configure(t, models.EntityTypeSeller, models.FieldMap{
		"seller_id":    true,
		"asking_price": true,
	})

	envelope, err := f.service.GetSharedSeller(ctx, "ptn_1", "sel_s1")
	require.NoError(t, err)

	assert.Equal(t, "S-1001", envelope.Data["sellerId"])
	assert.EqualValues(t, 4_000_000, envelope.Data["askingPrice"])
	assert.NotContains(t, envelope.Data, "notes")
}

func TestPartnerService_AbsentConfigYieldsIdentifierOnly(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := context.Background()

	f.seedBuyer(t, "n1", "B-3001")
	f.grant(t, "ptn_1", "buyer", "buy_n1")

	envelope, err := f.service.GetSharedBuyer(ctx, "ptn_1", "buy_n1")
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"id": "buy_n1"}, envelope.Data)
	assert.Equal(t, []string{"id"}, envelope.Meta.AllowedFields.Root)
}

func TestPartnerService_ListSharedDeals(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := context.Background()

	buyer := f.seedBuyer(t, "d1", "B-4001")
	seller := f.seedSeller(t, "d2", "S-4001")
	other := f.seedSeller(t, "d3", "S-4002")

	deals := []models.Deal{
		{
			ID: "deal_1", Title: "Project Falke", BuyerID: buyer.ID, SellerID: seller.ID,
			Stage: models.DealStageNegotiation, Progress: 57, DealValue: 9_000_000, Notes: "confidential",
		},
		{
			ID: "deal_2", Title: "Project Adler", BuyerID: "buy_elsewhere", SellerID: other.ID,
			Stage: models.DealStageProspecting, Progress: 14,
		},
	}
	for i := range deals {
		require.NoError(t, f.db.Create(&deals[i]).Error)
	}

	f.grant(t, "ptn_1", "buyer", buyer.ID)

	t.Run("deals touching shared entities only", func(t *testing.T) {
		resp, err := f.service.ListSharedDeals(ctx, "ptn_1", models.ListQuery{})
		require.NoError(t, err)

		views, ok := resp.Items.([]models.PartnerDealView)
		require.True(t, ok)
		require.Len(t, views, 1)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, "deal_1", views[0].ID)
	})

	t.Run("fixed projection carries pipeline position only", func(t *testing.T) {
		resp, err := f.service.ListSharedDeals(ctx, "ptn_1", models.ListQuery{})
		require.NoError(t, err)

		views := resp.Items.([]models.PartnerDealView)
		view := views[0]
		assert.Equal(t, models.DealStageNegotiation, view.Stage)
		assert.Equal(t, 57, view.Progress)
		assert.Equal(t, buyer.ID, view.BuyerID)
		assert.False(t, view.CreatedAt.IsZero())
	})

	t.Run("seller-side grants surface deals too", func(t *testing.T) {
		resp, err := f.service.ListSharedDeals(ctx, "ptn_2", models.ListQuery{})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Count)

		f.grant(t, "ptn_2", "seller", other.ID)
		resp, err = f.service.ListSharedDeals(ctx, "ptn_2", models.ListQuery{})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Count)
		views := resp.Items.([]models.PartnerDealView)
		assert.Equal(t, "deal_2", views[0].ID)
	})
}

func TestPartnerService_ConfigChangeTakesEffect(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := context.Background()

	f.seedBuyer(t, "c1", "B-5001")
	f.grant(t, "ptn_1", "buyer", "buy_c1")

	f.configure(t, models.EntityTypeBuyer, models.FieldMap{"buyer_id": true})
	envelope, err := f.service.GetSharedBuyer(ctx, "ptn_1", "buy_c1")
	require.NoError(t, err)
	assert.NotContains(t, envelope.Data, "budgetMax")

	f.configure(t, models.EntityTypeBuyer, models.FieldMap{
		"buyer_id":   true,
		"budget_max": true,
	})
	envelope, err = f.service.GetSharedBuyer(ctx, "ptn_1", "buy_c1")
	require.NoError(t, err)
	assert.EqualValues(t, 10_000_000, envelope.Data["budgetMax"])
}
