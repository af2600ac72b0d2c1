package sharing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

func setupProjectionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Country{},
		&models.CompanyOverview{},
		&models.FinancialDetails{},
		&models.PartnershipDetails{},
		&models.TeaserCenter{},
		&models.Buyer{},
		&models.Seller{},
		&models.Deal{},
		&models.SharingConfig{},
	)
	require.NoError(t, err)

	return db
}

func seedBuyer(t *testing.T, db *gorm.DB) *models.Buyer {
	require.NoError(t, db.Create(&models.Country{
		Code: "DE", Name: "Germany", FlagEmoji: "\U0001F1E9\U0001F1EA",
	}).Error)

	overview := models.CompanyOverview{
		ID:        "cov_test1",
		RegName:   "Acme Industrieholding GmbH",
		Website:   "https://acme.example",
		HQCountry: "DE",
		City:      "Munich",
	}
	require.NoError(t, db.Create(&overview).Error)

	financials := models.FinancialDetails{
		ID:           "fin_test1",
		RevenueValue: 12_500_000,
		EbitdaValue:  2_400_000,
		Currency:     "EUR",
	}
	require.NoError(t, db.Create(&financials).Error)

	buyer := models.Buyer{
		ID:                 "buy_test1",
		BuyerID:            "B-1001",
		Status:             models.CompanyStatusActive,
		Notes:              "strictly internal remarks",
		OwnerID:            "usr_owner",
		TargetIndustries:   models.StringList{"Manufacturing"},
		BudgetMin:          1_000_000,
		BudgetMax:          20_000_000,
		CompanyOverviewID:  &overview.ID,
		FinancialDetailsID: &financials.ID,
	}
	require.NoError(t, db.Create(&buyer).Error)

	deal := models.Deal{
		ID:        "deal_test1",
		Title:     "Project Falcon",
		BuyerID:   buyer.ID,
		SellerID:  "sel_ext1",
		Stage:     models.DealStageNegotiation,
		Progress:  57,
		DealValue: 9_000_000,
		Currency:  "EUR",
		Notes:     "internal pricing notes",
	}
	require.NoError(t, db.Create(&deal).Error)

	return &buyer
}

func TestProject_ConfiguredFieldsOnly(t *testing.T) {
	db := setupProjectionTestDB(t)
	seedBuyer(t, db)

	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(models.FieldMap{
		"buyer_id":                  true,
		"company_overview.reg_name": true,
	}), d)

	var buyer models.Buyer
	err := Project(db.Model(&models.Buyer{}), plan, d).First(&buyer, "id = ?", "buy_test1").Error
	require.NoError(t, err)

	assert.Equal(t, "buy_test1", buyer.ID)
	assert.Equal(t, "B-1001", buyer.BuyerID)
	assert.Empty(t, buyer.Notes, "unconfigured root columns are not selected")
	assert.Empty(t, buyer.OwnerID)
	assert.Zero(t, buyer.BudgetMax)

	require.NotNil(t, buyer.CompanyOverview)
	assert.Equal(t, "Acme Industrieholding GmbH", buyer.CompanyOverview.RegName)
	assert.Empty(t, buyer.CompanyOverview.Website, "unconfigured relation columns are not selected")
	assert.Equal(t, "DE", buyer.CompanyOverview.HQCountry, "geography is always selected with the overview")

	require.NotNil(t, buyer.CompanyOverview.Country, "country lookup is preloaded unconditionally")
	assert.Equal(t, "Germany", buyer.CompanyOverview.Country.Name)

	assert.Nil(t, buyer.FinancialDetails, "disabled relations are not loaded")
}

func TestProject_AbsentConfigYieldsIdentifierOnly(t *testing.T) {
	db := setupProjectionTestDB(t)
	seedBuyer(t, db)

	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(nil), d)

	var buyer models.Buyer
	err := Project(db.Model(&models.Buyer{}), plan, d).First(&buyer, "id = ?", "buy_test1").Error
	require.NoError(t, err)

	assert.Equal(t, "buy_test1", buyer.ID)
	assert.Empty(t, buyer.BuyerID)
	assert.Empty(t, buyer.Notes)
	assert.Nil(t, buyer.CompanyOverview)
	assert.Nil(t, buyer.FinancialDetails)
	assert.Empty(t, buyer.Deals)
}

func TestProject_FixedDealColumns(t *testing.T) {
	db := setupProjectionTestDB(t)
	seedBuyer(t, db)

	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(models.FieldMap{
		"deals.title": true,
	}), d)

	var buyer models.Buyer
	err := Project(db.Model(&models.Buyer{}), plan, d).First(&buyer, "id = ?", "buy_test1").Error
	require.NoError(t, err)

	require.Len(t, buyer.Deals, 1)
	deal := buyer.Deals[0]
	assert.Equal(t, "deal_test1", deal.ID)
	assert.Equal(t, models.DealStageNegotiation, deal.Stage)
	assert.Equal(t, 57, deal.Progress)
	assert.Empty(t, deal.Title, "deal titles never reach partners")
	assert.Zero(t, deal.DealValue, "deal valuation never reaches partners")
	assert.Empty(t, deal.Notes)
}

func TestProject_ComposesWithRowScoping(t *testing.T) {
	db := setupProjectionTestDB(t)
	seedBuyer(t, db)

	second := models.Buyer{ID: "buy_test2", BuyerID: "B-1002", Status: models.CompanyStatusActive}
	require.NoError(t, db.Create(&second).Error)

	d := DescriptorFor(models.EntityTypeBuyer)
	plan := Plan(Resolve(models.FieldMap{"buyer_id": true}), d)

	var buyers []models.Buyer
	err := Project(db.Model(&models.Buyer{}), plan, d).
		Where("id IN ?", []string{"buy_test2"}).
		Find(&buyers).Error
	require.NoError(t, err)

	require.Len(t, buyers, 1)
	assert.Equal(t, "B-1002", buyers[0].BuyerID)
}
