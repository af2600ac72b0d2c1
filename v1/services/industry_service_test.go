package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

func seedTaggedOverview(t *testing.T, db *gorm.DB, id string, tags ...string) {
	t.Helper()
	require.NoError(t, db.Create(&models.CompanyOverview{
		ID:           "cov_" + id,
		RegName:      "Reg " + id,
		IndustryTags: models.StringList(tags),
	}).Error)
}

func TestIndustryService_CreateIndustry(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewIndustryService(db)
	ctx := context.Background()

	t.Run("creates with slug", func(t *testing.T) {
		industry, err := service.CreateIndustry(ctx, "Health Care")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(industry.IndustryID, "ind_"))
		assert.Equal(t, "Health Care", industry.Name)
		assert.Equal(t, "health-care", industry.Slug)
	})

	t.Run("deduplicates by slug", func(t *testing.T) {
		_, err := service.CreateIndustry(ctx, "health-care")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "industry already exists")
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := service.CreateIndustry(ctx, "   ")
		assert.Error(t, err)
	})
}

func TestIndustryService_Reconcile(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewIndustryService(db)
	ctx := context.Background()

	_, err := service.CreateIndustry(ctx, "FinTech")
	require.NoError(t, err)
	_, err = service.CreateIndustry(ctx, "Manufacturing")
	require.NoError(t, err)

	seedTaggedOverview(t, db, "r1", "FinTech", "Fintec", "Robotics")
	seedTaggedOverview(t, db, "r2", "Robotics")
	require.NoError(t, db.Create(&models.Buyer{
		ID:               "buy_r1",
		BuyerID:          "B-7001",
		TargetIndustries: models.StringList{"Robotics", "FinTech"},
	}).Error)

	findings, err := service.Reconcile(ctx)
	require.NoError(t, err)

	t.Run("canonical tags are not reported", func(t *testing.T) {
		for _, finding := range findings {
			assert.NotEqual(t, "FinTech", finding.Tag)
			assert.NotEqual(t, "Manufacturing", finding.Tag)
		}
	})

	t.Run("counts occurrences across overviews and buyer targets", func(t *testing.T) {
		require.NotEmpty(t, findings)
		assert.Equal(t, "Robotics", findings[0].Tag)
		assert.Equal(t, 3, findings[0].Occurrences)
	})

	t.Run("near misses get suggestions", func(t *testing.T) {
		var fintec *models.UnknownTag
		for i := range findings {
			if findings[i].Tag == "Fintec" {
				fintec = &findings[i]
			}
		}
		require.NotNil(t, fintec)
		assert.Contains(t, fintec.Suggestions, "FinTech")
	})
}

func TestIndustryService_PromoteTag(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewIndustryService(db)
	ctx := context.Background()

	seedTaggedOverview(t, db, "p1", "AgriTech")

	industry, err := service.PromoteTag(ctx, &models.PromoteTagRequest{Tag: "AgriTech"})
	require.NoError(t, err)
	assert.Equal(t, "AgriTech", industry.Name)

	findings, err := service.Reconcile(ctx)
	require.NoError(t, err)
	for _, finding := range findings {
		assert.NotEqual(t, "AgriTech", finding.Tag)
	}
}

func TestIndustryService_MergeTag(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewIndustryService(db)
	ctx := context.Background()

	target, err := service.CreateIndustry(ctx, "FinTech")
	require.NoError(t, err)

	seedTaggedOverview(t, db, "m1", "Fintec", "Robotics")
	seedTaggedOverview(t, db, "m2", "fintec", "FinTech")
	seedTaggedOverview(t, db, "m3", "Robotics")
	require.NoError(t, db.Create(&models.Buyer{
		ID:               "buy_m1",
		BuyerID:          "B-8001",
		TargetIndustries: models.StringList{"Fintec"},
	}).Error)

	rewritten, err := service.MergeTag(ctx, &models.MergeTagRequest{
		FromTag: "Fintec",
		IntoID:  target.IndustryID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rewritten)

	t.Run("rewrites stray spellings to the canonical name", func(t *testing.T) {
		var overview models.CompanyOverview
		require.NoError(t, db.First(&overview, "id = ?", "cov_m1").Error)
		assert.Equal(t, models.StringList{"FinTech", "Robotics"}, overview.IndustryTags)

		var buyer models.Buyer
		require.NoError(t, db.First(&buyer, "id = ?", "buy_m1").Error)
		assert.Equal(t, models.StringList{"FinTech"}, buyer.TargetIndustries)
	})

	t.Run("drops the rewrite when it would duplicate", func(t *testing.T) {
		var overview models.CompanyOverview
		require.NoError(t, db.First(&overview, "id = ?", "cov_m2").Error)
		assert.Equal(t, models.StringList{"FinTech"}, overview.IndustryTags)
	})

	t.Run("untouched records are not counted", func(t *testing.T) {
		var overview models.CompanyOverview
		require.NoError(t, db.First(&overview, "id = ?", "cov_m3").Error)
		assert.Equal(t, models.StringList{"Robotics"}, overview.IndustryTags)
	})

	t.Run("unknown target industry errors", func(t *testing.T) {
		_, err := service.MergeTag(ctx, &models.MergeTagRequest{FromTag: "x", IntoID: "ind_missing"})
		assert.Error(t, err)
	})
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"FinTech":        "fintech",
		"Health Care":    "health-care",
		" health-care ":  "health-care",
		"Oil & Gas":      "oil-gas",
		"  Spaced  Out ": "spaced-out",
		"":               "",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "Slugify(%q)", input)
	}
}
