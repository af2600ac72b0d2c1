package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// createPair inserts a buyer and seller to hang deals off
func createPair(t *testing.T, db *gorm.DB, suffix string) (string, string) {
	t.Helper()

	buyer := models.Buyer{ID: "buy_" + suffix, BuyerID: "B-" + suffix}
	require.NoError(t, db.Create(&buyer).Error)

	seller := models.Seller{ID: "sel_" + suffix, SellerID: "S-" + suffix}
	require.NoError(t, db.Create(&seller).Error)

	return buyer.ID, seller.ID
}

func TestDealService_CreateDeal(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewDealService(db)
	ctx := context.Background()

	buyerID, sellerID := createPair(t, db, "d1")

	t.Run("creates deal at prospecting", func(t *testing.T) {
		deal, err := service.CreateDeal(ctx, &models.CreateDealRequest{
			Title:     "Project Nordlicht",
			BuyerID:   buyerID,
			SellerID:  sellerID,
			DealValue: f64Ptr(9_000_000),
			Currency:  strPtr("EUR"),
		}, "usr_owner1")
		require.NoError(t, err)

		assert.Equal(t, models.DealStageProspecting, deal.Stage)
		assert.Equal(t, models.StageProgress(models.DealStageProspecting), deal.Progress)
		assert.Equal(t, 9_000_000.0, deal.DealValue)
		assert.Equal(t, "usr_owner1", deal.OwnerID)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := service.CreateDeal(ctx, &models.CreateDealRequest{Title: "Incomplete"}, "usr_owner1")
		assert.Error(t, err)
	})

	t.Run("rejects unknown buyer", func(t *testing.T) {
		_, err := service.CreateDeal(ctx, &models.CreateDealRequest{
			Title:    "Ghost buyer",
			BuyerID:  "buy_missing",
			SellerID: sellerID,
		}, "usr_owner1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "buyer not found")
	})

	t.Run("rejects unknown seller", func(t *testing.T) {
		_, err := service.CreateDeal(ctx, &models.CreateDealRequest{
			Title:    "Ghost seller",
			BuyerID:  buyerID,
			SellerID: "sel_missing",
		}, "usr_owner1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "seller not found")
	})
}

func TestDealService_UpdateStage(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewDealService(db)
	ctx := context.Background()

	buyerID, sellerID := createPair(t, db, "d2")

	newDeal := func(t *testing.T, title string) *models.Deal {
		t.Helper()
		deal, err := service.CreateDeal(ctx, &models.CreateDealRequest{
			Title: title, BuyerID: buyerID, SellerID: sellerID,
		}, "usr_owner1")
		require.NoError(t, err)
		return deal
	}

	t.Run("advances one stage forward", func(t *testing.T) {
		deal := newDeal(t, "Forward")

		moved, err := service.UpdateStage(ctx, deal.ID, models.DealStageTeaserSent)
		require.NoError(t, err)
		assert.Equal(t, models.DealStageTeaserSent, moved.Stage)
		assert.Equal(t, models.StageProgress(models.DealStageTeaserSent), moved.Progress)
	})

	t.Run("walks the whole pipeline to closed won", func(t *testing.T) {
		deal := newDeal(t, "Full walk")

		for _, stage := range models.PipelineOrder[1:] {
			moved, err := service.UpdateStage(ctx, deal.ID, stage)
			require.NoError(t, err)
			assert.Equal(t, stage, moved.Stage)
		}

		var final models.Deal
		require.NoError(t, db.First(&final, "id = ?", deal.ID).Error)
		assert.Equal(t, models.DealStageClosedWon, final.Stage)
		assert.Equal(t, 100, final.Progress)
	})

	t.Run("rejects skipping stages", func(t *testing.T) {
		deal := newDeal(t, "Skipper")

		_, err := service.UpdateStage(ctx, deal.ID, models.DealStageNegotiation)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid stage transition")
	})

	t.Run("rejects moving backwards", func(t *testing.T) {
		deal := newDeal(t, "Backwards")
		_, err := service.UpdateStage(ctx, deal.ID, models.DealStageTeaserSent)
		require.NoError(t, err)

		_, err = service.UpdateStage(ctx, deal.ID, models.DealStageProspecting)
		assert.Error(t, err)
	})

	t.Run("closed lost reachable from any open stage", func(t *testing.T) {
		deal := newDeal(t, "Walkaway")
		_, err := service.UpdateStage(ctx, deal.ID, models.DealStageTeaserSent)
		require.NoError(t, err)
		_, err = service.UpdateStage(ctx, deal.ID, models.DealStageNDASigned)
		require.NoError(t, err)

		moved, err := service.UpdateStage(ctx, deal.ID, models.DealStageClosedLost)
		require.NoError(t, err)
		assert.Equal(t, models.DealStageClosedLost, moved.Stage)
		assert.Equal(t, 100, moved.Progress)
	})

	t.Run("closed deals are terminal", func(t *testing.T) {
		deal := newDeal(t, "Terminal")
		_, err := service.UpdateStage(ctx, deal.ID, models.DealStageClosedLost)
		require.NoError(t, err)

		_, err = service.UpdateStage(ctx, deal.ID, models.DealStageTeaserSent)
		assert.Error(t, err)
		_, err = service.UpdateStage(ctx, deal.ID, models.DealStageClosedWon)
		assert.Error(t, err)
	})

	t.Run("unknown deal returns error", func(t *testing.T) {
		_, err := service.UpdateStage(ctx, "deal_missing", models.DealStageTeaserSent)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deal not found")
	})
}

func TestDealService_ListDeals(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewDealService(db)
	ctx := context.Background()

	buyerA, sellerA := createPair(t, db, "la")
	buyerB, sellerB := createPair(t, db, "lb")

	for i, pair := range [][2]string{{buyerA, sellerA}, {buyerA, sellerB}, {buyerB, sellerB}} {
		_, err := service.CreateDeal(ctx, &models.CreateDealRequest{
			Title:    fmt.Sprintf("Project %d", i+1),
			BuyerID:  pair[0],
			SellerID: pair[1],
		}, "usr_owner1")
		require.NoError(t, err)
	}

	t.Run("filters by buyer", func(t *testing.T) {
		deals, total, err := service.ListDeals(ctx, models.ListQuery{}, buyerA, "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, deals, 2)
	})

	t.Run("filters by seller", func(t *testing.T) {
		deals, total, err := service.ListDeals(ctx, models.ListQuery{}, "", sellerB, "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, deals, 2)
	})

	t.Run("filters by stage", func(t *testing.T) {
		_, total, err := service.ListDeals(ctx, models.ListQuery{}, "", "", models.DealStageProspecting)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		_, total, err = service.ListDeals(ctx, models.ListQuery{}, "", "", models.DealStageClosing)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("search filters by title", func(t *testing.T) {
		deals, total, err := service.ListDeals(ctx, models.ListQuery{Search: "Project 2"}, "", "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, deals, 1)
		assert.Equal(t, "Project 2", deals[0].Title)
	})
}

func TestDealService_GetDeal(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewDealService(db)
	ctx := context.Background()

	buyerID, sellerID := createPair(t, db, "g1")
	created, err := service.CreateDeal(ctx, &models.CreateDealRequest{
		Title: "Project Anker", BuyerID: buyerID, SellerID: sellerID,
	}, "usr_owner1")
	require.NoError(t, err)

	t.Run("preloads both company profiles", func(t *testing.T) {
		deal, err := service.GetDeal(ctx, created.ID)
		require.NoError(t, err)

		require.NotNil(t, deal.Buyer)
		assert.Equal(t, buyerID, deal.Buyer.ID)
		require.NotNil(t, deal.Seller)
		assert.Equal(t, sellerID, deal.Seller.ID)
	})

	t.Run("unknown deal returns error", func(t *testing.T) {
		_, err := service.GetDeal(ctx, "deal_missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deal not found")
	})
}
