package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

func TestShareService_GrantShare(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewShareService(db)
	ctx := context.Background()

	t.Run("creates a share", func(t *testing.T) {
		share, err := service.GrantShare(ctx, &models.GrantShareRequest{
			PartnerID:  "ptn_1",
			EntityType: "buyer",
			EntityID:   "buy_1",
		}, "usr_admin1")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(share.ShareID, "shr_"))
		assert.Equal(t, "ptn_1", share.PartnerID)
		assert.Equal(t, "buyer", share.EntityType)
		assert.Equal(t, "usr_admin1", share.GrantedBy)
	})

	t.Run("granting twice is idempotent", func(t *testing.T) {
		req := &models.GrantShareRequest{
			PartnerID:  "ptn_2",
			EntityType: "seller",
			EntityID:   "sel_1",
		}
		first, err := service.GrantShare(ctx, req, "usr_admin1")
		require.NoError(t, err)

		second, err := service.GrantShare(ctx, req, "usr_admin2")
		require.NoError(t, err)
		assert.Equal(t, first.ShareID, second.ShareID)

		var count int64
		require.NoError(t, db.Model(&models.PartnerShare{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("normalizes entity type aliases", func(t *testing.T) {
		share, err := service.GrantShare(ctx, &models.GrantShareRequest{
			PartnerID:  "ptn_3",
			EntityType: "Investor",
			EntityID:   "buy_2",
		}, "usr_admin1")
		require.NoError(t, err)
		assert.Equal(t, "buyer", share.EntityType)
	})

	t.Run("rejects unknown entity type", func(t *testing.T) {
		_, err := service.GrantShare(ctx, &models.GrantShareRequest{
			PartnerID:  "ptn_4",
			EntityType: "vendor",
			EntityID:   "x_1",
		}, "usr_admin1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown entity type")
	})

	t.Run("rejects missing identifiers", func(t *testing.T) {
		_, err := service.GrantShare(ctx, &models.GrantShareRequest{EntityType: "buyer"}, "usr_admin1")
		assert.Error(t, err)
	})
}

func TestShareService_RevokeShare(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewShareService(db)
	ctx := context.Background()

	share, err := service.GrantShare(ctx, &models.GrantShareRequest{
		PartnerID:  "ptn_1",
		EntityType: "buyer",
		EntityID:   "buy_1",
	}, "usr_admin1")
	require.NoError(t, err)

	t.Run("removes the grant", func(t *testing.T) {
		require.NoError(t, service.RevokeShare(ctx, share.ShareID))

		var count int64
		require.NoError(t, db.Model(&models.PartnerShare{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("revoking a missing share errors", func(t *testing.T) {
		err := service.RevokeShare(ctx, "shr_missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "share not found")
	})
}

func TestShareService_ListShares(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewShareService(db)
	ctx := context.Background()

	grants := []models.GrantShareRequest{
		{PartnerID: "ptn_1", EntityType: "buyer", EntityID: "buy_1"},
		{PartnerID: "ptn_1", EntityType: "seller", EntityID: "sel_1"},
		{PartnerID: "ptn_2", EntityType: "buyer", EntityID: "buy_2"},
	}
	for i := range grants {
		_, err := service.GrantShare(ctx, &grants[i], "usr_admin1")
		require.NoError(t, err)
	}

	t.Run("lists all grants", func(t *testing.T) {
		shares, err := service.ListShares(ctx, "")
		require.NoError(t, err)
		assert.Len(t, shares, 3)
	})

	t.Run("filters by partner", func(t *testing.T) {
		shares, err := service.ListShares(ctx, "ptn_1")
		require.NoError(t, err)
		assert.Len(t, shares, 2)
	})

	t.Run("shared entity ids scope to one type", func(t *testing.T) {
		ids, err := service.SharedEntityIDs(ctx, "ptn_1", models.EntityTypeBuyer)
		require.NoError(t, err)
		assert.Equal(t, []string{"buy_1"}, ids)

		ids, err = service.SharedEntityIDs(ctx, "ptn_2", models.EntityTypeSeller)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
