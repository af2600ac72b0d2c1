package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/sharing"
)

func newSharingConfigService(t *testing.T) *SharingConfigService {
	t.Helper()
	db := SetupSQLiteTestDB(t)
	return NewSharingConfigService(sharing.NewConfigStore(db, nil, 0))
}

func TestSharingConfigService_GetConfig(t *testing.T) {
	service := newSharingConfigService(t)
	ctx := context.Background()

	t.Run("absent config reads as empty map", func(t *testing.T) {
		resp, err := service.GetConfig(ctx, "buyer")
		require.NoError(t, err)

		assert.Equal(t, "buyer", resp.EntityType)
		assert.NotNil(t, resp.Fields)
		assert.Empty(t, resp.Fields)
	})

	t.Run("normalizes entity type aliases", func(t *testing.T) {
		resp, err := service.GetConfig(ctx, "Investor")
		require.NoError(t, err)
		assert.Equal(t, "buyer", resp.EntityType)

		resp, err = service.GetConfig(ctx, "target")
		require.NoError(t, err)
		assert.Equal(t, "seller", resp.EntityType)
	})

	t.Run("rejects unknown entity type", func(t *testing.T) {
		_, err := service.GetConfig(ctx, "vendor")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown entity type")
	})
}

func TestSharingConfigService_UpdateConfig(t *testing.T) {
	service := newSharingConfigService(t)
	ctx := context.Background()

	t.Run("stores and echoes the allow-list", func(t *testing.T) {
		fields := models.FieldMap{
			"buyer_id":                  true,
			"notes":                     false,
			"company_overview.reg_name": true,
		}
		resp, err := service.UpdateConfig(ctx, "buyer", &models.UpdateSharingConfigRequest{Fields: fields})
		require.NoError(t, err)

		assert.Equal(t, "buyer", resp.EntityType)
		assert.Equal(t, fields, resp.Fields)
		assert.Empty(t, resp.RejectedKeys)

		stored, err := service.GetConfig(ctx, "buyer")
		require.NoError(t, err)
		assert.Equal(t, true, stored.Fields["buyer_id"])
	})

	t.Run("replaces rather than merges", func(t *testing.T) {
		_, err := service.UpdateConfig(ctx, "seller", &models.UpdateSharingConfigRequest{
			Fields: models.FieldMap{"seller_id": true, "asking_price": true},
		})
		require.NoError(t, err)

		_, err = service.UpdateConfig(ctx, "seller", &models.UpdateSharingConfigRequest{
			Fields: models.FieldMap{"seller_id": true},
		})
		require.NoError(t, err)

		stored, err := service.GetConfig(ctx, "seller")
		require.NoError(t, err)
		assert.NotContains(t, stored.Fields, "asking_price")
	})

	t.Run("reports unknown keys without rejecting the write", func(t *testing.T) {
		resp, err := service.UpdateConfig(ctx, "buyer", &models.UpdateSharingConfigRequest{
			Fields: models.FieldMap{
				"buyer_id":       true,
				"buyerid":        true,
				"secret_column":  true,
				"deals.anything": true,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"buyerid", "secret_column"}, resp.RejectedKeys)
	})

	t.Run("rejects nil fields", func(t *testing.T) {
		_, err := service.UpdateConfig(ctx, "buyer", &models.UpdateSharingConfigRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "fields mapping is required")
	})
}
