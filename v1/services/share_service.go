package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/sharing"
)

// ShareService manages partner row grants: which buyer/seller records a
// partner user may see at all. Column visibility is the sharing engine's
// concern, not this service's.
type ShareService struct {
	db *gorm.DB
}

// NewShareService creates a new share service
func NewShareService(db *gorm.DB) *ShareService {
	return &ShareService{db: db}
}

// GrantShare grants one partner visibility of one entity. Granting an
// existing share is idempotent.
func (s *ShareService) GrantShare(ctx context.Context, req *models.GrantShareRequest, grantedBy string) (*models.PartnerShare, error) {
	if req.PartnerID == "" || req.EntityID == "" {
		return nil, fmt.Errorf("partnerId and entityId are required")
	}

	entityType, ok := sharing.NormalizeEntityType(req.EntityType)
	if !ok {
		return nil, fmt.Errorf("unknown entity type: %s", req.EntityType)
	}

	var existing models.PartnerShare
	err := s.db.WithContext(ctx).First(&existing,
		"partner_id = ? AND entity_type = ? AND entity_id = ?",
		req.PartnerID, entityType, req.EntityID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing share: %w", err)
	}

	share := models.PartnerShare{
		ShareID:    "shr_" + uuid.New().String(),
		PartnerID:  req.PartnerID,
		EntityType: string(entityType),
		EntityID:   req.EntityID,
		GrantedBy:  grantedBy,
	}

	if err := s.db.WithContext(ctx).Create(&share).Error; err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	return &share, nil
}

// RevokeShare removes a grant by share ID
func (s *ShareService) RevokeShare(ctx context.Context, shareID string) error {
	result := s.db.WithContext(ctx).Delete(&models.PartnerShare{}, "share_id = ?", shareID)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke share: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("share not found: %s", shareID)
	}
	return nil
}

// ListShares returns all grants, optionally filtered by partner
func (s *ShareService) ListShares(ctx context.Context, partnerID string) ([]models.PartnerShare, error) {
	q := s.db.WithContext(ctx).Model(&models.PartnerShare{})
	if partnerID != "" {
		q = q.Where("partner_id = ?", partnerID)
	}

	var shares []models.PartnerShare
	if err := q.Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shares: %w", err)
	}

	return shares, nil
}

// SharedEntityIDs returns the entity ids of one type shared with a partner
func (s *ShareService) SharedEntityIDs(ctx context.Context, partnerID string, entityType models.EntityType) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.PartnerShare{}).
		Where("partner_id = ? AND entity_type = ?", partnerID, entityType).
		Pluck("entity_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared entity ids: %w", err)
	}
	return ids, nil
}
