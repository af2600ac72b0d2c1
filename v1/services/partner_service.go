package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/sharing"
)

// PartnerService serves the partner-facing read surface. Every query runs
// through the projection engine, so partners only ever receive the columns
// the broker enabled for their entity type, and only rows explicitly shared
// with them.
type PartnerService struct {
	db     *gorm.DB
	engine *sharing.Engine
	shares *ShareService
}

// NewPartnerService creates a new partner service
func NewPartnerService(db *gorm.DB, engine *sharing.Engine) *PartnerService {
	return &PartnerService{
		db:     db,
		engine: engine,
		shares: NewShareService(db),
	}
}

// ListSharedBuyers returns the partner's shared buyers, projected
func (s *PartnerService) ListSharedBuyers(ctx context.Context, partnerID string, q models.ListQuery) (*sharing.ListEnvelope, error) {
	q.Normalize()

	projection, err := s.engine.ProjectionFor(ctx, models.EntityTypeBuyer)
	if err != nil {
		return nil, err
	}

	base := s.db.WithContext(ctx).Model(&models.Buyer{}).
		Where("id IN (?)", s.sharedIDSubquery(partnerID, models.EntityTypeBuyer))
	if q.Search != "" {
		base = base.Where("buyer_id LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count shared buyers: %w", err)
	}

	var buyers []models.Buyer
	err = projection.Apply(base).
		Order("pinned DESC, created_at DESC").
		Limit(q.PerPage).Offset(q.Offset()).
		Find(&buyers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared buyers: %w", err)
	}

	return sharing.AssembleList(buyers, projection.FieldSet, projection.Plan, projection.Descriptor, total, q)
}

// GetSharedBuyer returns one shared buyer, projected. A buyer that exists
// but is not shared with the partner is indistinguishable from a missing one.
func (s *PartnerService) GetSharedBuyer(ctx context.Context, partnerID, buyerID string) (*sharing.DetailEnvelope, error) {
	projection, err := s.engine.ProjectionFor(ctx, models.EntityTypeBuyer)
	if err != nil {
		return nil, err
	}

	var buyer models.Buyer
	err = projection.Apply(s.db.WithContext(ctx).Model(&models.Buyer{})).
		Where("id = ?", buyerID).
		Where("id IN (?)", s.sharedIDSubquery(partnerID, models.EntityTypeBuyer)).
		First(&buyer).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared buyer: %w", err)
	}

	return sharing.AssembleDetail(buyer, projection.FieldSet, projection.Plan, projection.Descriptor)
}

// ListSharedSellers returns the partner's shared sellers, projected
func (s *PartnerService) ListSharedSellers(ctx context.Context, partnerID string, q models.ListQuery) (*sharing.ListEnvelope, error) {
	q.Normalize()

	projection, err := s.engine.ProjectionFor(ctx, models.EntityTypeSeller)
	if err != nil {
		return nil, err
	}

	base := s.db.WithContext(ctx).Model(&models.Seller{}).
		Where("id IN (?)", s.sharedIDSubquery(partnerID, models.EntityTypeSeller))
	if q.Search != "" {
		base = base.Where("seller_id LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count shared sellers: %w", err)
	}

	var sellers []models.Seller
	err = projection.Apply(base).
		Order("pinned DESC, created_at DESC").
		Limit(q.PerPage).Offset(q.Offset()).
		Find(&sellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared sellers: %w", err)
	}

	return sharing.AssembleList(sellers, projection.FieldSet, projection.Plan, projection.Descriptor, total, q)
}

// GetSharedSeller returns one shared seller, projected
func (s *PartnerService) GetSharedSeller(ctx context.Context, partnerID, sellerID string) (*sharing.DetailEnvelope, error) {
	projection, err := s.engine.ProjectionFor(ctx, models.EntityTypeSeller)
	if err != nil {
		return nil, err
	}

	var seller models.Seller
	err = projection.Apply(s.db.WithContext(ctx).Model(&models.Seller{})).
		Where("id = ?", sellerID).
		Where("id IN (?)", s.sharedIDSubquery(partnerID, models.EntityTypeSeller)).
		First(&seller).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared seller: %w", err)
	}

	return sharing.AssembleDetail(seller, projection.FieldSet, projection.Plan, projection.Descriptor)
}

// ListSharedDeals returns deals touching any entity shared with the partner.
// Deals carry the fixed partner projection regardless of config: stage and
// progress only, never valuation or notes.
func (s *PartnerService) ListSharedDeals(ctx context.Context, partnerID string, q models.ListQuery) (*models.CollectionResponse, error) {
	q.Normalize()

	var deals []models.PartnerDealView
	err := s.db.WithContext(ctx).Model(&models.Deal{}).
		Select("id", "buyer_id", "seller_id", "stage", "progress", "created_at").
		Where(
			s.db.Where("buyer_id IN (?)", s.sharedIDSubquery(partnerID, models.EntityTypeBuyer)).
				Or("seller_id IN (?)", s.sharedIDSubquery(partnerID, models.EntityTypeSeller)),
		).
		Order("created_at DESC").
		Limit(q.PerPage).Offset(q.Offset()).
		Find(&deals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared deals: %w", err)
	}

	return &models.CollectionResponse{Items: deals, Count: len(deals)}, nil
}

// sharedIDSubquery builds the row-scope subquery over partner_shares
func (s *PartnerService) sharedIDSubquery(partnerID string, entityType models.EntityType) *gorm.DB {
	return s.db.Model(&models.PartnerShare{}).
		Select("entity_id").
		Where("partner_id = ? AND entity_type = ?", partnerID, entityType)
}
