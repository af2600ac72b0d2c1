package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/pkg/monitoring"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// DealService handles deal pipeline operations
type DealService struct {
	db *gorm.DB
}

// NewDealService creates a new deal service
func NewDealService(db *gorm.DB) *DealService {
	return &DealService{db: db}
}

// CreateDeal pairs a buyer with a seller at the start of the pipeline
func (s *DealService) CreateDeal(ctx context.Context, req *models.CreateDealRequest, ownerID string) (*models.Deal, error) {
	if req.Title == "" || req.BuyerID == "" || req.SellerID == "" {
		return nil, fmt.Errorf("title, buyerId and sellerId are required")
	}

	deal := models.Deal{
		ID:       "deal_" + uuid.New().String(),
		Title:    req.Title,
		BuyerID:  req.BuyerID,
		SellerID: req.SellerID,
		Stage:    models.DealStageProspecting,
		Progress: models.StageProgress(models.DealStageProspecting),
		OwnerID:  ownerID,
	}
	if req.DealValue != nil {
		deal.DealValue = *req.DealValue
	}
	if req.Currency != nil {
		deal.Currency = *req.Currency
	}
	if req.Notes != nil {
		deal.Notes = *req.Notes
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var buyer models.Buyer
		if err := tx.First(&buyer, "id = ?", req.BuyerID).Error; err != nil {
			return fmt.Errorf("buyer not found: %w", err)
		}

		var seller models.Seller
		if err := tx.First(&seller, "id = ?", req.SellerID).Error; err != nil {
			return fmt.Errorf("seller not found: %w", err)
		}

		if err := tx.Create(&deal).Error; err != nil {
			return fmt.Errorf("failed to create deal: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordBusinessEvent(ctx, "deal_created", true)
	return &deal, nil
}

// GetDeal retrieves a deal with both company profiles
func (s *DealService) GetDeal(ctx context.Context, id string) (*models.Deal, error) {
	var deal models.Deal

	err := s.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Seller").
		First(&deal, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("deal not found: %w", err)
	}

	return &deal, nil
}

// ListDeals returns a page of deals, optionally filtered by buyer, seller
// or stage
func (s *DealService) ListDeals(ctx context.Context, q models.ListQuery, buyerID, sellerID string, stage models.DealStage) ([]models.Deal, int64, error) {
	q.Normalize()

	base := s.db.WithContext(ctx).Model(&models.Deal{})
	if buyerID != "" {
		base = base.Where("buyer_id = ?", buyerID)
	}
	if sellerID != "" {
		base = base.Where("seller_id = ?", sellerID)
	}
	if stage != "" {
		base = base.Where("stage = ?", stage)
	}
	if q.Search != "" {
		base = base.Where("title LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deals: %w", err)
	}

	var deals []models.Deal
	err := base.Order("created_at DESC").
		Offset(q.Offset()).Limit(q.PerPage).
		Find(&deals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch deals: %w", err)
	}

	return deals, total, nil
}

// UpdateStage moves a deal to a new pipeline stage and recomputes progress.
// Forward moves go one stage at a time; either closed stage is reachable
// from any open stage; closed deals are terminal.
func (s *DealService) UpdateStage(ctx context.Context, id string, stage models.DealStage) (*models.Deal, error) {
	var deal models.Deal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deal, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deal not found: %w", err)
		}

		if !validTransition(deal.Stage, stage) {
			return fmt.Errorf("invalid stage transition from %s to %s", deal.Stage, stage)
		}

		deal.Stage = stage
		deal.Progress = models.StageProgress(stage)

		if err := tx.Save(&deal).Error; err != nil {
			return fmt.Errorf("failed to update deal stage: %w", err)
		}

		return nil
	})
	if err != nil {
		monitoring.RecordBusinessEvent(ctx, "deal_stage_moved", false)
		return nil, err
	}

	monitoring.RecordBusinessEvent(ctx, "deal_stage_moved", true)
	return &deal, nil
}

func isClosed(stage models.DealStage) bool {
	return stage == models.DealStageClosedWon || stage == models.DealStageClosedLost
}

func validTransition(from, to models.DealStage) bool {
	if isClosed(from) {
		return false
	}
	if to == models.DealStageClosedLost {
		return true
	}

	for i, stage := range models.PipelineOrder {
		if stage == from {
			return i+1 < len(models.PipelineOrder) && models.PipelineOrder[i+1] == to
		}
	}
	return false
}
