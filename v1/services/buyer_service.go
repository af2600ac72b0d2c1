package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// BuyerService handles staff-facing buyer profile operations. Partner-facing
// reads go through PartnerDataService instead.
type BuyerService struct {
	db *gorm.DB
}

// NewBuyerService creates a new buyer service
func NewBuyerService(db *gorm.DB) *BuyerService {
	return &BuyerService{db: db}
}

// CreateBuyer creates a buyer profile with its optional detail records in
// one transaction
func (s *BuyerService) CreateBuyer(ctx context.Context, req *models.CreateBuyerRequest, ownerID string) (*models.Buyer, error) {
	if req.BuyerID == "" {
		return nil, fmt.Errorf("buyerId is required")
	}

	buyer := models.Buyer{
		ID:      "buy_" + uuid.New().String(),
		BuyerID: req.BuyerID,
		Status:  models.CompanyStatusProspect,
		OwnerID: ownerID,
	}
	if req.Notes != nil {
		buyer.Notes = *req.Notes
	}
	if req.TargetIndustries != nil {
		buyer.TargetIndustries = models.StringList(req.TargetIndustries)
	}
	if req.BudgetMin != nil {
		buyer.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		buyer.BudgetMax = *req.BudgetMax
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.CompanyOverview != nil {
			overview := newOverview(req.CompanyOverview)
			if err := tx.Create(overview).Error; err != nil {
				return fmt.Errorf("failed to create company overview: %w", err)
			}
			buyer.CompanyOverviewID = &overview.ID
		}

		if req.FinancialDetails != nil {
			fin := newFinancials(req.FinancialDetails)
			if err := tx.Create(fin).Error; err != nil {
				return fmt.Errorf("failed to create financial details: %w", err)
			}
			buyer.FinancialDetailsID = &fin.ID
		}

		if err := tx.Create(&buyer).Error; err != nil {
			return fmt.Errorf("failed to create buyer: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBuyer(ctx, buyer.ID)
}

// GetBuyer retrieves a buyer with all detail records (unrestricted)
func (s *BuyerService) GetBuyer(ctx context.Context, id string) (*models.Buyer, error) {
	var buyer models.Buyer

	q := s.db.WithContext(ctx)
	for _, preload := range profilePreloads {
		q = q.Preload(preload)
	}

	if err := q.First(&buyer, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("buyer not found: %w", err)
	}

	return &buyer, nil
}

// UpdateBuyer applies a partial update to a buyer and its detail records
func (s *BuyerService) UpdateBuyer(ctx context.Context, id string, req *models.UpdateBuyerRequest) (*models.Buyer, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var buyer models.Buyer
		if err := tx.Preload("CompanyOverview").Preload("FinancialDetails").
			First(&buyer, "id = ?", id).Error; err != nil {
			return fmt.Errorf("buyer not found: %w", err)
		}

		if req.Pinned != nil {
			buyer.Pinned = *req.Pinned
		}
		if req.Status != nil {
			buyer.Status = *req.Status
		}
		if req.Notes != nil {
			buyer.Notes = *req.Notes
		}
		if req.TargetIndustries != nil {
			buyer.TargetIndustries = models.StringList(req.TargetIndustries)
		}
		if req.BudgetMin != nil {
			buyer.BudgetMin = *req.BudgetMin
		}
		if req.BudgetMax != nil {
			buyer.BudgetMax = *req.BudgetMax
		}

		if req.CompanyOverview != nil {
			if buyer.CompanyOverview == nil {
				overview := newOverview(req.CompanyOverview)
				if err := tx.Create(overview).Error; err != nil {
					return fmt.Errorf("failed to create company overview: %w", err)
				}
				buyer.CompanyOverviewID = &overview.ID
			} else {
				applyOverviewInput(buyer.CompanyOverview, req.CompanyOverview)
				if err := tx.Save(buyer.CompanyOverview).Error; err != nil {
					return fmt.Errorf("failed to update company overview: %w", err)
				}
			}
		}

		if req.FinancialDetails != nil {
			if buyer.FinancialDetails == nil {
				fin := newFinancials(req.FinancialDetails)
				if err := tx.Create(fin).Error; err != nil {
					return fmt.Errorf("failed to create financial details: %w", err)
				}
				buyer.FinancialDetailsID = &fin.ID
			} else {
				applyFinancialsInput(buyer.FinancialDetails, req.FinancialDetails)
				if err := tx.Save(buyer.FinancialDetails).Error; err != nil {
					return fmt.Errorf("failed to update financial details: %w", err)
				}
			}
		}

		if err := tx.Save(&buyer).Error; err != nil {
			return fmt.Errorf("failed to update buyer: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBuyer(ctx, id)
}

// ListBuyers returns a page of buyers with full detail records, pinned
// profiles first
func (s *BuyerService) ListBuyers(ctx context.Context, q models.ListQuery) ([]models.Buyer, int64, error) {
	q.Normalize()

	base := s.db.WithContext(ctx).Model(&models.Buyer{})
	if q.Search != "" {
		base = base.Where("buyer_id LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count buyers: %w", err)
	}

	query := base.Order("pinned DESC, created_at DESC").
		Offset(q.Offset()).Limit(q.PerPage)
	for _, preload := range profilePreloads {
		query = query.Preload(preload)
	}

	var buyers []models.Buyer
	if err := query.Find(&buyers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch buyers: %w", err)
	}

	return buyers, total, nil
}
