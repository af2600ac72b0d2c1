package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// SellerService handles staff-facing seller profile operations
type SellerService struct {
	db *gorm.DB
}

// NewSellerService creates a new seller service
func NewSellerService(db *gorm.DB) *SellerService {
	return &SellerService{db: db}
}

// CreateSeller creates a seller profile with its optional detail records in
// one transaction
func (s *SellerService) CreateSeller(ctx context.Context, req *models.CreateSellerRequest, ownerID string) (*models.Seller, error) {
	if req.SellerID == "" {
		return nil, fmt.Errorf("sellerId is required")
	}

	seller := models.Seller{
		ID:       "sel_" + uuid.New().String(),
		SellerID: req.SellerID,
		Status:   models.CompanyStatusProspect,
		OwnerID:  ownerID,
	}
	if req.Notes != nil {
		seller.Notes = *req.Notes
	}
	if req.AskingPrice != nil {
		seller.AskingPrice = *req.AskingPrice
	}
	if req.ReasonForSale != nil {
		seller.ReasonFor = *req.ReasonForSale
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.CompanyOverview != nil {
			overview := newOverview(req.CompanyOverview)
			if err := tx.Create(overview).Error; err != nil {
				return fmt.Errorf("failed to create company overview: %w", err)
			}
			seller.CompanyOverviewID = &overview.ID
		}

		if req.FinancialDetails != nil {
			fin := newFinancials(req.FinancialDetails)
			if err := tx.Create(fin).Error; err != nil {
				return fmt.Errorf("failed to create financial details: %w", err)
			}
			seller.FinancialDetailsID = &fin.ID
		}

		if err := tx.Create(&seller).Error; err != nil {
			return fmt.Errorf("failed to create seller: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetSeller(ctx, seller.ID)
}

// GetSeller retrieves a seller with all detail records (unrestricted)
func (s *SellerService) GetSeller(ctx context.Context, id string) (*models.Seller, error) {
	var seller models.Seller

	q := s.db.WithContext(ctx)
	for _, preload := range profilePreloads {
		q = q.Preload(preload)
	}

	if err := q.First(&seller, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("seller not found: %w", err)
	}

	return &seller, nil
}

// UpdateSeller applies a partial update to a seller and its detail records
func (s *SellerService) UpdateSeller(ctx context.Context, id string, req *models.UpdateSellerRequest) (*models.Seller, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seller models.Seller
		if err := tx.Preload("CompanyOverview").Preload("FinancialDetails").
			First(&seller, "id = ?", id).Error; err != nil {
			return fmt.Errorf("seller not found: %w", err)
		}

		if req.Pinned != nil {
			seller.Pinned = *req.Pinned
		}
		if req.Status != nil {
			seller.Status = *req.Status
		}
		if req.Notes != nil {
			seller.Notes = *req.Notes
		}
		if req.AskingPrice != nil {
			seller.AskingPrice = *req.AskingPrice
		}
		if req.ReasonForSale != nil {
			seller.ReasonFor = *req.ReasonForSale
		}

		if req.CompanyOverview != nil {
			if seller.CompanyOverview == nil {
				overview := newOverview(req.CompanyOverview)
				if err := tx.Create(overview).Error; err != nil {
					return fmt.Errorf("failed to create company overview: %w", err)
				}
				seller.CompanyOverviewID = &overview.ID
			} else {
				applyOverviewInput(seller.CompanyOverview, req.CompanyOverview)
				if err := tx.Save(seller.CompanyOverview).Error; err != nil {
					return fmt.Errorf("failed to update company overview: %w", err)
				}
			}
		}

		if req.FinancialDetails != nil {
			if seller.FinancialDetails == nil {
				fin := newFinancials(req.FinancialDetails)
				if err := tx.Create(fin).Error; err != nil {
					return fmt.Errorf("failed to create financial details: %w", err)
				}
				seller.FinancialDetailsID = &fin.ID
			} else {
				applyFinancialsInput(seller.FinancialDetails, req.FinancialDetails)
				if err := tx.Save(seller.FinancialDetails).Error; err != nil {
					return fmt.Errorf("failed to update financial details: %w", err)
				}
			}
		}

		if err := tx.Save(&seller).Error; err != nil {
			return fmt.Errorf("failed to update seller: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetSeller(ctx, id)
}

// ListSellers returns a page of sellers with full detail records, pinned
// profiles first
func (s *SellerService) ListSellers(ctx context.Context, q models.ListQuery) ([]models.Seller, int64, error) {
	q.Normalize()

	base := s.db.WithContext(ctx).Model(&models.Seller{})
	if q.Search != "" {
		base = base.Where("seller_id LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sellers: %w", err)
	}

	query := base.Order("pinned DESC, created_at DESC").
		Offset(q.Offset()).Limit(q.PerPage)
	for _, preload := range profilePreloads {
		query = query.Preload(preload)
	}

	var sellers []models.Seller
	if err := query.Find(&sellers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sellers: %w", err)
	}

	return sellers, total, nil
}
