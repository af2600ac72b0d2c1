package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// DefaultMatchLimit caps the suggestion list when the caller does not ask
// for a specific size
const DefaultMatchLimit = 10

// Scoring weights. Industry fit dominates: a buyer hunting fintech targets
// should see fintech sellers before a geography coincidence.
const (
	tagOverlapWeight = 0.6
	budgetFitWeight  = 0.3
	geographyWeight  = 0.1
)

// MatchService scores buyer/seller pairings for the broker's suggestion list
type MatchService struct {
	db *gorm.DB
}

// NewMatchService creates a new match service
func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{db: db}
}

// SuggestForBuyer scores every active seller against one buyer and returns
// the top matches. Zero-score pairings are dropped.
func (s *MatchService) SuggestForBuyer(ctx context.Context, buyerID string, limit int) ([]models.MatchSuggestion, error) {
	var buyer models.Buyer
	err := s.db.WithContext(ctx).Preload("CompanyOverview").First(&buyer, "id = ?", buyerID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch buyer: %w", err)
	}

	var sellers []models.Seller
	err = s.db.WithContext(ctx).Preload("CompanyOverview").
		Where("status = ?", models.CompanyStatusActive).
		Find(&sellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sellers: %w", err)
	}

	suggestions := make([]models.MatchSuggestion, 0, len(sellers))
	for i := range sellers {
		if suggestion, ok := scorePair(&buyer, &sellers[i]); ok {
			suggestions = append(suggestions, suggestion)
		}
	}

	return topMatches(suggestions, limit), nil
}

// SuggestForSeller scores every active buyer against one seller
func (s *MatchService) SuggestForSeller(ctx context.Context, sellerID string, limit int) ([]models.MatchSuggestion, error) {
	var seller models.Seller
	err := s.db.WithContext(ctx).Preload("CompanyOverview").First(&seller, "id = ?", sellerID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller: %w", err)
	}

	var buyers []models.Buyer
	err = s.db.WithContext(ctx).Preload("CompanyOverview").
		Where("status = ?", models.CompanyStatusActive).
		Find(&buyers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch buyers: %w", err)
	}

	suggestions := make([]models.MatchSuggestion, 0, len(buyers))
	for i := range buyers {
		if suggestion, ok := scorePair(&buyers[i], &seller); ok {
			suggestions = append(suggestions, suggestion)
		}
	}

	return topMatches(suggestions, limit), nil
}

// scorePair computes one buyer/seller suggestion. A pairing with no industry
// overlap, no budget fit and no shared geography scores zero and is dropped.
func scorePair(buyer *models.Buyer, seller *models.Seller) (models.MatchSuggestion, bool) {
	shared := sharedTags(buyer.TargetIndustries, sellerTags(seller))
	overlap := 0.0
	if len(buyer.TargetIndustries) > 0 {
		overlap = float64(len(shared)) / float64(len(buyer.TargetIndustries))
	}

	budgetFit := withinBudget(buyer, seller.AskingPrice)
	sameGeo := sameGeography(buyer, seller)

	score := tagOverlapWeight * overlap
	if budgetFit {
		score += budgetFitWeight
	}
	if sameGeo {
		score += geographyWeight
	}

	if score == 0 {
		return models.MatchSuggestion{}, false
	}

	return models.MatchSuggestion{
		BuyerID:       buyer.ID,
		SellerID:      seller.ID,
		Score:         score,
		SharedTags:    shared,
		BudgetFit:     budgetFit,
		SameGeography: sameGeo,
	}, true
}

func sellerTags(seller *models.Seller) models.StringList {
	if seller.CompanyOverview == nil {
		return nil
	}
	return seller.CompanyOverview.IndustryTags
}

func sharedTags(targets models.StringList, tags models.StringList) []string {
	index := make(map[string]string, len(tags))
	for _, tag := range tags {
		index[Slugify(tag)] = tag
	}

	var shared []string
	for _, target := range targets {
		if tag, ok := index[Slugify(target)]; ok {
			shared = append(shared, tag)
		}
	}
	sort.Strings(shared)
	return shared
}

// withinBudget checks asking price against the buyer's budget band. An unset
// band matches nothing rather than everything.
func withinBudget(buyer *models.Buyer, askingPrice float64) bool {
	if buyer.BudgetMax <= 0 || askingPrice <= 0 {
		return false
	}
	return askingPrice >= buyer.BudgetMin && askingPrice <= buyer.BudgetMax
}

func sameGeography(buyer *models.Buyer, seller *models.Seller) bool {
	if buyer.CompanyOverview == nil || seller.CompanyOverview == nil {
		return false
	}
	b := buyer.CompanyOverview.HQCountry
	s := seller.CompanyOverview.HQCountry
	return b != "" && b == s
}

func topMatches(suggestions []models.MatchSuggestion, limit int) []models.MatchSuggestion {
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].SellerID < suggestions[j].SellerID
	})
	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
