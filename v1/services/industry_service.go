package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// maxSuggestionDistance is the edit-distance cutoff for taxonomy suggestions
const maxSuggestionDistance = 2

// IndustryService manages the canonical industry taxonomy and the
// reconciliation of free-text tags against it
type IndustryService struct {
	db *gorm.DB
}

// NewIndustryService creates a new industry service
func NewIndustryService(db *gorm.DB) *IndustryService {
	return &IndustryService{db: db}
}

// ListIndustries returns the canonical taxonomy sorted by name
func (s *IndustryService) ListIndustries(ctx context.Context) ([]models.Industry, error) {
	var industries []models.Industry
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&industries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch industries: %w", err)
	}
	return industries, nil
}

// CreateIndustry adds a canonical industry. Names are unique after slug
// normalization, so "FinTech" and "fintech" collide.
func (s *IndustryService) CreateIndustry(ctx context.Context, name string) (*models.Industry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("industry name is required")
	}

	slug := Slugify(name)
	var existing models.Industry
	err := s.db.WithContext(ctx).First(&existing, "slug = ?", slug).Error
	if err == nil {
		return nil, fmt.Errorf("industry already exists: %s", existing.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing industry: %w", err)
	}

	industry := models.Industry{
		IndustryID: "ind_" + uuid.New().String(),
		Name:       name,
		Slug:       slug,
	}
	if err := s.db.WithContext(ctx).Create(&industry).Error; err != nil {
		return nil, fmt.Errorf("failed to create industry: %w", err)
	}

	return &industry, nil
}

// Reconcile scans every tag in use across company overviews and buyer target
// lists and reports the ones absent from the canonical taxonomy, with
// occurrence counts and near-match suggestions.
func (s *IndustryService) Reconcile(ctx context.Context) ([]models.UnknownTag, error) {
	canonical, err := s.canonicalSlugs(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)

	var overviews []models.CompanyOverview
	if err := s.db.WithContext(ctx).Select("id", "industry_tags").Find(&overviews).Error; err != nil {
		return nil, fmt.Errorf("failed to scan company overviews: %w", err)
	}
	for _, o := range overviews {
		countUnknownTags(o.IndustryTags, canonical, counts)
	}

	var buyers []models.Buyer
	if err := s.db.WithContext(ctx).Select("id", "target_industries").Find(&buyers).Error; err != nil {
		return nil, fmt.Errorf("failed to scan buyer targets: %w", err)
	}
	for _, b := range buyers {
		countUnknownTags(b.TargetIndustries, canonical, counts)
	}

	findings := make([]models.UnknownTag, 0, len(counts))
	for tag, occurrences := range counts {
		findings = append(findings, models.UnknownTag{
			Tag:         tag,
			Occurrences: occurrences,
			Suggestions: s.suggestions(tag, canonical),
		})
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Occurrences != findings[j].Occurrences {
			return findings[i].Occurrences > findings[j].Occurrences
		}
		return findings[i].Tag < findings[j].Tag
	})

	return findings, nil
}

// PromoteTag adds a free-text tag to the canonical taxonomy as-is
func (s *IndustryService) PromoteTag(ctx context.Context, req *models.PromoteTagRequest) (*models.Industry, error) {
	return s.CreateIndustry(ctx, req.Tag)
}

// MergeTag rewrites every occurrence of a stray tag into a canonical
// industry's name, across company overviews and buyer target lists, in one
// transaction. Returns the number of records rewritten.
func (s *IndustryService) MergeTag(ctx context.Context, req *models.MergeTagRequest) (int, error) {
	var target models.Industry
	if err := s.db.WithContext(ctx).First(&target, "industry_id = ?", req.IntoID).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch target industry: %w", err)
	}

	rewritten := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overviews []models.CompanyOverview
		if err := tx.Find(&overviews).Error; err != nil {
			return fmt.Errorf("failed to load company overviews: %w", err)
		}
		for i := range overviews {
			tags, changed := rewriteTag(overviews[i].IndustryTags, req.FromTag, target.Name)
			if !changed {
				continue
			}
			if err := tx.Model(&overviews[i]).Update("industry_tags", tags).Error; err != nil {
				return fmt.Errorf("failed to rewrite overview tags: %w", err)
			}
			rewritten++
		}

		var buyers []models.Buyer
		if err := tx.Find(&buyers).Error; err != nil {
			return fmt.Errorf("failed to load buyers: %w", err)
		}
		for i := range buyers {
			tags, changed := rewriteTag(buyers[i].TargetIndustries, req.FromTag, target.Name)
			if !changed {
				continue
			}
			if err := tx.Model(&buyers[i]).Update("target_industries", tags).Error; err != nil {
				return fmt.Errorf("failed to rewrite buyer targets: %w", err)
			}
			rewritten++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return rewritten, nil
}

// canonicalSlugs returns slug -> canonical name for every industry
func (s *IndustryService) canonicalSlugs(ctx context.Context) (map[string]string, error) {
	var industries []models.Industry
	if err := s.db.WithContext(ctx).Find(&industries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch industries: %w", err)
	}
	canonical := make(map[string]string, len(industries))
	for _, ind := range industries {
		canonical[ind.Slug] = ind.Name
	}
	return canonical, nil
}

// suggestions returns canonical names within edit distance of the tag
func (s *IndustryService) suggestions(tag string, canonical map[string]string) []string {
	slug := Slugify(tag)
	var out []string
	for candidate, name := range canonical {
		if levenshtein.ComputeDistance(slug, candidate) <= maxSuggestionDistance {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func countUnknownTags(tags models.StringList, canonical map[string]string, counts map[string]int) {
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := canonical[Slugify(tag)]; !ok {
			counts[tag]++
		}
	}
}

// rewriteTag replaces from with into inside a tag list, dropping the
// replacement when it would duplicate an existing entry
func rewriteTag(tags models.StringList, from, into string) (models.StringList, bool) {
	fromSlug := Slugify(from)
	changed := false
	out := make(models.StringList, 0, len(tags))
	for _, tag := range tags {
		if Slugify(tag) == fromSlug {
			tag = into
			changed = true
		}
		duplicate := false
		for _, kept := range out {
			if kept == tag {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, tag)
		}
	}
	return out, changed
}

// Slugify lowercases a tag and collapses separators so "Health Care" and
// "health-care" normalize to the same key
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
