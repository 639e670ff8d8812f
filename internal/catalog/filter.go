package catalog

import (
	"sort"
	"strings"

	"github.com/seeacid/stardeadIA/internal/domain"
)

// Sort mode constants.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
)

// ValidSortValues returns the recognized sort modes.
func ValidSortValues() []string {
	return []string{SortRelevance, SortPriceAsc, SortPriceDesc, SortNewest}
}

// IsValidSort checks whether the given sort mode is recognized. The empty
// string is valid and means relevance.
func IsValidSort(sortBy string) bool {
	if sortBy == "" {
		return true
	}
	for _, v := range ValidSortValues() {
		if v == sortBy {
			return true
		}
	}
	return false
}

// Filter is a product query: all set predicates compose with logical AND,
// an unset option imposes no constraint.
type Filter struct {
	Search   string
	Category string
	MinPrice *int64
	MaxPrice *int64
	Sizes    []string
	Colors   []string
	Tags     []string
	SortBy   string
}

// Apply filters and sorts the given products, returning a new ordered list.
// It is stateless and pure: the input is never mutated, and ties in every
// sort mode preserve the input's relative order.
func (f Filter) Apply(products []domain.Product) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			filtered = append(filtered, p)
		}
	}

	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortNewest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	default:
		// Relevance: featured first, then newest.
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].Featured != filtered[j].Featured {
				return filtered[i].Featured
			}
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered
}

func (f Filter) matches(p domain.Product) bool {
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	// Sizes and colors are matched independently: each needs some in-stock
	// variant, not necessarily the same one.
	if len(f.Sizes) > 0 && !hasVariantInStock(p, func(v domain.Variant) bool {
		return contains(f.Sizes, v.Size)
	}) {
		return false
	}
	if len(f.Colors) > 0 && !hasVariantInStock(p, func(v domain.Variant) bool {
		return contains(f.Colors, v.Color)
	}) {
		return false
	}
	if len(f.Tags) > 0 && !anyTagMatches(p, f.Tags) {
		return false
	}
	return true
}

func matchesSearch(p domain.Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func hasVariantInStock(p domain.Product, pred func(domain.Variant) bool) bool {
	for _, v := range p.Variants {
		if v.Stock > 0 && pred(v) {
			return true
		}
	}
	return false
}

func anyTagMatches(p domain.Product, tags []string) bool {
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
