package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seeacid/stardeadIA/internal/catalog"
	"github.com/seeacid/stardeadIA/internal/domain"
	apperrors "github.com/seeacid/stardeadIA/pkg/errors"
	"github.com/seeacid/stardeadIA/pkg/pagination"
)

// Facets holds the filter options derived from the catalog.
type Facets struct {
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	SortValues []string `json:"sort_values"`
}

// ProductService answers catalog queries: filtered listings, lookups,
// related products, and facets.
type ProductService struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(cat *catalog.Catalog, logger *slog.Logger) *ProductService {
	return &ProductService{
		catalog: cat,
		logger:  logger,
	}
}

// ListProducts applies the filter to the catalog and paginates the result.
func (s *ProductService) ListProducts(ctx context.Context, filter catalog.Filter, params pagination.Params) (pagination.Result[domain.Product], error) {
	if !catalog.IsValidSort(filter.SortBy) {
		return pagination.Result[domain.Product]{}, apperrors.InvalidInput(fmt.Sprintf("unknown sort mode %q", filter.SortBy))
	}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return pagination.Result[domain.Product]{}, apperrors.InvalidInput("min_price must not be negative")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return pagination.Result[domain.Product]{}, apperrors.InvalidInput("max_price must not be negative")
	}

	matched := filter.Apply(s.catalog.Products())

	start := params.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	s.logger.DebugContext(ctx, "catalog query",
		slog.String("search", filter.Search),
		slog.String("category", filter.Category),
		slog.Int("matched", len(matched)),
	)

	return pagination.NewResult(matched[start:end], len(matched), params), nil
}

// GetBySlug returns the product with the given slug.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if slug == "" {
		return domain.Product{}, apperrors.InvalidInput("slug is required")
	}

	p, ok := s.catalog.BySlug(slug)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", slug)
	}
	return p, nil
}

// Related returns up to limit products related to the one with the given slug.
func (s *ProductService) Related(ctx context.Context, slug string, limit int) ([]domain.Product, error) {
	p, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	related := s.catalog.Related(p, limit)
	if related == nil {
		related = []domain.Product{}
	}
	return related, nil
}

// Featured returns the products flagged for the home page showcase.
func (s *ProductService) Featured(ctx context.Context) []domain.Product {
	featured := s.catalog.Featured()
	if featured == nil {
		featured = []domain.Product{}
	}
	return featured
}

// NewArrivals returns the products flagged as new, in catalog order.
func (s *ProductService) NewArrivals(ctx context.Context) []domain.Product {
	arrivals := s.catalog.NewArrivals()
	if arrivals == nil {
		arrivals = []domain.Product{}
	}
	return arrivals
}

// GetFacets returns the filter options with sizes in canonical garment order.
func (s *ProductService) GetFacets(ctx context.Context) Facets {
	return Facets{
		Categories: s.catalog.Categories(),
		Sizes:      s.catalog.Sizes(),
		Colors:     s.catalog.Colors(),
		SortValues: catalog.ValidSortValues(),
	}
}
