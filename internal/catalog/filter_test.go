package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeacid/stardeadIA/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func filterProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "f1",
			Name:        "Remera Oversize Static",
			Description: "Remera oversize con estampa",
			Price:       5000,
			Category:    "remeras",
			Variants: []domain.Variant{
				{Size: "M", Color: "Negro", Stock: 0, SKU: "F1-M-NEG"},
				{Size: "L", Color: "Blanco", Stock: 4, SKU: "F1-L-BLA"},
			},
			Tags:      []string{"oversize", "estampa"},
			CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "f2",
			Name:        "Buzo Eclipse",
			Description: "Hoodie de frisa pesada",
			Price:       1000,
			Category:    "buzos",
			Variants: []domain.Variant{
				{Size: "M", Color: "Gris", Stock: 6, SKU: "F2-M-GRI"},
			},
			Tags:      []string{"hoodie"},
			Featured:  true,
			CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "f3",
			Name:        "Cargo Void",
			Description: "Cargo de gabardina",
			Price:       3000,
			Category:    "pantalones",
			Variants: []domain.Variant{
				{Size: "S", Color: "Verde", Stock: 2, SKU: "F3-S-VER"},
			},
			Tags:      []string{"cargo"},
			CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ============================================================
// Predicates
// ============================================================

func TestFilterEmptyMatchesAll(t *testing.T) {
	products := filterProducts()
	got := Filter{}.Apply(products)
	assert.Len(t, got, len(products))
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	products := filterProducts()

	got := Filter{Search: "ECLIPSE"}.Apply(products)
	require.Len(t, got, 1)
	assert.Equal(t, "f2", got[0].ID)

	// Search also covers descriptions and tags.
	assert.Equal(t, []string{"f3"}, ids(Filter{Search: "gabardina"}.Apply(products)))
	assert.Equal(t, []string{"f2"}, ids(Filter{Search: "hoodie"}.Apply(products)))
}

func TestFilterCategory(t *testing.T) {
	got := Filter{Category: "buzos"}.Apply(filterProducts())
	require.Len(t, got, 1)
	assert.Equal(t, "f2", got[0].ID)
}

func TestFilterPriceRange(t *testing.T) {
	products := filterProducts()

	got := Filter{MinPrice: int64Ptr(2000)}.Apply(products)
	assert.ElementsMatch(t, []string{"f1", "f3"}, ids(got))

	got = Filter{MaxPrice: int64Ptr(3000)}.Apply(products)
	assert.ElementsMatch(t, []string{"f2", "f3"}, ids(got))

	got = Filter{MinPrice: int64Ptr(2000), MaxPrice: int64Ptr(4000)}.Apply(products)
	assert.Equal(t, []string{"f3"}, ids(got))

	// Bounds are inclusive.
	got = Filter{MinPrice: int64Ptr(5000), MaxPrice: int64Ptr(5000)}.Apply(products)
	assert.Equal(t, []string{"f1"}, ids(got))
}

func TestFilterSizesRequireStock(t *testing.T) {
	products := filterProducts()

	// f1's only M variant has zero stock, so only f2 qualifies.
	got := Filter{Sizes: []string{"M"}}.Apply(products)
	require.Len(t, got, 1)
	assert.Equal(t, "f2", got[0].ID)

	got = Filter{Sizes: []string{"L", "S"}}.Apply(products)
	assert.ElementsMatch(t, []string{"f1", "f3"}, ids(got))
}

func TestFilterColorsRequireStock(t *testing.T) {
	products := filterProducts()

	// f1's Negro variant is out of stock; its Blanco variant is not.
	assert.Empty(t, Filter{Colors: []string{"Negro"}}.Apply(products))
	assert.Equal(t, []string{"f1"}, ids(Filter{Colors: []string{"Blanco"}}.Apply(products)))
}

func TestFilterSizesAndColorsMatchIndependently(t *testing.T) {
	products := filterProducts()

	// f1 has an in-stock L and an in-stock Blanco; they happen to be the
	// same variant, but the match does not require that.
	got := Filter{Sizes: []string{"L"}, Colors: []string{"Blanco"}}.Apply(products)
	assert.Equal(t, []string{"f1"}, ids(got))
}

func TestFilterTags(t *testing.T) {
	got := Filter{Tags: []string{"cargo", "hoodie"}}.Apply(filterProducts())
	assert.ElementsMatch(t, []string{"f2", "f3"}, ids(got))
}

func TestFilterPredicatesCompose(t *testing.T) {
	got := Filter{
		Search:   "remera",
		Category: "remeras",
		MaxPrice: int64Ptr(6000),
	}.Apply(filterProducts())
	assert.Equal(t, []string{"f1"}, ids(got))

	got = Filter{Search: "remera", Category: "buzos"}.Apply(filterProducts())
	assert.Empty(t, got)
}

// ============================================================
// Sorting
// ============================================================

func TestFilterSortPriceAsc(t *testing.T) {
	// Prices 5000, 1000, 3000 in input order.
	got := Filter{SortBy: SortPriceAsc}.Apply(filterProducts())
	assert.Equal(t, []string{"f2", "f3", "f1"}, ids(got))
}

func TestFilterSortPriceDesc(t *testing.T) {
	got := Filter{SortBy: SortPriceDesc}.Apply(filterProducts())
	assert.Equal(t, []string{"f1", "f3", "f2"}, ids(got))
}

func TestFilterSortNewest(t *testing.T) {
	got := Filter{SortBy: SortNewest}.Apply(filterProducts())
	assert.Equal(t, []string{"f3", "f2", "f1"}, ids(got))
}

func TestFilterSortRelevanceFeaturedFirst(t *testing.T) {
	// f2 is the only featured product; the rest order by recency.
	got := Filter{SortBy: SortRelevance}.Apply(filterProducts())
	assert.Equal(t, []string{"f2", "f3", "f1"}, ids(got))

	// The empty sort mode means relevance.
	assert.Equal(t, ids(got), ids(Filter{}.Apply(filterProducts())))
}

func TestFilterSortIsStable(t *testing.T) {
	products := filterProducts()
	for i := range products {
		products[i].Price = 9000
		products[i].Featured = false
		products[i].CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	// With every key equal, each sort mode preserves input order.
	for _, mode := range ValidSortValues() {
		got := Filter{SortBy: mode}.Apply(products)
		assert.Equal(t, []string{"f1", "f2", "f3"}, ids(got), "sort mode %s", mode)
	}
}

// ============================================================
// Purity
// ============================================================

func TestFilterApplyIsIdempotent(t *testing.T) {
	f := Filter{Category: "remeras", SortBy: SortPriceAsc}
	once := f.Apply(filterProducts())
	twice := f.Apply(once)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterApplyDoesNotMutateInput(t *testing.T) {
	products := filterProducts()
	before := ids(products)

	Filter{SortBy: SortPriceAsc}.Apply(products)
	assert.Equal(t, before, ids(products))
}

// ============================================================
// Sort mode validation
// ============================================================

func TestIsValidSort(t *testing.T) {
	for _, mode := range ValidSortValues() {
		assert.True(t, IsValidSort(mode))
	}
	assert.True(t, IsValidSort(""))
	assert.False(t, IsValidSort("alphabetical"))
}
