package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() Product {
	return Product{
		ID:       "prod-1",
		Slug:     "remera-caos",
		Name:     "Remera Caos",
		Price:    18000,
		Category: "remeras",
		Tags:     []string{"oversize"},
		Variants: []Variant{
			{Size: "M", Color: "Negro", Stock: 3, SKU: "CAOS-M-NEG"},
			{Size: "L", Color: "Negro", Stock: 5, SKU: "CAOS-L-NEG"},
			{Size: "S", Color: "Negro", Stock: 0, SKU: "CAOS-S-NEG"},
		},
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func variantOf(t *testing.T, p Product, sku string) Variant {
	t.Helper()
	v, ok := p.FindVariant(sku)
	require.True(t, ok, "variant %s not found", sku)
	return v
}

// ============================================================================
// AddItem
// ============================================================================

func TestApply_AddItem_NewLine(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})

	require.Len(t, lines, 1)
	assert.Equal(t, "prod-1", lines[0].Product.ID)
	assert.Equal(t, "CAOS-M-NEG", lines[0].Variant.SKU)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestApply_AddItem_MergesSameProductAndSKU(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 1})
	lines = Apply(lines, AddItem{Product: p, Variant: v, Quantity: 1})

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestApply_AddItem_ClampsToStock(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG") // stock 3

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})
	lines = Apply(lines, AddItem{Product: p, Variant: v, Quantity: 5})

	require.Len(t, lines, 1)
	// 2 + 5 clamps to the stock of 3, not 7.
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestApply_AddItem_NewLineClampedToStock(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 99})

	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestApply_AddItem_ZeroStockIsNoOp(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-S-NEG") // stock 0

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 1})

	assert.Empty(t, lines)
}

func TestApply_AddItem_DefaultsQuantityToOne(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v})

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestApply_AddItem_DifferentSKUsMakeSeparateLines(t *testing.T) {
	p := testProduct()
	m := variantOf(t, p, "CAOS-M-NEG")
	l := variantOf(t, p, "CAOS-L-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: m, Quantity: 1})
	lines = Apply(lines, AddItem{Product: p, Variant: l, Quantity: 1})

	require.Len(t, lines, 2)
	// Insertion order is preserved.
	assert.Equal(t, "CAOS-M-NEG", lines[0].Variant.SKU)
	assert.Equal(t, "CAOS-L-NEG", lines[1].Variant.SKU)
}

func TestApply_AddItem_QuantityNeverExceedsStock(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG") // stock 3

	var lines []Line
	for i := 0; i < 10; i++ {
		lines = Apply(lines, AddItem{Product: p, Variant: v, Quantity: 2})
		require.Len(t, lines, 1)
		assert.LessOrEqual(t, lines[0].Quantity, v.Stock)
	}
}

// ============================================================================
// RemoveItem
// ============================================================================

func TestApply_RemoveItem(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})
	lines = Apply(lines, RemoveItem{ProductID: "prod-1", SKU: "CAOS-M-NEG"})

	assert.Empty(t, lines)
}

func TestApply_RemoveItem_AbsentIsNoOp(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})
	got := Apply(lines, RemoveItem{ProductID: "prod-999", SKU: "NOPE"})

	assert.Equal(t, lines, got)
}

func TestApply_RemoveItem_KeepsOtherLines(t *testing.T) {
	p := testProduct()
	m := variantOf(t, p, "CAOS-M-NEG")
	l := variantOf(t, p, "CAOS-L-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: m, Quantity: 1})
	lines = Apply(lines, AddItem{Product: p, Variant: l, Quantity: 1})
	lines = Apply(lines, RemoveItem{ProductID: "prod-1", SKU: "CAOS-M-NEG"})

	require.Len(t, lines, 1)
	assert.Equal(t, "CAOS-L-NEG", lines[0].Variant.SKU)
}

// ============================================================================
// UpdateQuantity
// ============================================================================

func TestApply_UpdateQuantity(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-L-NEG") // stock 5

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 1})
	lines = Apply(lines, UpdateQuantity{ProductID: "prod-1", SKU: "CAOS-L-NEG", Quantity: 4})

	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestApply_UpdateQuantity_ClampsToStock(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-L-NEG") // stock 5

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 1})
	lines = Apply(lines, UpdateQuantity{ProductID: "prod-1", SKU: "CAOS-L-NEG", Quantity: 50})

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestApply_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})

	zeroed := Apply(lines, UpdateQuantity{ProductID: "prod-1", SKU: "CAOS-M-NEG", Quantity: 0})
	removed := Apply(lines, RemoveItem{ProductID: "prod-1", SKU: "CAOS-M-NEG"})

	// q <= 0 is equivalent to RemoveItem.
	assert.Equal(t, removed, zeroed)
	assert.Empty(t, zeroed)
}

func TestApply_UpdateQuantity_NegativeRemovesLine(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})
	lines = Apply(lines, UpdateQuantity{ProductID: "prod-1", SKU: "CAOS-M-NEG", Quantity: -3})

	assert.Empty(t, lines)
}

func TestApply_UpdateQuantity_AbsentIsNoOp(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})
	got := Apply(lines, UpdateQuantity{ProductID: "prod-999", SKU: "NOPE", Quantity: 1})

	assert.Equal(t, lines, got)
}

// ============================================================================
// Clear and Hydrate
// ============================================================================

func TestApply_Clear(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: v, Quantity: 2})
	lines = Apply(lines, Clear{})

	assert.Empty(t, lines)
}

func TestApply_Hydrate_ReplacesWholesale(t *testing.T) {
	p := testProduct()
	m := variantOf(t, p, "CAOS-M-NEG")
	l := variantOf(t, p, "CAOS-L-NEG")

	lines := Apply(nil, AddItem{Product: p, Variant: m, Quantity: 1})
	snapshot := []Line{{Product: p, Variant: l, Quantity: 2}}

	lines = Apply(lines, Hydrate{Lines: snapshot})

	require.Len(t, lines, 1)
	assert.Equal(t, "CAOS-L-NEG", lines[0].Variant.SKU)
	assert.Equal(t, 2, lines[0].Quantity)
}

// ============================================================================
// Purity
// ============================================================================

func TestApply_NeverMutatesInput(t *testing.T) {
	p := testProduct()
	m := variantOf(t, p, "CAOS-M-NEG")
	l := variantOf(t, p, "CAOS-L-NEG")

	original := Apply(nil, AddItem{Product: p, Variant: m, Quantity: 2})
	original = Apply(original, AddItem{Product: p, Variant: l, Quantity: 1})
	want := copyLines(original)

	_ = Apply(original, AddItem{Product: p, Variant: m, Quantity: 1})
	_ = Apply(original, UpdateQuantity{ProductID: "prod-1", SKU: "CAOS-M-NEG", Quantity: 3})
	_ = Apply(original, RemoveItem{ProductID: "prod-1", SKU: "CAOS-M-NEG"})
	_ = Apply(original, Clear{})

	assert.Equal(t, want, original)
}

// ============================================================================
// Derived values
// ============================================================================

func TestCart_ItemCountAndSubtotal(t *testing.T) {
	p := testProduct()
	m := variantOf(t, p, "CAOS-M-NEG")
	l := variantOf(t, p, "CAOS-L-NEG")

	cart := &Cart{ID: "cart-1"}
	cart.Lines = Apply(cart.Lines, AddItem{Product: p, Variant: m, Quantity: 2})
	cart.Lines = Apply(cart.Lines, AddItem{Product: p, Variant: l, Quantity: 3})

	assert.Equal(t, 5, cart.ItemCount())
	assert.Equal(t, int64(5*18000), cart.Subtotal())

	cart.Lines = Apply(cart.Lines, RemoveItem{ProductID: "prod-1", SKU: "CAOS-L-NEG"})

	// Recomputed after every mutation, never stale.
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, int64(2*18000), cart.Subtotal())
}

func TestCart_EmptyDerivedValues(t *testing.T) {
	cart := &Cart{ID: "cart-1"}
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.ItemCount())
	assert.Zero(t, cart.Subtotal())
}

func TestCart_FindLineIndex(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG")

	cart := &Cart{Lines: Apply(nil, AddItem{Product: p, Variant: v, Quantity: 1})}

	assert.Equal(t, 0, cart.FindLineIndex("prod-1", "CAOS-M-NEG"))
	assert.Equal(t, -1, cart.FindLineIndex("prod-1", "CAOS-XL-NEG"))
	assert.Equal(t, -1, cart.FindLineIndex("prod-2", "CAOS-M-NEG"))
}

// ============================================================================
// End-to-end scenario
// ============================================================================

func TestCart_AddClampRemoveScenario(t *testing.T) {
	p := testProduct()
	v := variantOf(t, p, "CAOS-M-NEG") // stock 3

	cart := &Cart{ID: "cart-1"}
	assert.True(t, cart.IsEmpty())

	cart.Lines = Apply(cart.Lines, AddItem{Product: p, Variant: v, Quantity: 2})
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, 2*p.Price, cart.Subtotal())

	cart.Lines = Apply(cart.Lines, AddItem{Product: p, Variant: v, Quantity: 5})
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	cart.Lines = Apply(cart.Lines, RemoveItem{ProductID: p.ID, SKU: v.SKU})
	assert.True(t, cart.IsEmpty())
}
