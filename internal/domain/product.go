package domain

import (
	"time"
)

// Variant represents a purchasable size/color combination of a product.
// SKU is unique within the product; no two variants of the same product
// share a (size, color) pair.
type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
	SKU   string `json:"sku"`
}

// Product represents an immutable catalog entry.
type Product struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Price            int64     `json:"price"`
	CompareAtPrice   *int64    `json:"compare_at_price,omitempty"`
	Images           []string  `json:"images,omitempty"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	Variants         []Variant `json:"variants"`
	Tags             []string  `json:"tags,omitempty"`
	Composition      string    `json:"composition,omitempty"`
	Care             []string  `json:"care,omitempty"`
	Featured         bool      `json:"featured"`
	IsNew            bool      `json:"is_new"`
	IsLimitedEdition bool      `json:"is_limited_edition"`
	CreatedAt        time.Time `json:"created_at"`
}

// FindVariant returns the variant with the given SKU, or false when absent.
func (p *Product) FindVariant(sku string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.SKU == sku {
			return v, true
		}
	}
	return Variant{}, false
}

// TotalStock returns the stock summed over all variants.
func (p *Product) TotalStock() int {
	var total int
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// AvailableSizes returns the distinct sizes that have at least one in-stock
// variant, in variant order.
func (p *Product) AvailableSizes() []string {
	seen := make(map[string]bool)
	var sizes []string
	for _, v := range p.Variants {
		if v.Stock > 0 && !seen[v.Size] {
			seen[v.Size] = true
			sizes = append(sizes, v.Size)
		}
	}
	return sizes
}

// AvailableColors returns the distinct colors that have at least one in-stock
// variant, in variant order.
func (p *Product) AvailableColors() []string {
	seen := make(map[string]bool)
	var colors []string
	for _, v := range p.Variants {
		if v.Stock > 0 && !seen[v.Color] {
			seen[v.Color] = true
			colors = append(colors, v.Color)
		}
	}
	return colors
}

// DiscountPercent returns the rounded discount percentage against the
// compare-at price, or 0 when the product is not discounted.
func (p *Product) DiscountPercent() int {
	if p.CompareAtPrice == nil || *p.CompareAtPrice <= 0 {
		return 0
	}
	compareAt := *p.CompareAtPrice
	return int(float64(compareAt-p.Price)/float64(compareAt)*100 + 0.5)
}

// HasTag reports whether the product carries the given tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
