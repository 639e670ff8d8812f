// Package catalog holds the static product collection and the query engine
// over it: filtering, sorting, facets, and related-product lookups. The
// collection is bundled into the binary and never mutated after load.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/seeacid/stardeadIA/internal/domain"
	"github.com/seeacid/stardeadIA/pkg/slug"
)

//go:embed data/products.json
var productsJSON []byte

// Catalog is a read-only, ordered product collection with index lookups.
type Catalog struct {
	products []domain.Product
	bySlug   map[string]int
	byID     map[string]int
}

// Load builds the catalog from the bundled data file.
func Load() (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("parse bundled catalog: %w", err)
	}
	return New(products)
}

// New builds a catalog from the given products, validating catalog
// invariants: unique ids and slugs, unique (size, color) pairs per product,
// and non-negative stock. Products without a slug get one derived from
// their name.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: products,
		bySlug:   make(map[string]int, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for i := range c.products {
		p := &c.products[i]
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: product at index %d has no id", i)
		}
		if p.Slug == "" {
			p.Slug = slug.Generate(p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate product slug %q", p.Slug)
		}

		seen := make(map[[2]string]bool, len(p.Variants))
		for _, v := range p.Variants {
			if v.Stock < 0 {
				return nil, fmt.Errorf("catalog: product %q variant %q has negative stock", p.ID, v.SKU)
			}
			key := [2]string{v.Size, v.Color}
			if seen[key] {
				return nil, fmt.Errorf("catalog: product %q has duplicate variant (%s, %s)", p.ID, v.Size, v.Color)
			}
			seen[key] = true
		}

		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i
	}

	return c, nil
}

// Products returns the full collection in catalog order.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// BySlug returns the product with the given slug, or false when unknown.
func (c *Catalog) BySlug(s string) (domain.Product, bool) {
	if i, ok := c.bySlug[s]; ok {
		return c.products[i], true
	}
	return domain.Product{}, false
}

// ByID returns the product with the given id, or false when unknown.
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	if i, ok := c.byID[id]; ok {
		return c.products[i], true
	}
	return domain.Product{}, false
}

// Featured returns the featured products in catalog order.
func (c *Catalog) Featured() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns the products flagged as new, in catalog order.
func (c *Catalog) NewArrivals() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit products sharing the given product's category
// or at least one of its tags, excluding the product itself, in catalog
// order. Results are not ranked by similarity strength.
func (c *Catalog) Related(p domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return nil
	}
	var out []domain.Product
	for _, other := range c.products {
		if other.ID == p.ID {
			continue
		}
		if other.Category == p.Category || sharesTag(other, p) {
			out = append(out, other)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func sharesTag(a, b domain.Product) bool {
	for _, t := range a.Tags {
		if b.HasTag(t) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories, sorted alphabetically.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Sizes returns the distinct variant sizes across all products, sorted in
// the canonical garment order; sizes outside it sort alphabetically after.
func (c *Catalog) Sizes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		for _, v := range p.Variants {
			if !seen[v.Size] {
				seen[v.Size] = true
				out = append(out, v.Size)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := sizeRank(out[i]), sizeRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// Colors returns the distinct variant colors across all products, sorted
// alphabetically.
func (c *Catalog) Colors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		for _, v := range p.Variants {
			if !seen[v.Color] {
				seen[v.Color] = true
				out = append(out, v.Color)
			}
		}
	}
	sort.Strings(out)
	return out
}

// canonicalSizes is the fixed garment size ordering; "Único" is the
// one-size label.
var canonicalSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "Único"}

// sizeRank returns the canonical position of a size, or len(canonicalSizes)
// for unknown sizes so they sort after the known ones.
func sizeRank(size string) int {
	for i, s := range canonicalSizes {
		if s == size {
			return i
		}
	}
	return len(canonicalSizes)
}
