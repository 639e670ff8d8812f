package domain

import "time"

// Line represents a single cart line: a product snapshot, one of its
// variants, and a positive quantity never exceeding the variant's stock.
// A cart holds at most one line per (product id, variant SKU) pair.
type Line struct {
	Product  Product `json:"product"`
	Variant  Variant `json:"variant"`
	Quantity int     `json:"quantity"`
}

// Cart represents a shopping cart. Lines keep insertion order for display.
// Item count and subtotal are derived on every read, never stored.
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Subtotal returns the sum of price times quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Product.Price * int64(l.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// FindLineIndex returns the index of the line matching the given product id
// and variant SKU, or -1 when absent.
func (c *Cart) FindLineIndex(productID, sku string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID && c.Lines[i].Variant.SKU == sku {
			return i
		}
	}
	return -1
}

// Op is a cart operation. The concrete types below form a tagged union
// processed by Apply.
type Op interface {
	isOp()
}

// AddItem inserts or merges a line. Quantities are clamped to the variant's
// stock; a request exceeding stock is capped, never rejected.
type AddItem struct {
	Product  Product
	Variant  Variant
	Quantity int
}

// RemoveItem deletes the matching line. A miss is a no-op, not an error.
type RemoveItem struct {
	ProductID string
	SKU       string
}

// UpdateQuantity sets the matching line's quantity. A non-positive quantity
// removes the line; a miss is a no-op.
type UpdateQuantity struct {
	ProductID string
	SKU       string
	Quantity  int
}

// Clear empties the cart.
type Clear struct{}

// Hydrate replaces the lines wholesale with a previously persisted snapshot.
type Hydrate struct {
	Lines []Line
}

func (AddItem) isOp()        {}
func (RemoveItem) isOp()     {}
func (UpdateQuantity) isOp() {}
func (Clear) isOp()          {}
func (Hydrate) isOp()        {}

// Apply is the pure cart state transition: it returns the line collection
// that results from applying op to lines, never mutating its input. Every
// operation is total; invalid targets and stock violations resolve to no-ops
// or clamped results rather than errors.
func Apply(lines []Line, op Op) []Line {
	switch op := op.(type) {
	case AddItem:
		return applyAdd(lines, op)

	case RemoveItem:
		return applyRemove(lines, op.ProductID, op.SKU)

	case UpdateQuantity:
		if op.Quantity <= 0 {
			return applyRemove(lines, op.ProductID, op.SKU)
		}
		idx := findLine(lines, op.ProductID, op.SKU)
		if idx < 0 {
			return lines
		}
		next := copyLines(lines)
		next[idx].Quantity = clampQuantity(op.Quantity, next[idx].Variant.Stock)
		return next

	case Clear:
		return []Line{}

	case Hydrate:
		return copyLines(op.Lines)

	default:
		return lines
	}
}

func applyAdd(lines []Line, op AddItem) []Line {
	quantity := op.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if idx := findLine(lines, op.Product.ID, op.Variant.SKU); idx >= 0 {
		next := copyLines(lines)
		next[idx].Quantity = clampQuantity(next[idx].Quantity+quantity, next[idx].Variant.Stock)
		return next
	}

	// A variant with no stock cannot yield a positive quantity; adding it
	// is a silent no-op.
	clamped := clampQuantity(quantity, op.Variant.Stock)
	if clamped < 1 {
		return lines
	}

	next := copyLines(lines)
	return append(next, Line{Product: op.Product, Variant: op.Variant, Quantity: clamped})
}

func applyRemove(lines []Line, productID, sku string) []Line {
	idx := findLine(lines, productID, sku)
	if idx < 0 {
		return lines
	}
	next := make([]Line, 0, len(lines)-1)
	next = append(next, lines[:idx]...)
	return append(next, lines[idx+1:]...)
}

func findLine(lines []Line, productID, sku string) int {
	for i := range lines {
		if lines[i].Product.ID == productID && lines[i].Variant.SKU == sku {
			return i
		}
	}
	return -1
}

func copyLines(lines []Line) []Line {
	next := make([]Line, len(lines))
	copy(next, lines)
	return next
}

// clampQuantity caps q to the available stock, flooring at zero.
func clampQuantity(q, stock int) int {
	if stock < 0 {
		stock = 0
	}
	if q > stock {
		return stock
	}
	return q
}
