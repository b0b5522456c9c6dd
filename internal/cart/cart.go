// Package cart implements the client-local shopping cart: an ordered list of
// product lines that lives in memory and is never persisted. Checkout reads
// it once and clears it.
package cart

import (
	"github.com/shopspring/decimal"

	"farmgate/internal/domain"
)

type Line struct {
	Product  domain.Product
	Quantity int
}

type Cart struct {
	lines []Line
}

func New() *Cart { return &Cart{} }

// Add puts one unit of p in the cart. Lines are unique per product id: a
// repeat add increments the existing line instead of appending a second one.
func (c *Cart) Add(p domain.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
}

// UpdateQuantity sets the line quantity. Quantities below 1 are silently
// ignored; removal is Remove's job.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Remove(productID int64) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.Product.ID != productID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Total sums price × quantity over all lines using the current product
// prices. The server freezes unit prices separately at checkout.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Clear() { c.lines = nil }
