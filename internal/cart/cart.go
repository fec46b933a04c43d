package cart

import "time"

// MaxLineQuantity bounds a single cart line.
const MaxLineQuantity = 999

func (c *Cart) index(productID string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges qty into an existing line or appends a new one. A zero qty
// means one unit.
func (c *Cart) Add(productID string, qty int, now time.Time) error {
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return ErrInvalidQuantity
	}
	if qty > MaxLineQuantity {
		return ErrQuantityTooLarge
	}

	if i := c.index(productID); i >= 0 {
		if c.Lines[i].Quantity+qty > MaxLineQuantity {
			return ErrQuantityTooLarge
		}
		c.Lines[i].Quantity += qty
		return nil
	}

	c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: qty, AddedAt: now})
	return nil
}

// SetQuantity overwrites a line's quantity. Lines never hold less than one.
func (c *Cart) SetQuantity(productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if qty > MaxLineQuantity {
		return ErrQuantityTooLarge
	}

	i := c.index(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	c.Lines[i].Quantity = qty
	return nil
}

// Remove reports whether a line was dropped.
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// Clear reports whether there was anything to drop.
func (c *Cart) Clear() bool {
	if len(c.Lines) == 0 {
		return false
	}
	c.Lines = nil
	return true
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Lines) == 0
}

func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids = append(ids, l.ProductID)
	}
	return ids
}
