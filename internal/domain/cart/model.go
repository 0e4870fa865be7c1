package cart

import "errors"

// Domain errors
var (
	ErrEmptyProductID  = errors.New("cart item product id cannot be empty")
	ErrInvalidQuantity = errors.New("cart item quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
)

// Item is one line in the cart. Quantity is always >= 1.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Cart holds an ordered list of items with unique product ids.
type Cart struct {
	Items []Item `json:"items"`
}

// Add inserts an item, merging into the existing line when the product id
// is already present (quantities add, price/name from the existing line).
// PRE: item has a product id and quantity >= 1
// POST: product ids in Items remain unique
func (c *Cart) Add(item Item) error {
	if item.ProductID == "" {
		return ErrEmptyProductID
	}
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// SetQuantity replaces the quantity of an existing line.
// PRE: quantity >= 1; the product id is in the cart
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove deletes a line by product id. Removing an absent id is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Total returns the cart total in cents.
// INVARIANT: Cart is not mutated
func (c *Cart) Total() int {
	total := 0
	for _, it := range c.Items {
		total += it.UnitPrice * it.Quantity
	}
	return total
}

// Count returns the total number of units across all lines.
// INVARIANT: Cart is not mutated
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
