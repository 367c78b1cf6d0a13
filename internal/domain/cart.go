package domain

import "time"

// Cart holds the items a shopper intends to buy within one session.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	IsOpen    bool       `json:"is_open"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product line in the cart. Name, price, image and slug are
// snapshots taken when the item was first added; later catalog changes do not
// affect items already in the cart.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Slug     string  `json:"slug"`
	Quantity int     `json:"quantity"`
}

// TotalItems sums quantities across all items.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price * quantity across all items, in major currency units.
// Conversion to minor units happens only at checkout assembly.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
