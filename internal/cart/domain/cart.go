package domain

// Item is one line in a visitor's cart. Name, price and image are
// snapshots taken when the product was added; they are not re-synced
// with the catalog afterwards.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Cart holds the items a visitor intends to buy. Items are unique by ID.
type Cart struct {
	Items []Item `json:"items"`
}

// TotalItems is the sum of quantities over all items.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity over all items.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
