package domain

// Product is an item sold through the checkout service.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	About string  `json:"about"`
	Price float64 `json:"price"`
}
