package domain

import "time"

// Order is the persisted order header. Line associations live in the
// order_products join table and are immutable after creation.
type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Total     float64   `json:"total"`
	Payment   bool      `json:"payment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderDetail is an order joined with its owning user and line products.
type OrderDetail struct {
	ID        int64
	Total     float64
	Payment   bool
	CreatedAt time.Time
	UpdatedAt time.Time
	User      PublicUser
	Products  []Product
}
