package catalog

// Product mirrors the marketplace service's product record. The gateway
// treats it as read-only; stock in particular is never mutated locally.
type Product struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"ownerId,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CategoryID  int64   `json:"categoryId"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
