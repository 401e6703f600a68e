package order

// Status is the fulfilment state assigned by the marketplace service.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Terminal reports whether the order can no longer be cancelled.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusDelivered
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

type Item struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the backend-owned record; the gateway only ever holds a read-only
// view of it. ID is zero until creation succeeds upstream.
type Order struct {
	ID              int64         `json:"id"`
	UserID          int           `json:"userId"`
	Items           []Item        `json:"items,omitempty"`
	TotalPrice      float64       `json:"totalPrice"`
	ShippingAddress string        `json:"shippingAddress"`
	Status          Status        `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	CreatedAt       string        `json:"createdAt,omitempty"`
}
