package kafka

import "time"

const (
	TopicOrderPlaced = `checkout-service.order-placed`
	ConsumerGroup    = ``
)

// OrderPlacedEvent is what downstream consumers see when a shopper hands an
// order off to WhatsApp. Contact details are deliberately not included.
type OrderPlacedEvent struct {
	OrderID    string      `json:"order_id"`
	Items      []OrderItem `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice int         `json:"total_price"` // smallest currency unit
	CreatedAt  time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
