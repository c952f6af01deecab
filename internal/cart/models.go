package cart

// Entry is one cart line.
type Entry struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
