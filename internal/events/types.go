package events

// Catalog and order lifecycle events published on the bus and relayed to
// websocket clients.

type ProductCreated struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
}

type ProductUpdated struct {
	ProductID string `json:"product_id"`
}

type ProductDeleted struct {
	ProductID string `json:"product_id"`
}

type OrderPlaced struct {
	OrderID    string  `json:"order_id"`
	UserID     string  `json:"user_id"`
	TotalPrice float64 `json:"total_price"`
}

type OrderCompleted struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}
