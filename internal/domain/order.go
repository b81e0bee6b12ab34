package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Completed is terminal; the cancellable flag gates the
// single transition between them.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusCompleted = "completed"
)

// Order is a snapshot of a cart at placement time. Items, TotalItems and
// TotalPrice are copied from the cart; TotalQuantity is computed
// independently as the sum of line-item quantities.
type Order struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	Items         []CartItem         `json:"items" bson:"items"`
	TotalItems    int                `json:"totalItems" bson:"totalItems"`
	TotalPrice    float64            `json:"totalPrice" bson:"totalPrice"`
	TotalQuantity int                `json:"totalQuantity" bson:"totalQuantity"`
	Status        string             `json:"status" bson:"status"`
	Cancellable   bool               `json:"cancellable" bson:"cancellable"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewOrderFromCart builds the order snapshot for a cart.
func NewOrderFromCart(cart *Cart, now time.Time) *Order {
	quantity := 0
	for _, item := range cart.Items {
		quantity += item.Quantity
	}

	return &Order{
		UserID:        cart.UserID,
		Items:         append([]CartItem(nil), cart.Items...),
		TotalItems:    cart.TotalItems,
		TotalPrice:    cart.TotalPrice,
		TotalQuantity: quantity,
		Status:        OrderStatusPlaced,
		Cancellable:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
