package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a cart: a product reference and how many of it.
type CartItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart belongs to exactly one user. TotalItems counts distinct lines,
// TotalPrice is the sum of price times quantity over them.
type Cart struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	Items      []CartItem         `json:"items" bson:"items"`
	TotalItems int                `json:"totalItems" bson:"totalItems"`
	TotalPrice float64            `json:"totalPrice" bson:"totalPrice"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
