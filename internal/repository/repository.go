package repository

import (
	"context"
	"time"

	"github.com/shopkart/commerce-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository is the storage surface of the catalog. FindByTitle
// and Find only see non-deleted products; FindByID returns deleted ones
// so callers can distinguish "unknown id" from "deleted".
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindByTitle(ctx context.Context, title string) (*domain.Product, error)
	Find(ctx context.Context, filter domain.ProductFilter) (domain.Products, error)
	Update(ctx context.Context, id primitive.ObjectID, u domain.ProductUpdate) (*domain.Product, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type CartRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Cart, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	Upsert(ctx context.Context, c *domain.Cart) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderRepository interface {
	Insert(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string, cancellable bool) (*domain.Order, error)
}

type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, u domain.UserUpdate) (*domain.User, error)
}
