package repository

import (
	"context"
	"errors"

	"github.com/shopkart/commerce-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository stores carts in the "carts" collection, one per
// user.
func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{coll: db.Collection("carts")}
}

func (r *mongoCartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Cart, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoCartRepository) findOne(ctx context.Context, query bson.M) (*domain.Cart, error) {
	var c domain.Cart
	err := r.coll.FindOne(ctx, query).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCartRepository) Upsert(ctx context.Context, c *domain.Cart) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoCartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}
