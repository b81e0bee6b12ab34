package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/shopkart/commerce-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository stores products in the "products" collection.
func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{coll: db.Collection("products")}
}

func (r *mongoProductRepository) Insert(ctx context.Context, p *domain.Product) error {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var p domain.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepository) FindByTitle(ctx context.Context, title string) (*domain.Product, error) {
	var p domain.Product
	err := r.coll.FindOne(ctx, bson.M{"title": title, "isDeleted": false}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepository) Find(ctx context.Context, filter domain.ProductFilter) (domain.Products, error) {
	query := bson.M{"isDeleted": false}
	if len(filter.Sizes) > 0 {
		query["availableSizes"] = bson.M{"$in": filter.Sizes}
	}
	if filter.Name != "" {
		query["title"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Name),
			Options: "i",
		}}
	}
	if filter.PriceLessThan > 0 {
		query["price"] = bson.M{"$lt": filter.PriceLessThan}
	}

	cursor, err := r.coll.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var products domain.Products
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, u domain.ProductUpdate) (*domain.Product, error) {
	set := bson.M{"updatedAt": time.Now()}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.IsFreeShipping != nil {
		set["isFreeShipping"] = *u.IsFreeShipping
	}
	if u.Style != nil {
		set["style"] = *u.Style
	}
	if u.AvailableSizes != nil {
		set["availableSizes"] = u.AvailableSizes
	}
	if u.Installments != nil {
		set["installments"] = *u.Installments
	}
	if u.ProductImage != nil {
		set["productImage"] = *u.ProductImage
	}

	var p domain.Product
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepository) SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": at, "updatedAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
