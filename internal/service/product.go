package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/events"
	"github.com/shopkart/commerce-api/internal/files"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService owns the catalog operations. Update runs every present
// patch field through the reconciler before a single merged write;
// Delete is a soft delete and is idempotent.
type ProductService interface {
	Create(ctx context.Context, input domain.NewProductInput) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) (domain.Products, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, bool, error)
	Delete(ctx context.Context, id string) (alreadyDeleted bool, err error)
}

type productService struct {
	repo     ProductRepo
	store    files.Storage
	eventBus *events.EventBus[any]
	logger   hclog.Logger
}

// ProductRepo is the slice of the repository the product service needs.
type ProductRepo interface {
	Insert(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindByTitle(ctx context.Context, title string) (*domain.Product, error)
	Find(ctx context.Context, filter domain.ProductFilter) (domain.Products, error)
	Update(ctx context.Context, id primitive.ObjectID, u domain.ProductUpdate) (*domain.Product, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

func NewProductService(
	repo ProductRepo,
	store files.Storage,
	eventBus *events.EventBus[any],
	logger hclog.Logger) ProductService {
	return &productService{
		repo:     repo,
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *productService) Create(ctx context.Context, input domain.NewProductInput) (*domain.Product, error) {
	s.logger.Debug("Creating product", "title", input.Title)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Invalidf("title", "is required and should not be an empty string")
	}
	if !domain.IsValidWords(title) {
		return nil, domain.Invalidf("title", "should contain alphabetic words only")
	}
	if _, err := s.repo.FindByTitle(ctx, title); err == nil {
		return nil, domain.ErrDuplicateTitle
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	if domain.Blank(input.Description) {
		return nil, domain.Invalidf("description", "is required and should not be an empty string")
	}

	price, ok := domain.ParsePrice(input.Price)
	if !ok {
		return nil, domain.Invalidf("price", "is required and should be a positive number")
	}

	freeShipping := false
	if !domain.Blank(input.IsFreeShipping) {
		var ok bool
		freeShipping, ok = domain.ParseBoolFlag(input.IsFreeShipping)
		if !ok {
			return nil, domain.Invalidf("isFreeShipping", "should be boolean")
		}
	}

	if strings.TrimSpace(input.CurrencyID) != domain.CurrencyID {
		return nil, domain.Invalidf("currencyId", "should be %s", domain.CurrencyID)
	}
	if strings.TrimSpace(input.CurrencyFormat) != domain.CurrencyFormat {
		return nil, domain.Invalidf("currencyFormat", "should be %s", domain.CurrencyFormat)
	}

	var sizes []string
	if input.AvailableSizes != "" {
		var err error
		sizes, err = domain.NormalizeSizes(input.AvailableSizes)
		if err != nil {
			return nil, err
		}
	}

	style := strings.TrimSpace(input.Style)
	if input.Style != "" {
		if style == "" || !domain.IsValidWords(style) {
			return nil, domain.Invalidf("style", "should not be an empty string")
		}
	}

	installments := 0
	if !domain.Blank(input.Installments) {
		var ok bool
		installments, ok = domain.ParsePositiveInt(input.Installments)
		if !ok {
			return nil, domain.Invalidf("installments", "should be a positive number")
		}
	}

	if input.Image == nil {
		return nil, domain.Invalidf("productImage", "an uploaded file is required")
	}
	imageRef, err := s.storeImage(input.Image)
	if err != nil {
		s.logger.Error("Unable to store product image", "error", err)
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Price:          price,
		CurrencyID:     domain.CurrencyID,
		CurrencyFormat: domain.CurrencyFormat,
		IsFreeShipping: freeShipping,
		ProductImage:   imageRef,
		Style:          style,
		AvailableSizes: sizes,
		Installments:   installments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		s.logger.Error("Unable to insert product", "title", title, "error", err)
		return nil, err
	}

	s.eventBus.Publish(events.ProductCreated{
		ProductID: product.ID.Hex(),
		Title:     product.Title,
	})
	return product, nil
}

func (s *productService) List(ctx context.Context, filter domain.ProductFilter) (domain.Products, error) {
	s.logger.Debug("Listing products",
		"sizes", filter.Sizes, "name", filter.Name, "price_less_than", filter.PriceLessThan)

	products, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.logger.Error("Unable to list products", "error", err)
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseObjectID(id, "productId")
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted {
		return nil, domain.ErrProductDeleted
	}
	return product, nil
}

// Update reconciles the patch against the stored product and applies the
// staged field set as one merge. The bool result reports whether a write
// happened; a patch that stages nothing is a no-op, not an error.
func (s *productService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, bool, error) {
	oid, err := parseObjectID(id, "productId")
	if err != nil {
		return nil, false, err
	}

	current, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, false, err
	}

	set, err := s.reconcile(ctx, current, patch)
	if err != nil {
		return nil, false, err
	}
	if set.Empty() {
		s.logger.Debug("Nothing to update", "id", id)
		return current, false, nil
	}

	updated, err := s.repo.Update(ctx, oid, set)
	if err != nil {
		s.logger.Error("Unable to update product", "id", id, "error", err)
		return nil, false, err
	}

	s.eventBus.Publish(events.ProductUpdated{ProductID: updated.ID.Hex()})
	return updated, true, nil
}

func (s *productService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id, "productId")
	if err != nil {
		return false, err
	}

	product, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return false, err
	}
	if product.IsDeleted {
		// repeat deletes succeed without touching deletedAt
		return true, nil
	}

	if err := s.repo.SoftDelete(ctx, oid, time.Now()); err != nil {
		s.logger.Error("Unable to delete product", "id", id, "error", err)
		return false, err
	}

	s.eventBus.Publish(events.ProductDeleted{ProductID: id})
	return false, nil
}

// storeImage saves the upload under a generated object name and returns
// the stable reference clients fetch it back with.
func (s *productService) storeImage(upload *domain.FileUpload) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(upload.Name))
	if err := s.store.Save(filepath.Join("products", name), upload.Content); err != nil {
		return "", err
	}
	return "/uploads/products/" + name, nil
}

func parseObjectID(id, field string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.Invalidf(field, "is not a valid id")
	}
	return oid, nil
}
