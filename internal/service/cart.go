package service

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/repository"
)

// CartService maintains the per-user cart that order placement snapshots.
type CartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type cartService struct {
	carts    repository.CartRepository
	products ProductRepo
	logger   hclog.Logger
}

func NewCartService(
	carts repository.CartRepository,
	products ProductRepo,
	logger hclog.Logger) CartService {
	return &cartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// AddItem puts quantity units of a product into the user's cart,
// creating the cart on first use and incrementing the existing line when
// the product is already in it.
func (s *cartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	s.logger.Debug("Adding item to cart", "user_id", userID, "product_id", productID)

	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}
	pid, err := parseObjectID(productID, "productId")
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, domain.Invalidf("quantity", "should be a positive number")
	}

	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted {
		return nil, domain.ErrProductDeleted
	}

	now := time.Now()
	cart, err := s.carts.FindByUser(ctx, uid)
	if errors.Is(err, domain.ErrCartNotFound) {
		cart = &domain.Cart{UserID: uid, CreatedAt: now}
	} else if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == pid {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: pid, Quantity: quantity})
	}
	cart.TotalItems = len(cart.Items)
	cart.TotalPrice += product.Price * float64(quantity)
	cart.UpdatedAt = now

	if err := s.carts.Upsert(ctx, cart); err != nil {
		s.logger.Error("Unable to save cart", "user_id", userID, "error", err)
		return nil, err
	}
	return cart, nil
}

func (s *cartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}
	return s.carts.FindByUser(ctx, uid)
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return err
	}

	cart, err := s.carts.FindByUser(ctx, uid)
	if err != nil {
		return err
	}
	return s.carts.Delete(ctx, cart.ID)
}
