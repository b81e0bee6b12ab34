package service

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/events"
	"github.com/shopkart/commerce-api/internal/repository"
)

// OrderService places orders from carts and completes them. Completion
// is gated by the order's cancellable flag; a non-cancellable order is
// rejected with a conflict, never silently skipped.
type OrderService interface {
	Create(ctx context.Context, userID, cartID string) (*domain.Order, error)
	Complete(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	eventBus *events.EventBus[any]
	logger   hclog.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	eventBus *events.EventBus[any],
	logger hclog.Logger) OrderService {
	return &orderService{
		orders:   orders,
		carts:    carts,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *orderService) Create(ctx context.Context, userID, cartID string) (*domain.Order, error) {
	s.logger.Debug("Placing order", "user_id", userID, "cart_id", cartID)

	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}
	cid, err := parseObjectID(cartID, "cartId")
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if cart.UserID != uid {
		return nil, domain.ErrCartNotOwned
	}

	order := domain.NewOrderFromCart(cart, time.Now())
	if err := s.orders.Insert(ctx, order); err != nil {
		s.logger.Error("Unable to place order", "cart_id", cartID, "error", err)
		return nil, err
	}

	s.eventBus.Publish(events.OrderPlaced{
		OrderID:    order.ID.Hex(),
		UserID:     userID,
		TotalPrice: order.TotalPrice,
	})
	return order, nil
}

func (s *orderService) Complete(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	s.logger.Debug("Completing order", "user_id", userID, "order_id", orderID)

	if _, err := parseObjectID(userID, "userId"); err != nil {
		return nil, err
	}
	oid, err := parseObjectID(orderID, "orderId")
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !order.Cancellable {
		return nil, domain.ErrOrderNotCancellable
	}

	// completed is terminal: the write also clears the cancellable flag
	updated, err := s.orders.SetStatus(ctx, oid, domain.OrderStatusCompleted, false)
	if err != nil {
		s.logger.Error("Unable to complete order", "order_id", orderID, "error", err)
		return nil, err
	}

	s.eventBus.Publish(events.OrderCompleted{
		OrderID: updated.ID.Hex(),
		UserID:  userID,
	})
	return updated, nil
}
