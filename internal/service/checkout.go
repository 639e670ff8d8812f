package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seeacid/stardeadIA/internal/domain"
	"github.com/seeacid/stardeadIA/internal/event"
	apperrors "github.com/seeacid/stardeadIA/pkg/errors"
)

// PlaceOrderInput holds the parameters for placing an order.
type PlaceOrderInput struct {
	Shipping         domain.ShippingInfo `json:"shipping" validate:"required"`
	ShippingOptionID string              `json:"shipping_option_id" validate:"required"`
}

// CheckoutService turns a cart into an order. Payment is simulated: after a
// configurable processing delay it always succeeds. Orders are returned to
// the caller and published as events, never persisted.
type CheckoutService struct {
	cart         *CartService
	producer     *event.Producer
	logger       *slog.Logger
	paymentDelay time.Duration
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(cart *CartService, producer *event.Producer, logger *slog.Logger, paymentDelay time.Duration) *CheckoutService {
	return &CheckoutService{
		cart:         cart,
		producer:     producer,
		logger:       logger,
		paymentDelay: paymentDelay,
	}
}

// PlaceOrder validates the shipping details, simulates the payment, clears
// the cart, and returns the completed order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cartID string, input PlaceOrderInput) (*domain.Order, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	option, ok := domain.ShippingOptionByID(input.ShippingOptionID)
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown shipping option %q", input.ShippingOptionID))
	}
	if !domain.IsValidProvince(input.Shipping.Province) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown province %q", input.Shipping.Province))
	}

	cart, err := s.cart.GetCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	if err := s.processPayment(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	subtotal := cart.Subtotal()
	order := &domain.Order{
		ID:             domain.NewOrderID(now),
		CartID:         cartID,
		Lines:          cart.Lines,
		Shipping:       input.Shipping,
		ShippingOption: option,
		Subtotal:       subtotal,
		ShippingCost:   option.Price,
		Total:          subtotal + option.Price,
		Status:         domain.OrderStatusPaid,
		CreatedAt:      now,
	}

	if _, err := s.cart.ClearCart(ctx, cartID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("cart_id", cartID),
		slog.Int64("total", order.Total),
		slog.String("shipping_option", option.ID),
	)

	return order, nil
}

// processPayment simulates the payment gateway round trip. It respects
// context cancellation so an abandoned request does not hold the handler.
func (s *CheckoutService) processPayment(ctx context.Context) error {
	if s.paymentDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.paymentDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("payment interrupted: %w", ctx.Err())
	}
}
