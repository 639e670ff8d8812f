package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seeacid/stardeadIA/internal/domain"
	pkgkafka "github.com/seeacid/stardeadIA/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated = "stardead.cart.updated"
	TopicCartCleared = "stardead.cart.cleared"
	TopicOrderPlaced = "stardead.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID    string         `json:"cart_id"`
	Lines     []CartLineData `json:"lines"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
	Currency  string         `json:"currency"`
}

// CartLineData is the line payload within cart events.
type CartLineData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	CartID string `json:"cart_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID        string         `json:"order_id"`
	CartID         string         `json:"cart_id"`
	Lines          []CartLineData `json:"lines"`
	Subtotal       int64          `json:"subtotal"`
	ShippingCost   int64          `json:"shipping_cost"`
	Total          int64          `json:"total"`
	Currency       string         `json:"currency"`
	ShippingOption string         `json:"shipping_option"`
	Province       string         `json:"province"`
	Email          string         `json:"email"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func cartLines(lines []domain.Line) []CartLineData {
	out := make([]CartLineData, len(lines))
	for i, line := range lines {
		out[i] = CartLineData{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			SKU:       line.Variant.SKU,
			Size:      line.Variant.Size,
			Color:     line.Variant.Color,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		}
	}
	return out
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		CartID:    cart.ID,
		Lines:     cartLines(cart.Lines),
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
		Currency:  domain.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.ID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", cart.ID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, cartID string) error {
	data := CartClearedData{CartID: cartID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, cartID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("cart_id", cartID),
	)

	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	data := OrderPlacedData{
		OrderID:        order.ID,
		CartID:         order.CartID,
		Lines:          cartLines(order.Lines),
		Subtotal:       order.Subtotal,
		ShippingCost:   order.ShippingCost,
		Total:          order.Total,
		Currency:       domain.Currency,
		ShippingOption: order.ShippingOption.ID,
		Province:       order.Shipping.Province,
		Email:          order.Shipping.Email,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.InfoContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
		slog.Int64("total", order.Total),
	)

	return nil
}
