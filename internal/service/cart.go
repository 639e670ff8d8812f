package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/seeacid/stardeadIA/internal/catalog"
	"github.com/seeacid/stardeadIA/internal/domain"
	"github.com/seeacid/stardeadIA/internal/event"
	"github.com/seeacid/stardeadIA/internal/repository"
	apperrors "github.com/seeacid/stardeadIA/pkg/errors"
)

// AddItemInput holds the parameters for adding an item to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	SKU       string `json:"sku" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// CartService implements the business logic for cart operations. State
// transitions go through domain.Apply; this layer resolves catalog data,
// loads and persists snapshots, and publishes events. Persistence is best
// effort: a cart that cannot be loaded starts empty, and a snapshot that
// cannot be saved is logged and dropped, never surfaced to the shopper.
type CartService struct {
	catalog  *catalog.Catalog
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cat *catalog.Catalog, repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		catalog:  cat,
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for the given cart ID. If no snapshot exists,
// or the stored one cannot be read, it returns an empty cart. Lines are
// refreshed against the current catalog on every read.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	return s.loadOrEmpty(ctx, cartID), nil
}

// AddItem resolves the product and variant from the catalog and adds the
// line to the cart, merging with an existing line for the same variant.
// Quantities clamp to available stock; adding a sold-out variant leaves the
// cart unchanged.
func (s *CartService) AddItem(ctx context.Context, cartID string, input AddItemInput) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.SKU == "" {
		return nil, apperrors.InvalidInput("sku is required")
	}

	product, ok := s.catalog.ByID(input.ProductID)
	if !ok {
		return nil, apperrors.NotFound("product", input.ProductID)
	}
	variant, ok := product.FindVariant(input.SKU)
	if !ok {
		return nil, apperrors.NotFound("variant", input.SKU)
	}

	cart := s.mutate(ctx, cartID, domain.AddItem{
		Product:  product,
		Variant:  variant,
		Quantity: input.Quantity,
	})

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("cart_id", cartID),
		slog.String("product_id", input.ProductID),
		slog.String("sku", input.SKU),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of the matching line. Zero removes the
// line; a line that does not exist is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID, sku string, quantity int) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if sku == "" {
		return nil, apperrors.InvalidInput("sku is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}

	cart := s.mutate(ctx, cartID, domain.UpdateQuantity{
		ProductID: productID,
		SKU:       sku,
		Quantity:  quantity,
	})

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("cart_id", cartID),
		slog.String("product_id", productID),
		slog.String("sku", sku),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes the matching line from the cart. A line that does not
// exist is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID, sku string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if sku == "" {
		return nil, apperrors.InvalidInput("sku is required")
	}

	cart := s.mutate(ctx, cartID, domain.RemoveItem{
		ProductID: productID,
		SKU:       sku,
	})

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("cart_id", cartID),
		slog.String("product_id", productID),
		slog.String("sku", sku),
	)

	return cart, nil
}

// ClearCart removes all lines and deletes the stored snapshot.
func (s *CartService) ClearCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	if err := s.repo.Delete(ctx, cartID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete cart snapshot",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishCartCleared(ctx, cartID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("cart_id", cartID),
	)

	now := time.Now().UTC()
	return &domain.Cart{ID: cartID, Lines: []domain.Line{}, CreatedAt: now, UpdatedAt: now}, nil
}

// mutate loads the cart, applies the operation, and persists and publishes
// the result best effort.
func (s *CartService) mutate(ctx context.Context, cartID string, op domain.Op) *domain.Cart {
	cart := s.loadOrEmpty(ctx, cartID)
	cart.Lines = domain.Apply(cart.Lines, op)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to save cart snapshot",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	return cart
}

// loadOrEmpty retrieves the stored cart for the given ID. A missing or
// unreadable snapshot yields a fresh empty cart rather than an error, so a
// shopper never loses the ability to keep shopping.
func (s *CartService) loadOrEmpty(ctx context.Context, cartID string) *domain.Cart {
	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "cart snapshot unreadable, starting empty",
				slog.String("cart_id", cartID),
				slog.String("error", err.Error()),
			)
		}
		return s.newEmptyCart(cartID)
	}

	cart.ID = cartID
	cart.Lines = s.refreshLines(cart.Lines)
	return cart
}

// refreshLines rebuilds stored lines against the current catalog: product
// snapshots are replaced with live data, quantities re-clamp to current
// stock, and lines whose product or variant no longer exists are dropped.
func (s *CartService) refreshLines(lines []domain.Line) []domain.Line {
	refreshed := make([]domain.Line, 0, len(lines))
	for _, line := range lines {
		product, ok := s.catalog.ByID(line.Product.ID)
		if !ok {
			continue
		}
		variant, ok := product.FindVariant(line.Variant.SKU)
		if !ok || variant.Stock < 1 {
			continue
		}
		quantity := line.Quantity
		if quantity > variant.Stock {
			quantity = variant.Stock
		}
		if quantity < 1 {
			continue
		}
		refreshed = append(refreshed, domain.Line{
			Product:  product,
			Variant:  variant,
			Quantity: quantity,
		})
	}
	return refreshed
}

// newEmptyCart creates a new empty cart for the given cart ID.
func (s *CartService) newEmptyCart(cartID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        cartID,
		Lines:     []domain.Line{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
