package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seeacid/stardeadIA/internal/domain"
	"github.com/seeacid/stardeadIA/internal/event"
	apperrors "github.com/seeacid/stardeadIA/pkg/errors"
	pkgkafka "github.com/seeacid/stardeadIA/pkg/kafka"
)

func newTestCheckout(t *testing.T, repo *mockCartRepository, paymentDelay time.Duration) *CheckoutService {
	t.Helper()
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	producer := event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
	cartSvc := NewCartService(testCatalog(t), repo, producer, logger)
	return NewCheckoutService(cartSvc, producer, logger, paymentDelay)
}

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName:  "Lucía",
		LastName:   "Fernández",
		Email:      "lucia@example.com",
		Phone:      "+5491155550000",
		Address:    "Av. Corrientes 1234",
		City:       "Buenos Aires",
		Province:   "CABA",
		PostalCode: "C1043",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCheckout(t, repo, 0)
	ctx := context.Background()

	repo.On("Get", ctx, "cart-1").Return(storedCart("cart-1"), nil)
	repo.On("Delete", ctx, "cart-1").Return(nil)

	order, err := svc.PlaceOrder(ctx, "cart-1", PlaceOrderInput{
		Shipping:         validShipping(),
		ShippingOptionID: "express",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.ID, "SD-"))
	assert.Equal(t, "cart-1", order.CartID)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(36000), order.Subtotal)
	assert.Equal(t, int64(5500), order.ShippingCost)
	assert.Equal(t, int64(41500), order.Total)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, "express", order.ShippingOption.ID)

	repo.AssertExpectations(t)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCheckout(t, repo, 0)
	ctx := context.Background()

	repo.On("Get", ctx, "cart-1").Return(nil, apperrors.NotFound("cart", "cart-1"))

	_, err := svc.PlaceOrder(ctx, "cart-1", PlaceOrderInput{
		Shipping:         validShipping(),
		ShippingOptionID: "standard",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	repo.AssertExpectations(t)
}

func TestPlaceOrder_UnknownShippingOption(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCheckout(t, repo, 0)

	_, err := svc.PlaceOrder(context.Background(), "cart-1", PlaceOrderInput{
		Shipping:         validShipping(),
		ShippingOptionID: "drone",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "shipping option")
}

func TestPlaceOrder_UnknownProvince(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCheckout(t, repo, 0)

	shipping := validShipping()
	shipping.Province = "Narnia"

	_, err := svc.PlaceOrder(context.Background(), "cart-1", PlaceOrderInput{
		Shipping:         shipping,
		ShippingOptionID: "standard",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "province")
}

func TestPlaceOrder_MissingCartID(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCheckout(t, repo, 0)

	_, err := svc.PlaceOrder(context.Background(), "", PlaceOrderInput{
		Shipping:         validShipping(),
		ShippingOptionID: "standard",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPlaceOrder_CancelledDuringPayment(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCheckout(t, repo, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	repo.On("Get", mock.Anything, "cart-1").Return(storedCart("cart-1"), nil)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := svc.PlaceOrder(ctx, "cart-1", PlaceOrderInput{
		Shipping:         validShipping(),
		ShippingOptionID: "standard",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)

	repo.AssertExpectations(t)
}

func TestPlaceOrder_ClearFailureDoesNotFailOrder(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCheckout(t, repo, 0)
	ctx := context.Background()

	repo.On("Get", ctx, "cart-1").Return(storedCart("cart-1"), nil)
	repo.On("Delete", ctx, "cart-1").Return(assert.AnError)

	order, err := svc.PlaceOrder(ctx, "cart-1", PlaceOrderInput{
		Shipping:         validShipping(),
		ShippingOptionID: "interior",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(36000+6000), order.Total)

	repo.AssertExpectations(t)
}
