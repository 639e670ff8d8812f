package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/seeacid/stardeadIA/internal/domain"
	"github.com/seeacid/stardeadIA/internal/service"
	"github.com/seeacid/stardeadIA/pkg/httputil"
	"github.com/seeacid/stardeadIA/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// PlaceOrderRequest is the JSON request body for placing an order.
type PlaceOrderRequest struct {
	Shipping         domain.ShippingInfo `json:"shipping" validate:"required"`
	ShippingOptionID string              `json:"shipping_option_id" validate:"required"`
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	cartID, _ := cartIDFromContext(r.Context())

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), cartID, service.PlaceOrderInput{
		Shipping:         req.Shipping,
		ShippingOptionID: req.ShippingOptionID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// GetShippingOptions handles GET /api/v1/checkout/shipping-options
func (h *CheckoutHandler) GetShippingOptions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.ShippingOptions()})
}
