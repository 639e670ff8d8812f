package domain

import (
	"strconv"
	"strings"
	"time"
)

// Order status constants.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// orderIDPrefix marks Stardead order identifiers.
const orderIDPrefix = "SD-"

// Currency is the store currency. All amounts are integer ARS.
const Currency = "ARS"

// ShippingInfo holds the customer's shipping details collected at checkout.
type ShippingInfo struct {
	FirstName  string `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string `json:"last_name" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=6,max=30"`
	Address    string `json:"address" validate:"required,min=1,max=200"`
	City       string `json:"city" validate:"required,min=1,max=100"`
	Province   string `json:"province" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required,min=1,max=20"`
	Notes      string `json:"notes,omitempty" validate:"max=500"`
}

// ShippingOption represents a fixed shipping method offered at checkout.
type ShippingOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	EstimatedDays string `json:"estimated_days"`
}

// Order is the result of a completed checkout. Orders are not persisted;
// checkout is a simulated payment that returns the order to the caller.
type Order struct {
	ID             string         `json:"id"`
	CartID         string         `json:"cart_id"`
	Lines          []Line         `json:"lines"`
	Shipping       ShippingInfo   `json:"shipping"`
	ShippingOption ShippingOption `json:"shipping_option"`
	Subtotal       int64          `json:"subtotal"`
	ShippingCost   int64          `json:"shipping_cost"`
	Total          int64          `json:"total"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewOrderID derives an order identifier from the given time: the SD- prefix
// followed by the uppercase base-36 unix-millisecond timestamp.
func NewOrderID(t time.Time) string {
	return orderIDPrefix + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// ShippingOptions returns the fixed shipping methods.
func ShippingOptions() []ShippingOption {
	return []ShippingOption{
		{
			ID:            "standard",
			Name:          "Envío estándar",
			Description:   "CABA y GBA",
			Price:         3500,
			EstimatedDays: "3-5 días hábiles",
		},
		{
			ID:            "express",
			Name:          "Envío express",
			Description:   "CABA",
			Price:         5500,
			EstimatedDays: "24-48 hs hábiles",
		},
		{
			ID:            "interior",
			Name:          "Envío al interior",
			Description:   "Todo el país",
			Price:         6000,
			EstimatedDays: "5-7 días hábiles",
		},
	}
}

// ShippingOptionByID returns the shipping option with the given id, or false
// when unknown.
func ShippingOptionByID(id string) (ShippingOption, bool) {
	for _, o := range ShippingOptions() {
		if o.ID == id {
			return o, true
		}
	}
	return ShippingOption{}, false
}

// Provinces returns the Argentine provinces accepted in shipping addresses.
func Provinces() []string {
	return []string{
		"Buenos Aires", "CABA", "Catamarca", "Chaco", "Chubut", "Córdoba",
		"Corrientes", "Entre Ríos", "Formosa", "Jujuy", "La Pampa", "La Rioja",
		"Mendoza", "Misiones", "Neuquén", "Río Negro", "Salta", "San Juan",
		"San Luis", "Santa Cruz", "Santa Fe", "Santiago del Estero",
		"Tierra del Fuego", "Tucumán",
	}
}

// IsValidProvince checks whether the given province is in the accepted list.
func IsValidProvince(province string) bool {
	for _, p := range Provinces() {
		if p == province {
			return true
		}
	}
	return false
}
