package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addLineForm struct {
	ProductID string `json:"product_id" validate:"required"`
	SKU       string `json:"sku" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(addLineForm{ProductID: "prod-1", SKU: "CAOS-M-NEG", Quantity: 2})
	assert.NoError(t, err)
}

func TestValidate_FieldNamesUseJSONTags(t *testing.T) {
	err := Validate(addLineForm{Quantity: -1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "product_id")
	assert.Contains(t, fields, "sku")
	assert.Contains(t, fields, "quantity")
	assert.Equal(t, "is required", fields["product_id"])
	assert.Equal(t, "must be greater than or equal to 0", fields["quantity"])
}

func TestValidate_EmailMessage(t *testing.T) {
	err := Validate(addLineForm{ProductID: "p", SKU: "s", Email: "not-an-email"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["email"])
}

func TestDecodeAndValidate(t *testing.T) {
	body := bytes.NewBufferString(`{"product_id":"prod-1","sku":"CAOS-M-NEG","quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", body)

	var form addLineForm
	require.NoError(t, DecodeAndValidate(req, &form))
	assert.Equal(t, "prod-1", form.ProductID)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString("{{"))

	var form addLineForm
	err := DecodeAndValidate(req, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
