package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/seeacid/stardeadIA/pkg/httputil"
	"github.com/seeacid/stardeadIA/pkg/logger"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// cartIDKey is the context key for the shopper's cart ID.
const cartIDKey contextKey = "cart_id"

// CartIDHeader carries the shopper's cart identifier. The storefront client
// generates it once and keeps it in local storage; the server never issues
// identities of its own.
const CartIDHeader = "X-Cart-ID"

// CartIDFromHeader is middleware that reads the X-Cart-ID header and stores
// it in the request context. Requests without the header are rejected with
// 400 Bad Request.
func CartIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := r.Header.Get(CartIDHeader)
		if cartID == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: CartIDHeader + " header is required"},
			})
			return
		}

		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		ctx = logger.WithCartID(ctx, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cartIDFromContext extracts the cart ID from the request context. Returns
// the cart ID and true if present, or empty string and false otherwise.
func cartIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(cartIDKey).(string)
	return id, ok && id != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CORS adds Cross-Origin Resource Sharing headers for the browser storefront.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Correlation-ID, "+CartIDHeader)
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
