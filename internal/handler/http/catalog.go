package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/seeacid/stardeadIA/internal/catalog"
	"github.com/seeacid/stardeadIA/internal/service"
	apperrors "github.com/seeacid/stardeadIA/pkg/errors"
	"github.com/seeacid/stardeadIA/pkg/httputil"
	"github.com/seeacid/stardeadIA/pkg/pagination"
)

// defaultRelatedLimit caps the related-products strip when no limit is given.
const defaultRelatedLimit = 4

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new catalog HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.ListProducts(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetFacets handles GET /api/v1/products/facets
func (h *ProductHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.GetFacets(r.Context())})
}

// GetFeatured handles GET /api/v1/products/featured
func (h *ProductHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Featured(r.Context())})
}

// GetNewArrivals handles GET /api/v1/products/new
func (h *ProductHandler) GetNewArrivals(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.NewArrivals(r.Context())})
}

// GetProduct handles GET /api/v1/products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// GetRelated handles GET /api/v1/products/{slug}/related
func (h *ProductHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	limit := defaultRelatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 20 {
			limit = v
		}
	}

	related, err := h.service.Related(r.Context(), slug, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: related})
}

// filterFromQuery builds a catalog filter from list query parameters.
// Multi-valued parameters (sizes, colors, tags) are comma separated.
func filterFromQuery(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()

	filter := catalog.Filter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		Sizes:    splitList(q.Get("sizes")),
		Colors:   splitList(q.Get("colors")),
		Tags:     splitList(q.Get("tags")),
		SortBy:   strings.TrimSpace(q.Get("sort_by")),
	}

	for _, bound := range []struct {
		name string
		dst  **int64
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
	} {
		raw := q.Get(bound.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return catalog.Filter{}, apperrors.InvalidInput(fmt.Sprintf("%s must be an integer amount", bound.name))
		}
		*bound.dst = &v
	}

	return filter, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
