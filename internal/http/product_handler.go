package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	repo    catalog.RepoInterface
	timeout time.Duration
}

func NewProductHandler(repo catalog.RepoInterface, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		repo:    repo,
		timeout: timeout,
	}
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	f := catalog.Filter{
		MinPrice:    parseFloatParam(r, "min_price"),
		MaxPrice:    parseFloatParam(r, "max_price"),
		MinAutonomy: parseIntParam(r, "min_autonomy"),
		MinPower:    parseIntParam(r, "min_power"),
		Sort:        r.URL.Query().Get("sort"),
	}

	products, err := h.repo.List(ctx, f)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	product, err := h.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func parseFloatParam(r *http.Request, name string) float64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
