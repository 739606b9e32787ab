package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ehomershine/storefront/internal/model"
	"github.com/ehomershine/storefront/internal/repository"
	"github.com/ehomershine/storefront/internal/service"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns all products, newest first.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.All(r.Context())
	if err != nil {
		respondErrorDetail(w, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}

	if products == nil {
		products = []*model.Product{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

// Get returns one product by id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.products.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondErrorDetail(w, http.StatusInternalServerError, "Failed to fetch product", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"product": product})
}

// Update applies a partial payload to a product. Fields outside the
// whitelist are ignored.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch map[string]json.RawMessage
	err := json.NewDecoder(r.Body).Decode(&patch)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.products.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			respondError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrEmptyUpdate), errors.Is(err, service.ErrInvalidFieldValue):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondErrorDetail(w, http.StatusInternalServerError, "Failed to update product", err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"product": product,
	})
}

// Delete removes a product and its stored files. Deleting an already
// deleted id succeeds with a zero count.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := h.products.Delete(r.Context(), id)
	if err != nil {
		respondErrorDetail(w, http.StatusInternalServerError, "Failed to delete product", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": deleted,
	})
}
