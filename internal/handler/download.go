package handler

import (
	"errors"
	"net/http"

	"github.com/ehomershine/storefront/internal/repository"
	"github.com/ehomershine/storefront/internal/service"
)

type DownloadHandler struct {
	downloads *service.DownloadService
}

func NewDownloadHandler(downloads *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloads: downloads}
}

// Download returns a signed URL per stored file of the product.
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "Missing product ID")
		return
	}

	product, downloads, err := h.downloads.Links(r.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			respondError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrNoFiles):
			respondError(w, http.StatusNotFound, "No files attached to this product")
		case errors.Is(err, service.ErrNoDownloadURLs):
			respondError(w, http.StatusInternalServerError, "Unable to generate download links")
		default:
			respondErrorDetail(w, http.StatusInternalServerError, "Failed to fetch downloads", err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"productId": product.ID,
		"title":     product.Title,
		"downloads": downloads,
	})
}
