package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ehomershine/storefront/internal/model"
	"github.com/ehomershine/storefront/internal/repository"
	"github.com/ehomershine/storefront/internal/storage"
)

var (
	ErrNoFiles        = errors.New("no files attached to this product")
	ErrNoDownloadURLs = errors.New("unable to generate download links")
)

// Download is one time-limited retrieval reference for a stored file.
type Download struct {
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// DownloadService issues signed URLs for the files of a product.
type DownloadService struct {
	products repository.ProductRepository
	storage  storage.Storage
	expiry   time.Duration
}

func NewDownloadService(products repository.ProductRepository, storage storage.Storage, expiry time.Duration) *DownloadService {
	return &DownloadService{
		products: products,
		storage:  storage,
		expiry:   expiry,
	}
}

// Links returns one signed URL per stored file of the product.
// Entries without a storage path are skipped, and a signing failure
// omits that file rather than failing the request. Zero producible
// links is an error.
func (s *DownloadService) Links(ctx context.Context, productID string) (*model.Product, []Download, error) {
	product, err := s.products.ByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	if len(product.Files) == 0 {
		return nil, nil, ErrNoFiles
	}

	expiresIn := int(s.expiry.Seconds())
	var downloads []Download
	for _, f := range product.Files {
		if f.Path == "" {
			continue
		}

		url, err := s.storage.SignedURL(ctx, f.Path, s.expiry)
		if err != nil {
			slog.Error("signed URL creation failed, omitting file",
				"product_id", productID,
				"path", f.Path,
				"error", err,
			)
			continue
		}

		downloads = append(downloads, Download{
			Filename:  f.Filename,
			URL:       url,
			ExpiresIn: expiresIn,
		})
	}

	if len(downloads) == 0 {
		return nil, nil, fmt.Errorf("%w: product %s", ErrNoDownloadURLs, productID)
	}

	return product, downloads, nil
}
