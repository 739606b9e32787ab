package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ehomershine/storefront/internal/model"
	"github.com/ehomershine/storefront/internal/repository"
	"github.com/ehomershine/storefront/internal/storage"
)

var (
	ErrEmptyUpdate       = errors.New("no updatable fields in payload")
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// updatableFields is the fixed whitelist of product fields the admin
// update operation may change. Anything else in the payload is ignored.
var updatableFields = map[string]bool{
	"title":       true,
	"price":       true,
	"old_price":   true,
	"category":    true,
	"description": true,
	"thumbnail":   true,
	"files":       true,
}

type ProductService struct {
	products repository.ProductRepository
	storage  storage.Storage
}

func NewProductService(products repository.ProductRepository, storage storage.Storage) *ProductService {
	return &ProductService{
		products: products,
		storage:  storage,
	}
}

// All returns every product, newest first.
func (s *ProductService) All(ctx context.Context) ([]*model.Product, error) {
	return s.products.All(ctx)
}

func (s *ProductService) ByID(ctx context.Context, id string) (*model.Product, error) {
	return s.products.ByID(ctx, id)
}

// Update applies a partial payload to a product. Only whitelisted
// fields are applied; a payload whose whitelist intersection is empty
// is a validation error.
func (s *ProductService) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (*model.Product, error) {
	product, err := s.products.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := 0
	for field, raw := range patch {
		if !updatableFields[field] {
			continue
		}
		err = applyField(product, field, raw)
		if err != nil {
			return nil, err
		}
		changed++
	}
	if changed == 0 {
		return nil, ErrEmptyUpdate
	}

	err = s.products.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func applyField(p *model.Product, field string, raw json.RawMessage) error {
	switch field {
	case "title":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: title must be a string", ErrInvalidFieldValue)
		}
		p.Title = strings.TrimSpace(v)
	case "price":
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: price must be a number", ErrInvalidFieldValue)
		}
		p.Price = v
	case "old_price":
		var v *float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: old_price must be a number or null", ErrInvalidFieldValue)
		}
		if v == nil {
			p.OldPrice = sql.NullFloat64{}
		} else {
			p.OldPrice = sql.NullFloat64{Float64: *v, Valid: true}
		}
	case "category":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: category must be a string", ErrInvalidFieldValue)
		}
		p.Category = strings.TrimSpace(v)
	case "description":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: description must be a string", ErrInvalidFieldValue)
		}
		p.Description = strings.TrimSpace(v)
	case "thumbnail":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: thumbnail must be a string", ErrInvalidFieldValue)
		}
		p.Thumbnail = v
	case "files":
		var v model.FileList
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: files must be a list of stored-file descriptors", ErrInvalidFieldValue)
		}
		p.Files = v
	}
	return nil
}

// Delete removes the product row and its stored objects. Storage
// removal uses the stored path of each file and is best effort: a
// failed removal is logged and the row is deleted regardless. Deleting
// an id that no longer exists reports zero removed rows.
func (s *ProductService) Delete(ctx context.Context, id string) (int64, error) {
	product, err := s.products.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return 0, nil
		}
		return 0, err
	}

	for _, f := range product.Files {
		if f.Path == "" {
			continue
		}
		err = s.storage.Remove(ctx, f.Path)
		if err != nil {
			slog.Warn("failed to remove stored object, leaving orphan",
				"product_id", id,
				"path", f.Path,
				"error", err,
			)
		}
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}

	return deleted, nil
}
