package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ehomershine/storefront/internal/model"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	ByID(ctx context.Context, id string) (*model.Product, error)
	All(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) (int64, error)
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `INSERT INTO products (id, title, category, description, price, old_price, thumbnail, files, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Category,
		product.Description,
		product.Price,
		product.OldPrice,
		product.Thumbnail,
		product.Files,
		product.CreatedAt,
	)

	return err
}

func (r *productRepository) ByID(ctx context.Context, id string) (*model.Product, error) {
	product := &model.Product{}
	query := `SELECT * FROM products WHERE id = $1`

	err := r.db.GetContext(ctx, product, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}

	return product, err
}

func (r *productRepository) All(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	query := `SELECT * FROM products ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `UPDATE products
	          SET title = $1, category = $2, description = $3, price = $4, old_price = $5, thumbnail = $6, files = $7
	          WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		product.Title,
		product.Category,
		product.Description,
		product.Price,
		product.OldPrice,
		product.Thumbnail,
		product.Files,
		product.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
