package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ehomershine/storefront/internal/config"
	"github.com/ehomershine/storefront/internal/db"
	"github.com/ehomershine/storefront/internal/repository"
	"github.com/ehomershine/storefront/internal/service"
	"github.com/ehomershine/storefront/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	UploadService   *service.UploadService
	ProductService  *service.ProductService
	DownloadService *service.DownloadService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	productRepository := repository.NewProductRepository(database)

	// Storage
	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	uploadService := service.NewUploadService(productRepository, fileStorage)
	productService := service.NewProductService(productRepository, fileStorage)
	downloadService := service.NewDownloadService(productRepository, fileStorage, cfg.SignedURLExpiry)

	return &App{
		Cfg:             cfg,
		DB:              database,
		UploadService:   uploadService,
		ProductService:  productService,
		DownloadService: downloadService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
