package routes

import (
	"io/fs"
	"net/http"

	"github.com/ehomershine/storefront/internal/app"
	"github.com/ehomershine/storefront/internal/handler"
	"github.com/ehomershine/storefront/internal/middleware"
	"github.com/ehomershine/storefront/web"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.Cfg.AppName, app.Cfg.AppEnv)
	upload := handler.NewUploadHandler(app.UploadService)
	product := handler.NewProductHandler(app.ProductService)
	download := handler.NewDownloadHandler(app.DownloadService)

	requireAdmin := middleware.RequireAdmin(app.Cfg.AdminSecret)

	mux := http.NewServeMux()

	// Public API
	mux.HandleFunc("GET /api/health", health.Health)
	mux.HandleFunc("GET /api/products", product.List)
	mux.HandleFunc("GET /api/products/{id}", product.Get)
	mux.HandleFunc("GET /api/download/{productId}", download.Download)

	// Admin API
	mux.HandleFunc("POST /api/upload", requireAdmin(upload.Upload))
	mux.HandleFunc("PUT /api/products/{id}", requireAdmin(product.Update))
	mux.HandleFunc("DELETE /api/products/{id}", requireAdmin(product.Delete))

	// Static frontend (storefront + admin panel)
	static, _ := fs.Sub(web.StaticFS, "static")
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS(app.Cfg.FrontendOrigin),
		middleware.RequestLogging,
	)
}
