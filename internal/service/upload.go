package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ehomershine/storefront/internal/model"
	"github.com/ehomershine/storefront/internal/repository"
	"github.com/ehomershine/storefront/internal/storage"
	"github.com/ehomershine/storefront/internal/validation"
)

var (
	ErrNoValidFiles = errors.New("at least one file with a filename and payload is required")
)

// FileInput is the common shape every upload source (JSON base64
// entries, multipart parts) normalizes to before the workflow runs.
type FileInput struct {
	Filename string
	Data     []byte
	MimeType string // derived from the filename when empty
}

// RejectedFile records why one incoming entry was dropped during
// filtering. A dropped entry is not a request error unless it leaves
// zero accepted files.
type RejectedFile struct {
	Filename string
	Reason   string
}

// NewProductInput carries the metadata fields of a product-creation
// request.
type NewProductInput struct {
	Title       string
	Price       float64
	OldPrice    *float64
	Category    string
	Description string
}

// UploadService turns a product-creation request into stored objects
// plus a persisted product row.
type UploadService struct {
	products repository.ProductRepository
	storage  storage.Storage
}

func NewUploadService(products repository.ProductRepository, storage storage.Storage) *UploadService {
	return &UploadService{
		products: products,
		storage:  storage,
	}
}

// FilterFiles splits incoming entries into accepted ones (filename and
// payload both present) and rejected ones tagged with the reason.
// Accepted entries get their mime type derived from the filename
// extension when the source did not supply one.
func FilterFiles(files []FileInput) ([]FileInput, []RejectedFile) {
	var accepted []FileInput
	var rejected []RejectedFile

	for _, f := range files {
		switch {
		case f.Filename == "":
			rejected = append(rejected, RejectedFile{Filename: f.Filename, Reason: "missing filename"})
		case len(f.Data) == 0:
			rejected = append(rejected, RejectedFile{Filename: f.Filename, Reason: "missing payload"})
		default:
			if f.MimeType == "" {
				f.MimeType = validation.MimeTypeForFilename(f.Filename)
			}
			accepted = append(accepted, f)
		}
	}

	return accepted, rejected
}

// StorageKey derives a unique object key for an uploaded file:
// products/<unix-millis>-<random-token>-<sanitized-filename>.
// The timestamp+token prefix keeps concurrent uploads of the same
// filename from colliding.
func StorageKey(filename string) string {
	token := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("products/%d-%s-%s", time.Now().UnixMilli(), token, validation.SanitizeFilename(filename))
}

// Create runs the upload workflow: validate metadata, filter file
// entries, write each file to the object store sequentially, then
// insert the product row. The first storage failure aborts the request.
// Objects already written for an aborted request are not rolled back;
// both orphan situations are logged.
func (s *UploadService) Create(ctx context.Context, in NewProductInput, files []FileInput) (*model.Product, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)

	err := validation.ValidateProductMetadata(in.Title, in.Price, in.Category)
	if err != nil {
		return nil, err
	}

	accepted, rejected := FilterFiles(files)
	for _, r := range rejected {
		slog.Debug("skipping file entry", "filename", r.Filename, "reason", r.Reason)
	}
	if len(accepted) == 0 {
		return nil, ErrNoValidFiles
	}

	stored := make(model.FileList, 0, len(accepted))
	for _, f := range accepted {
		key := StorageKey(f.Filename)

		err = s.storage.Put(ctx, key, f.Data, f.MimeType)
		if err != nil {
			slog.Error("storage write failed, aborting upload",
				"filename", f.Filename,
				"key", key,
				"orphaned_objects", len(stored),
				"error", err,
			)
			return nil, fmt.Errorf("failed to upload file to storage: %w", err)
		}

		url, ok := s.storage.PublicURL(ctx, key)
		if !ok {
			url = s.storage.FallbackURL(key)
		}

		stored = append(stored, model.StoredFile{
			Filename: f.Filename,
			Path:     key,
			URL:      url,
			MimeType: f.MimeType,
		})
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Thumbnail:   stored[0].URL,
		Files:       stored,
		CreatedAt:   time.Now().UTC(),
	}
	if in.OldPrice != nil {
		product.OldPrice = sql.NullFloat64{Float64: *in.OldPrice, Valid: true}
	}

	err = s.products.Create(ctx, product)
	if err != nil {
		slog.Error("product insert failed, storage objects orphaned",
			"orphaned_objects", len(stored),
			"error", err,
		)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return product, nil
}
