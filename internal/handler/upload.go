package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/ehomershine/storefront/internal/service"
	"github.com/ehomershine/storefront/internal/validation"
)

// maxUploadBytes caps one upload request (files arrive base64-encoded
// or as multipart parts).
const maxUploadBytes = 200 << 20

type UploadHandler struct {
	uploads *service.UploadService
}

func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type uploadFileEntry struct {
	Filename string `json:"filename"`
	Base64   string `json:"base64"`
}

type uploadRequest struct {
	Title       string            `json:"title"`
	Price       float64           `json:"price"`
	OldPrice    *float64          `json:"old_price"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Files       []uploadFileEntry `json:"files"`
}

// Upload accepts product metadata plus one or more files, either as a
// JSON body with base64-encoded entries or as multipart/form-data, and
// runs the upload workflow.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var in service.NewProductInput
	var files []service.FileInput
	var err error

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		in, files, err = parseMultipartUpload(r)
	} else {
		in, files, err = parseJSONUpload(r)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.uploads.Create(r.Context(), in, files)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrTitleRequired),
			errors.Is(err, validation.ErrPriceRequired),
			errors.Is(err, validation.ErrCategoryRequired),
			errors.Is(err, service.ErrNoValidFiles):
			respondError(w, http.StatusBadRequest, "Missing required fields. Required: title, price (>0), category, files")
		default:
			respondErrorDetail(w, http.StatusInternalServerError, "Failed to create product", err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"product": product,
	})
}

func parseJSONUpload(r *http.Request) (service.NewProductInput, []service.FileInput, error) {
	var req uploadRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return service.NewProductInput{}, nil, err
	}

	in := service.NewProductInput{
		Title:       req.Title,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Category:    req.Category,
		Description: req.Description,
	}

	return in, decodeFileEntries(req.Files), nil
}

// parseMultipartUpload reads parts in wire order so the upload order of
// binary file parts is preserved. A "files" text field may additionally
// carry a JSON array of base64 entries; those come first, matching the
// JSON input shape.
func parseMultipartUpload(r *http.Request) (service.NewProductInput, []service.FileInput, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return service.NewProductInput{}, nil, err
	}

	values := map[string]string{}
	var binaryFiles []service.FileInput

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return service.NewProductInput{}, nil, err
		}

		if part.FileName() == "" {
			data, err := io.ReadAll(part)
			if err != nil {
				return service.NewProductInput{}, nil, err
			}
			values[part.FormName()] = string(data)
			continue
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return service.NewProductInput{}, nil, err
		}
		binaryFiles = append(binaryFiles, service.FileInput{
			Filename: part.FileName(),
			Data:     data,
			MimeType: part.Header.Get("Content-Type"),
		})
	}

	in := service.NewProductInput{
		Title:       values["title"],
		Category:    values["category"],
		Description: values["description"],
	}
	if v := strings.TrimSpace(values["price"]); v != "" {
		in.Price, _ = strconv.ParseFloat(v, 64)
	}
	if v := strings.TrimSpace(values["old_price"]); v != "" {
		oldPrice, err := strconv.ParseFloat(v, 64)
		if err == nil {
			in.OldPrice = &oldPrice
		}
	}

	var files []service.FileInput
	if raw := values["files"]; raw != "" {
		var entries []uploadFileEntry
		err := json.Unmarshal([]byte(raw), &entries)
		if err != nil {
			slog.Debug("ignoring malformed files field", "error", err)
		} else {
			files = decodeFileEntries(entries)
		}
	}
	files = append(files, binaryFiles...)

	return in, files, nil
}

// decodeFileEntries converts base64 entries to the normalized file
// shape. Entries that fail to decode keep an empty payload and are
// tagged and dropped by the workflow's filter step.
func decodeFileEntries(entries []uploadFileEntry) []service.FileInput {
	files := make([]service.FileInput, 0, len(entries))
	for _, e := range entries {
		data, err := base64.StdEncoding.DecodeString(e.Base64)
		if err != nil {
			data = nil
		}
		files = append(files, service.FileInput{
			Filename: e.Filename,
			Data:     data,
		})
	}
	return files
}
