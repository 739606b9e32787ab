package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ehomershine/storefront/internal/model"
	"github.com/ehomershine/storefront/internal/repository"
)

func seedProduct(repo *fakeRepo) *model.Product {
	p := &model.Product{
		ID:          "p1",
		Title:       "Card",
		Category:    "x",
		Description: "a card",
		Price:       100,
		Thumbnail:   "https://cdn.test/products/1-a.png",
		Files: model.FileList{
			{Filename: "a.png", Path: "products/1-a.png", URL: "https://cdn.test/products/1-a.png", MimeType: "image/png"},
			{Filename: "b.zip", Path: "products/2-b.zip", URL: "https://cdn.test/products/2-b.zip", MimeType: "application/zip"},
		},
		CreatedAt: time.Now().UTC(),
	}
	repo.products[p.ID] = p
	return p
}

func rawPatch(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var patch map[string]json.RawMessage
	err := json.Unmarshal([]byte(body), &patch)
	if err != nil {
		t.Fatalf("bad patch literal: %v", err)
	}
	return patch
}

func TestProductUpdateWhitelist(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	svc := NewProductService(repo, newFakeStorage())

	patch := rawPatch(t, `{"price": 150, "id": "hacked", "created_at": "2000-01-01T00:00:00Z", "bogus": 1}`)

	product, err := svc.Update(context.Background(), "p1", patch)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if product.Price != 150 {
		t.Errorf("price = %v, want 150", product.Price)
	}
	// Non-whitelisted fields are ignored, whitelisted ones untouched
	if product.ID != "p1" {
		t.Errorf("id = %q, want p1", product.ID)
	}
	if product.Title != "Card" || product.Category != "x" {
		t.Errorf("title/category mutated: %q / %q", product.Title, product.Category)
	}

	stored, _ := repo.ByID(context.Background(), "p1")
	if stored.Price != 150 {
		t.Errorf("stored price = %v, want 150", stored.Price)
	}
}

func TestProductUpdateFields(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	svc := NewProductService(repo, newFakeStorage())

	patch := rawPatch(t, `{
		"title": "  New Title  ",
		"old_price": 200,
		"description": "updated",
		"thumbnail": "https://cdn.test/new.png",
		"files": [{"filename":"n.png","path":"products/3-n.png","url":"https://cdn.test/products/3-n.png","mimeType":"image/png"}]
	}`)

	product, err := svc.Update(context.Background(), "p1", patch)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if product.Title != "New Title" {
		t.Errorf("title = %q, want trimmed New Title", product.Title)
	}
	if product.OldPrice != (sql.NullFloat64{Float64: 200, Valid: true}) {
		t.Errorf("old_price = %+v, want 200", product.OldPrice)
	}
	if len(product.Files) != 1 || product.Files[0].Path != "products/3-n.png" {
		t.Errorf("files not replaced: %+v", product.Files)
	}
	if product.Thumbnail != "https://cdn.test/new.png" {
		t.Errorf("thumbnail = %q", product.Thumbnail)
	}
}

func TestProductUpdateClearOldPrice(t *testing.T) {
	repo := newFakeRepo()
	p := seedProduct(repo)
	p.OldPrice = sql.NullFloat64{Float64: 200, Valid: true}
	svc := NewProductService(repo, newFakeStorage())

	product, err := svc.Update(context.Background(), "p1", rawPatch(t, `{"old_price": null}`))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if product.OldPrice.Valid {
		t.Errorf("old_price = %+v, want cleared", product.OldPrice)
	}
}

func TestProductUpdateErrors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		patch   string
		wantErr error
	}{
		{"unknown id", "nope", `{"price": 1}`, repository.ErrProductNotFound},
		{"empty payload", "p1", `{}`, ErrEmptyUpdate},
		{"only unknown fields", "p1", `{"id": "x", "rating": 5}`, ErrEmptyUpdate},
		{"wrong type", "p1", `{"price": "cheap"}`, ErrInvalidFieldValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			seedProduct(repo)
			svc := NewProductService(repo, newFakeStorage())

			_, err := svc.Update(context.Background(), tt.id, rawPatch(t, tt.patch))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}

			stored, _ := repo.ByID(context.Background(), "p1")
			if stored.Price != 100 {
				t.Errorf("stored price mutated to %v on failed update", stored.Price)
			}
		})
	}
}

func TestProductDelete(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	store := newFakeStorage()
	svc := NewProductService(repo, store)

	deleted, err := svc.Delete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if len(store.removed) != 2 {
		t.Errorf("removed objects = %d, want 2", len(store.removed))
	}

	_, err = svc.ByID(context.Background(), "p1")
	if !errors.Is(err, repository.ErrProductNotFound) {
		t.Errorf("ByID() after delete error = %v, want not found", err)
	}

	// Repeating the delete reports zero rows, not an error
	deleted, err = svc.Delete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("repeated Delete() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("repeated delete = %d, want 0", deleted)
	}
}

func TestProductDeleteStorageFailureStillDeletesRow(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	store := newFakeStorage()
	store.removeErr = errors.New("storage down")
	svc := NewProductService(repo, store)

	deleted, err := svc.Delete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1 despite storage failure", deleted)
	}
	if _, ok := repo.products["p1"]; ok {
		t.Error("row still present after delete")
	}
}

func TestProductDeleteSkipsEmptyPaths(t *testing.T) {
	repo := newFakeRepo()
	p := seedProduct(repo)
	p.Files = model.FileList{{Filename: "legacy.png", URL: "https://cdn.test/legacy.png"}}
	store := newFakeStorage()
	svc := NewProductService(repo, store)

	deleted, err := svc.Delete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if len(store.removed) != 0 {
		t.Errorf("removed objects = %d, want 0 for path-less files", len(store.removed))
	}
}
