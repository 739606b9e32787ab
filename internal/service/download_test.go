package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ehomershine/storefront/internal/model"
	"github.com/ehomershine/storefront/internal/repository"
)

func TestDownloadLinks(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	store := newFakeStorage()
	svc := NewDownloadService(repo, store, 2*time.Hour)

	product, downloads, err := svc.Links(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}

	if product.ID != "p1" {
		t.Errorf("product.ID = %q, want p1", product.ID)
	}
	if len(downloads) != 2 {
		t.Fatalf("len(downloads) = %d, want 2", len(downloads))
	}
	for i, d := range downloads {
		if d.ExpiresIn != 7200 {
			t.Errorf("downloads[%d].ExpiresIn = %d, want 7200", i, d.ExpiresIn)
		}
		if d.URL == "" {
			t.Errorf("downloads[%d].URL is empty", i)
		}
	}
	if downloads[0].Filename != "a.png" || downloads[1].Filename != "b.zip" {
		t.Errorf("download filenames = %q, %q", downloads[0].Filename, downloads[1].Filename)
	}
}

func TestDownloadLinksSkipsPathlessFiles(t *testing.T) {
	repo := newFakeRepo()
	p := seedProduct(repo)
	p.Files = model.FileList{
		{Filename: "legacy.png", URL: "https://cdn.test/legacy.png"},
		{Filename: "ok.zip", Path: "products/ok.zip", URL: "https://cdn.test/products/ok.zip"},
	}
	svc := NewDownloadService(repo, newFakeStorage(), time.Hour)

	_, downloads, err := svc.Links(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}
	if len(downloads) != 1 {
		t.Fatalf("len(downloads) = %d, want 1", len(downloads))
	}
	if downloads[0].Filename != "ok.zip" {
		t.Errorf("downloads[0].Filename = %q, want ok.zip", downloads[0].Filename)
	}
}

func TestDownloadLinksOmitsFailedSigning(t *testing.T) {
	repo := newFakeRepo()
	seedProduct(repo)
	store := newFakeStorage()
	store.signErrKey = "products/1-a.png"
	svc := NewDownloadService(repo, store, time.Hour)

	_, downloads, err := svc.Links(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}
	if len(downloads) != 1 {
		t.Fatalf("len(downloads) = %d, want 1 (failed file omitted)", len(downloads))
	}
	if downloads[0].Filename != "b.zip" {
		t.Errorf("downloads[0].Filename = %q, want b.zip", downloads[0].Filename)
	}
}

func TestDownloadLinksErrors(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		svc := NewDownloadService(newFakeRepo(), newFakeStorage(), time.Hour)
		_, _, err := svc.Links(context.Background(), "nope")
		if !errors.Is(err, repository.ErrProductNotFound) {
			t.Errorf("Links() error = %v, want not found", err)
		}
	})

	t.Run("zero files", func(t *testing.T) {
		repo := newFakeRepo()
		p := seedProduct(repo)
		p.Files = model.FileList{}
		svc := NewDownloadService(repo, newFakeStorage(), time.Hour)

		_, _, err := svc.Links(context.Background(), "p1")
		if !errors.Is(err, ErrNoFiles) {
			t.Errorf("Links() error = %v, want ErrNoFiles", err)
		}
	})

	t.Run("all signing fails", func(t *testing.T) {
		repo := newFakeRepo()
		seedProduct(repo)
		store := newFakeStorage()
		store.signErr = errors.New("presign refused")
		svc := NewDownloadService(repo, store, time.Hour)

		_, _, err := svc.Links(context.Background(), "p1")
		if !errors.Is(err, ErrNoDownloadURLs) {
			t.Errorf("Links() error = %v, want ErrNoDownloadURLs", err)
		}
	})
}
