package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ehomershine/storefront/internal/model"
	"github.com/ehomershine/storefront/internal/repository"
)

// fakeRepo is an in-memory ProductRepository.
type fakeRepo struct {
	products  map[string]*model.Product
	createErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]*model.Product{}}
}

func (f *fakeRepo) Create(_ context.Context, p *model.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) ByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) All(_ context.Context) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, p *model.Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := f.products[id]; !ok {
		return 0, nil
	}
	delete(f.products, id)
	return 1, nil
}

// fakeStorage is an in-memory object store.
type fakeStorage struct {
	objects      map[string][]byte
	contentTypes map[string]string
	putOrder     []string
	removed      []string

	failPutAfter int // fail the Nth put (1-based), 0 = never
	removeErr    error
	signErr      error
	signErrKey   string // fail signing only for this key
	publicOK     bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
		publicOK:     true,
	}
}

func (f *fakeStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	if f.failPutAfter > 0 && len(f.putOrder)+1 >= f.failPutAfter {
		return errors.New("storage unavailable")
	}
	f.objects[key] = data
	f.contentTypes[key] = contentType
	f.putOrder = append(f.putOrder, key)
	return nil
}

func (f *fakeStorage) Remove(_ context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) PublicURL(_ context.Context, key string) (string, bool) {
	if !f.publicOK {
		return "", false
	}
	return "https://cdn.test/" + key, true
}

func (f *fakeStorage) FallbackURL(key string) string {
	return "https://fallback.test/bucket/" + key
}

func (f *fakeStorage) SignedURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	if f.signErrKey != "" && f.signErrKey == key {
		return "", errors.New("presign refused")
	}
	return fmt.Sprintf("https://signed.test/%s?exp=%d", key, int(expiry.Seconds())), nil
}
