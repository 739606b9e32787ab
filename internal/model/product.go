package model

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Product struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Category    string          `db:"category" json:"category"`
	Description string          `db:"description" json:"description"`
	Price       float64         `db:"price" json:"price"`
	OldPrice    sql.NullFloat64 `db:"old_price" json:"-"`
	Thumbnail   string          `db:"thumbnail" json:"thumbnail"`
	Files       FileList        `db:"files" json:"files"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// MarshalJSON renders old_price as a plain nullable number instead of
// the sql.NullFloat64 wrapper shape.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	var oldPrice *float64
	if p.OldPrice.Valid {
		oldPrice = &p.OldPrice.Float64
	}
	return json.Marshal(struct {
		alias
		OldPrice *float64 `json:"old_price"`
	}{
		alias:    alias(p),
		OldPrice: oldPrice,
	})
}

// StoredFile describes one object persisted in storage and referenced
// by a product. Path is the storage key and is the source of truth for
// cleanup and signed-URL issuance; URL is only a convenience reference.
type StoredFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
}

// FileList stores the ordered stored-file descriptors as a JSON column.
type FileList []StoredFile

func (f FileList) Value() (driver.Value, error) {
	if f == nil {
		f = FileList{}
	}
	return json.Marshal(f)
}

func (f *FileList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = FileList{}
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("cannot scan %T into FileList", src)
	}
}
