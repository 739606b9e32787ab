package validation

import "errors"

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrPriceRequired    = errors.New("price must be greater than zero")
	ErrCategoryRequired = errors.New("category is required")
)

// ValidateProductMetadata checks the required fields of a
// product-creation request.
func ValidateProductMetadata(title string, price float64, category string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if price <= 0 {
		return ErrPriceRequired
	}
	if category == "" {
		return ErrCategoryRequired
	}
	return nil
}
