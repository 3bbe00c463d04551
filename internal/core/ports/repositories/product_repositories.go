package repositories

import (
	"context"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
)

// ProductRepository defines the persistence operations for products.
type ProductRepository interface {
	// SaveProduct persists a new product. Returns apperrors.ErrDuplicate when
	// the SKU already exists.
	SaveProduct(ctx context.Context, product domain.Product) error

	// FindProductByID retrieves a specific product.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products keyed by ID.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves a paginated list of active products.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)

	// UpdateProduct updates an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeactivateProduct marks a product as inactive.
	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error
}
