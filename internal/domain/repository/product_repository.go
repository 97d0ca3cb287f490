package repository

import (
	"context"

	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
)

// ProductRepository persistence port for products.
type ProductRepository interface {
	// Create persists a new product and fills in its generated ID.
	// Returns domain.ErrConflict on a duplicate name.
	Create(ctx context.Context, product *entity.Product) error
	// GetByName returns (nil, nil) when no row matches.
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}
