package products

import (
	"context"

	"github.com/jhoicas/issuetrack-api/internal/application/dto"
	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
	"github.com/jhoicas/issuetrack-api/internal/domain/repository"
)

// ProductUseCase product operations. Products are immutable once created.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create persists a new product. A duplicate name surfaces the
// unique-constraint violation as domain.ErrConflict; no pre-check.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{Name: in.Name}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{ID: product.ID, Name: product.Name}, nil
}

// List returns every product. No pagination, as with issue listing.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, &dto.ProductResponse{ID: p.ID, Name: p.Name})
	}
	return out, nil
}
