package products_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/issuetrack-api/internal/application/dto"
	"github.com/jhoicas/issuetrack-api/internal/application/products"
	"github.com/jhoicas/issuetrack-api/internal/domain"
	"github.com/jhoicas/issuetrack-api/internal/infrastructure/memory"
)

func newProductUseCase(t *testing.T) *products.ProductUseCase {
	t.Helper()
	return products.NewProductUseCase(memory.NewStore().Products())
}

func TestCreateProduct(t *testing.T) {
	uc := newProductUseCase(t)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "product1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "product1", out.Name)
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	uc := newProductUseCase(t)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "product1"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "product1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListProducts(t *testing.T) {
	uc := newProductUseCase(t)

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)

	for _, name := range []string{"product1", "product2", "product3"} {
		_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: name})
		require.NoError(t, err)
	}

	out, err = uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "product1", out[0].Name)
	assert.Equal(t, "product3", out[2].Name)
}
