package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

type stubRepo struct {
	created *Product
	bySKU   map[string]*Product
}

func (r *stubRepo) Create(_ context.Context, p *Product) error {
	r.created = p
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	return nil, apperror.NewNotFound("product", productID.String())
}

func (r *stubRepo) GetBySKU(_ context.Context, sku string) (*Product, error) {
	if p, ok := r.bySKU[sku]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (r *stubRepo) Update(_ context.Context, _ *Product) error { return nil }

func (r *stubRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return domain.ListResult[*Product]{Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (r *stubRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	_, ok := r.bySKU[sku]
	return ok, nil
}

type stubCategories struct {
	known map[id.ID]bool
}

func (c *stubCategories) Exists(_ context.Context, categoryID id.ID) (bool, error) {
	return c.known[categoryID], nil
}

func TestCreateProductWithCategory(t *testing.T) {
	catID := id.New()
	repo := &stubRepo{bySKU: map[string]*Product{}}
	svc := NewService(repo, &stubCategories{known: map[id.ID]bool{catID: true}})

	p := New("SKU-1000", "Test Widget")
	p.CategoryID = &catID
	require.NoError(t, svc.Create(context.Background(), p))
	require.NotNil(t, repo.created)
	require.NotNil(t, repo.created.CategoryID)
	assert.Equal(t, catID, *repo.created.CategoryID)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	repo := &stubRepo{bySKU: map[string]*Product{}}
	svc := NewService(repo, &stubCategories{known: map[id.ID]bool{}})

	unknown := id.New()
	p := New("SKU-1001", "Test Widget")
	p.CategoryID = &unknown
	err := svc.Create(context.Background(), p)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestCreateProductWithoutCategory(t *testing.T) {
	repo := &stubRepo{bySKU: map[string]*Product{}}
	svc := NewService(repo, &stubCategories{known: map[id.ID]bool{}})

	require.NoError(t, svc.Create(context.Background(), New("SKU-1002", "Loose Part")))
	require.NotNil(t, repo.created)
	assert.Nil(t, repo.created.CategoryID)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	repo := &stubRepo{bySKU: map[string]*Product{"SKU-1003": New("SKU-1003", "Taken")}}
	svc := NewService(repo, &stubCategories{known: map[id.ID]bool{}})

	err := svc.Create(context.Background(), New("SKU-1003", "Clash"))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}
