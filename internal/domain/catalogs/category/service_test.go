package category

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
	created  *Category
	existing map[string]bool
}

func (r *stubRepo) Create(_ context.Context, c *Category) error {
	r.created = c
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, categoryID id.ID) (*Category, error) {
	return nil, apperror.NewNotFound("category", categoryID.String())
}

func (r *stubRepo) Update(_ context.Context, _ *Category) error { return nil }

func (r *stubRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error) {
	return domain.ListResult[*Category]{Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (r *stubRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	return r.existing[name], nil
}

func TestCreateCategory(t *testing.T) {
	repo := &stubRepo{existing: map[string]bool{}}
	svc := NewService(repo)

	c := New("Packaging")
	require.NoError(t, svc.Create(context.Background(), c))
	require.NotNil(t, repo.created)
	assert.Equal(t, "Packaging", repo.created.Name)
	assert.True(t, repo.created.IsActive)
	assert.False(t, id.IsNil(repo.created.ID))
}

func TestCreateCategoryRejectsEmptyName(t *testing.T) {
	svc := NewService(&stubRepo{existing: map[string]bool{}})

	err := svc.Create(context.Background(), New(""))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	repo := &stubRepo{existing: map[string]bool{"Packaging": true}}
	svc := NewService(repo)

	err := svc.Create(context.Background(), New("Packaging"))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Nil(t, repo.created)
}
