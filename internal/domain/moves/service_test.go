package moves

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
)

type stubRepo struct {
	inserted []*StockMove
	filter   ListFilter
}

func (s *stubRepo) Insert(ctx context.Context, m *StockMove) error {
	s.inserted = append(s.inserted, m)
	return nil
}

func (s *stubRepo) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	s.filter = filter
	return &domain.ListResult[StockMove]{Limit: filter.Limit, Offset: filter.Offset}, nil
}

func validMove() *StockMove {
	to := id.New()
	return &StockMove{
		Reference:   "REC-20240101-XYZ-01",
		OperationID: id.New(),
		Type:        TypeReceipt,
		ProductID:   id.New(),
		ToID:        &to,
		Quantity:    types.NewQuantityFromFloat64(5),
		UserID:      id.New(),
	}
}

func TestAppendFillsDefaults(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	m := validMove()
	require.NoError(t, svc.Append(context.Background(), m))

	require.Len(t, repo.inserted, 1)
	assert.False(t, id.IsNil(m.ID))
	assert.Equal(t, StatusDone, m.Status)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestAppendRejectsMalformedMoves(t *testing.T) {
	svc := NewService(&stubRepo{})
	ctx := context.Background()

	zeroQty := validMove()
	zeroQty.Quantity = 0
	err := svc.Append(ctx, zeroQty)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidMove, appErr.Code)

	noEndpoints := validMove()
	noEndpoints.ToID = nil
	noEndpoints.FromID = nil
	err = svc.Append(ctx, noEndpoints)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidMove, appErr.Code)

	badType := validMove()
	badType.Type = MoveType("TELEPORT")
	err = svc.Append(ctx, badType)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidMove, appErr.Code)

	noOperation := validMove()
	noOperation.OperationID = id.Nil()
	err = svc.Append(ctx, noOperation)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidMove, appErr.Code)
}

func TestAppendKeepsCallerTimestamp(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := validMove()
	m.CreatedAt = at

	require.NoError(t, svc.Append(context.Background(), m))
	assert.Equal(t, at, m.CreatedAt)
}

func TestListClampsLimit(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, repo.filter.Limit)

	_, err = svc.List(ctx, ListFilter{Limit: 10000, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 500, repo.filter.Limit)
	assert.Equal(t, 0, repo.filter.Offset)
}

func TestListByProductPinsFilter(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	productID := id.New()
	_, err := svc.ListByProduct(context.Background(), productID, ListFilter{})
	require.NoError(t, err)
	require.NotNil(t, repo.filter.ProductID)
	assert.Equal(t, productID, *repo.filter.ProductID)
}
