package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/location"
)

type memRepo struct {
	rows map[[2]id.ID]*Stock
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[[2]id.ID]*Stock{}}
}

func (m *memRepo) key(p, l id.ID) [2]id.ID { return [2]id.ID{p, l} }

func (m *memRepo) GetForUpdate(_ context.Context, p, l id.ID) (*Stock, error) {
	if row, ok := m.rows[m.key(p, l)]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, nil
}

func (m *memRepo) Insert(_ context.Context, s *Stock) error {
	cp := *s
	m.rows[m.key(s.ProductID, s.LocationID)] = &cp
	return nil
}

func (m *memRepo) Update(_ context.Context, s *Stock) error {
	cp := *s
	m.rows[m.key(s.ProductID, s.LocationID)] = &cp
	return nil
}

func (m *memRepo) Get(_ context.Context, p, l id.ID) (*Stock, error) {
	return m.GetForUpdate(nil, p, l)
}

func (m *memRepo) ListByProduct(_ context.Context, p id.ID) ([]Stock, error) {
	var out []Stock
	for _, row := range m.rows {
		if row.ProductID == p {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memRepo) ListByLocation(_ context.Context, l id.ID) ([]Stock, error) {
	var out []Stock
	for _, row := range m.rows {
		if row.LocationID == l {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memRepo) SumByProduct(_ context.Context, p id.ID) (Totals, error) {
	var t Totals
	for _, row := range m.rows {
		if row.ProductID == p {
			t.Quantity += row.Quantity
			t.Reserved += row.Reserved
			t.Available += row.Available
		}
	}
	return t, nil
}

type memLocations struct {
	byID map[id.ID]*location.Location
}

func (m *memLocations) GetByID(_ context.Context, locationID id.ID) (*location.Location, error) {
	if loc, ok := m.byID[locationID]; ok {
		return loc, nil
	}
	return nil, apperror.NewNotFound("location", locationID)
}

func newFixture(t *testing.T) (*Service, *memRepo, id.ID, id.ID, id.ID) {
	t.Helper()
	repo := newMemRepo()
	productID := id.New()
	shelf := id.New()
	supplier := id.New()
	locs := &memLocations{byID: map[id.ID]*location.Location{
		shelf:    {ID: shelf, Type: location.TypeInternal},
		supplier: {ID: supplier, Type: location.TypeSupplier},
	}}
	return NewService(repo, locs), repo, productID, shelf, supplier
}

func qty(s string) types.Quantity {
	q, err := types.ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

func TestApplyDelta_CreatesRowLazily(t *testing.T) {
	svc, repo, product, shelf, _ := newFixture(t)

	row, err := svc.ApplyDelta(context.Background(), Delta{
		ProductID: product, LocationID: shelf, Quantity: qty("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, qty("10"), row.Quantity)
	assert.Equal(t, qty("10"), row.Available)
	assert.Len(t, repo.rows, 1)
}

func TestApplyDelta_KeepsZeroRow(t *testing.T) {
	svc, repo, product, shelf, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Quantity: qty("5")})
	require.NoError(t, err)
	row, err := svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Quantity: qty("-5")})
	require.NoError(t, err)

	assert.True(t, row.Quantity.IsZero())
	assert.True(t, row.Available.IsZero())
	assert.Len(t, repo.rows, 1, "a drained row stays on the ledger")
}

func TestApplyDelta_InsufficientStock(t *testing.T) {
	svc, _, product, shelf, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Quantity: qty("3")})
	require.NoError(t, err)

	_, err = svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Quantity: qty("-7")})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "7", appErr.Details["requested"])
	assert.Equal(t, "3", appErr.Details["available"])
}

func TestApplyDelta_InsufficientWhenNeverStocked(t *testing.T) {
	svc, repo, product, shelf, _ := newFixture(t)

	_, err := svc.ApplyDelta(context.Background(), Delta{
		ProductID: product, LocationID: shelf, Quantity: qty("-1"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Empty(t, repo.rows, "a failed delta must not leave a row behind")
}

func TestApplyDelta_ReservationGuards(t *testing.T) {
	svc, _, product, shelf, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Quantity: qty("10")})
	require.NoError(t, err)

	// Reserving more than on-hand leaves available negative.
	_, err = svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Reserved: qty("11")})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Releasing a reservation that was never taken.
	_, err = svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Reserved: qty("-1")})
	require.Error(t, err)

	row, err := svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Reserved: qty("4")})
	require.NoError(t, err)
	assert.Equal(t, qty("6"), row.Available)
}

func TestApplyDelta_RejectsVirtualLocation(t *testing.T) {
	svc, _, product, _, supplier := newFixture(t)

	_, err := svc.ApplyDelta(context.Background(), Delta{
		ProductID: product, LocationID: supplier, Quantity: qty("10"),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidLocation, appErr.Code)
}

func TestGetTotalForProduct(t *testing.T) {
	svc, _, product, shelf, _ := newFixture(t)
	ctx := context.Background()

	other := id.New()
	locs := svc.locations.(*memLocations)
	locs.byID[other] = &location.Location{ID: other, Type: location.TypeProduction}

	_, err := svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: shelf, Quantity: qty("2.5")})
	require.NoError(t, err)
	_, err = svc.ApplyDelta(ctx, Delta{ProductID: product, LocationID: other, Quantity: qty("4"), Reserved: qty("1")})
	require.NoError(t, err)

	totals, err := svc.GetTotalForProduct(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, qty("6.5"), totals.Quantity)
	assert.Equal(t, qty("1"), totals.Reserved)
	assert.Equal(t, qty("5.5"), totals.Available)
}

func TestGet_AbsentRowReadsAsZero(t *testing.T) {
	svc, _, product, shelf, _ := newFixture(t)

	row, err := svc.Get(context.Background(), product, shelf)
	require.NoError(t, err)
	assert.True(t, row.Quantity.IsZero())
	assert.True(t, row.Available.IsZero())
}
