package operations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/catalogs/location"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/ledger"
	"stockmaster/internal/domain/moves"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/domain/operations/adjustment"
	"stockmaster/internal/domain/operations/delivery"
	"stockmaster/internal/domain/operations/receipt"
	"stockmaster/internal/domain/operations/transfer"
	"stockmaster/pkg/reference"
)

// --- in-memory infrastructure with rollback semantics ---

type snapshotter interface {
	snapshot() any
	restore(any)
}

// memTx snapshots every registered store before the callback and restores
// on error, mimicking a database rollback.
type memTx struct {
	stores []snapshotter
}

func (m *memTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snaps := make([]any, len(m.stores))
	for i, s := range m.stores {
		snaps[i] = s.snapshot()
	}
	if err := fn(ctx); err != nil {
		for i, s := range m.stores {
			s.restore(snaps[i])
		}
		return err
	}
	return nil
}

type stockKey struct{ product, location id.ID }

type memLedger struct {
	rows map[stockKey]*ledger.Stock
}

func (m *memLedger) snapshot() any {
	cp := make(map[stockKey]*ledger.Stock, len(m.rows))
	for k, v := range m.rows {
		row := *v
		cp[k] = &row
	}
	return cp
}

func (m *memLedger) restore(s any) { m.rows = s.(map[stockKey]*ledger.Stock) }

func (m *memLedger) GetForUpdate(_ context.Context, p, l id.ID) (*ledger.Stock, error) {
	if row, ok := m.rows[stockKey{p, l}]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, nil
}

func (m *memLedger) Insert(_ context.Context, s *ledger.Stock) error {
	cp := *s
	m.rows[stockKey{s.ProductID, s.LocationID}] = &cp
	return nil
}

func (m *memLedger) Update(ctx context.Context, s *ledger.Stock) error { return m.Insert(ctx, s) }

func (m *memLedger) Get(ctx context.Context, p, l id.ID) (*ledger.Stock, error) {
	return m.GetForUpdate(ctx, p, l)
}

func (m *memLedger) ListByProduct(_ context.Context, p id.ID) ([]ledger.Stock, error) {
	var out []ledger.Stock
	for _, row := range m.rows {
		if row.ProductID == p {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memLedger) ListByLocation(_ context.Context, l id.ID) ([]ledger.Stock, error) {
	var out []ledger.Stock
	for _, row := range m.rows {
		if row.LocationID == l {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memLedger) SumByProduct(_ context.Context, p id.ID) (ledger.Totals, error) {
	var t ledger.Totals
	for _, row := range m.rows {
		if row.ProductID == p {
			t.Quantity += row.Quantity
			t.Reserved += row.Reserved
			t.Available += row.Available
		}
	}
	return t, nil
}

type memMoves struct {
	log []moves.StockMove
}

func (m *memMoves) snapshot() any { return append([]moves.StockMove(nil), m.log...) }
func (m *memMoves) restore(s any) { m.log = s.([]moves.StockMove) }

func (m *memMoves) Insert(_ context.Context, mv *moves.StockMove) error {
	m.log = append(m.log, *mv)
	return nil
}

func (m *memMoves) List(_ context.Context, f moves.ListFilter) (*moves.ListResult, error) {
	var items []moves.StockMove
	for _, mv := range m.log {
		if f.ProductID != nil && mv.ProductID != *f.ProductID {
			continue
		}
		items = append(items, mv)
	}
	return &moves.ListResult{Items: items, TotalCount: int64(len(items))}, nil
}

type memCatalog struct {
	locations map[id.ID]*location.Location
	products  map[id.ID]*product.Product
}

func (m *memCatalog) GetByID(_ context.Context, locationID id.ID) (*location.Location, error) {
	if loc, ok := m.locations[locationID]; ok {
		return loc, nil
	}
	return nil, apperror.NewNotFound("location", locationID)
}

type memProducts struct{ cat *memCatalog }

func (m memProducts) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	if p, ok := m.cat.products[productID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", productID)
}

// --- per-kind in-memory repositories ---

type memReceiptRepo struct {
	docs  map[id.ID]*receipt.Receipt
	lines map[id.ID][]receipt.Line
	fail  error // when set, Update fails with it
}

func (m *memReceiptRepo) Create(_ context.Context, d *receipt.Receipt) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memReceiptRepo) Update(_ context.Context, d *receipt.Receipt) error {
	if m.fail != nil {
		return m.fail
	}
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memReceiptRepo) GetByID(_ context.Context, docID id.ID) (*receipt.Receipt, error) {
	if d, ok := m.docs[docID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperror.NewNotFound("receipt", docID)
}

func (m *memReceiptRepo) GetLines(_ context.Context, docID id.ID) ([]receipt.Line, error) {
	return append([]receipt.Line(nil), m.lines[docID]...), nil
}

func (m *memReceiptRepo) SaveLines(_ context.Context, docID id.ID, lines []receipt.Line) error {
	m.lines[docID] = append([]receipt.Line(nil), lines...)
	return nil
}

func (m *memReceiptRepo) List(_ context.Context, _ operations.ListFilter) (*domain.ListResult[receipt.Receipt], error) {
	return &domain.ListResult[receipt.Receipt]{}, nil
}

type memDeliveryRepo struct {
	docs  map[id.ID]*delivery.Delivery
	lines map[id.ID][]delivery.Line
}

func (m *memDeliveryRepo) Create(_ context.Context, d *delivery.Delivery) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memDeliveryRepo) Update(_ context.Context, d *delivery.Delivery) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memDeliveryRepo) GetByID(_ context.Context, docID id.ID) (*delivery.Delivery, error) {
	if d, ok := m.docs[docID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperror.NewNotFound("delivery", docID)
}

func (m *memDeliveryRepo) GetLines(_ context.Context, docID id.ID) ([]delivery.Line, error) {
	return append([]delivery.Line(nil), m.lines[docID]...), nil
}

func (m *memDeliveryRepo) SaveLines(_ context.Context, docID id.ID, lines []delivery.Line) error {
	m.lines[docID] = append([]delivery.Line(nil), lines...)
	return nil
}

func (m *memDeliveryRepo) List(_ context.Context, _ operations.ListFilter) (*domain.ListResult[delivery.Delivery], error) {
	return &domain.ListResult[delivery.Delivery]{}, nil
}

type memTransferRepo struct {
	docs  map[id.ID]*transfer.Transfer
	lines map[id.ID][]transfer.Line
}

func (m *memTransferRepo) Create(_ context.Context, d *transfer.Transfer) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memTransferRepo) Update(_ context.Context, d *transfer.Transfer) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memTransferRepo) GetByID(_ context.Context, docID id.ID) (*transfer.Transfer, error) {
	if d, ok := m.docs[docID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperror.NewNotFound("transfer", docID)
}

func (m *memTransferRepo) GetLines(_ context.Context, docID id.ID) ([]transfer.Line, error) {
	return append([]transfer.Line(nil), m.lines[docID]...), nil
}

func (m *memTransferRepo) SaveLines(_ context.Context, docID id.ID, lines []transfer.Line) error {
	m.lines[docID] = append([]transfer.Line(nil), lines...)
	return nil
}

func (m *memTransferRepo) List(_ context.Context, _ operations.ListFilter) (*domain.ListResult[transfer.Transfer], error) {
	return &domain.ListResult[transfer.Transfer]{}, nil
}

type memAdjustmentRepo struct {
	docs  map[id.ID]*adjustment.Adjustment
	lines map[id.ID][]adjustment.Line
}

func (m *memAdjustmentRepo) Create(_ context.Context, d *adjustment.Adjustment) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memAdjustmentRepo) Update(_ context.Context, d *adjustment.Adjustment) error {
	cp := *d
	m.docs[d.ID] = &cp
	return nil
}

func (m *memAdjustmentRepo) GetByID(_ context.Context, docID id.ID) (*adjustment.Adjustment, error) {
	if d, ok := m.docs[docID]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, apperror.NewNotFound("adjustment", docID)
}

func (m *memAdjustmentRepo) GetLines(_ context.Context, docID id.ID) ([]adjustment.Line, error) {
	return append([]adjustment.Line(nil), m.lines[docID]...), nil
}

func (m *memAdjustmentRepo) SaveLines(_ context.Context, docID id.ID, lines []adjustment.Line) error {
	m.lines[docID] = append([]adjustment.Line(nil), lines...)
	return nil
}

func (m *memAdjustmentRepo) List(_ context.Context, _ operations.ListFilter) (*domain.ListResult[adjustment.Adjustment], error) {
	return &domain.ListResult[adjustment.Adjustment]{}, nil
}

// --- fixture ---

type fixture struct {
	engine  *operations.Engine
	ledger  *ledger.Service
	moves   *moves.Service
	checker *operations.Checker
	refs    reference.Generator

	ledgerRepo *memLedger
	movesRepo  *memMoves
	cat        *memCatalog

	user    id.ID
	product id.ID
	l1, l2  id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cat := &memCatalog{
		locations: map[id.ID]*location.Location{},
		products:  map[id.ID]*product.Product{},
	}
	productID := id.New()
	cat.products[productID] = &product.Product{ID: productID, SKU: "SKU-1", Name: "Widget", IsActive: true}

	l1, l2 := id.New(), id.New()
	cat.locations[l1] = &location.Location{ID: l1, Code: "A-01", Type: location.TypeInternal, IsActive: true}
	cat.locations[l2] = &location.Location{ID: l2, Code: "A-02", Type: location.TypeInternal, IsActive: true}

	ledgerRepo := &memLedger{rows: map[stockKey]*ledger.Stock{}}
	movesRepo := &memMoves{}
	txm := &memTx{stores: []snapshotter{ledgerRepo, movesRepo}}

	ledgerSvc := ledger.NewService(ledgerRepo, cat)
	movesSvc := moves.NewService(movesRepo)
	engine := operations.NewEngine(txm, ledgerSvc, movesSvc, cat, nil)

	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return &fixture{
		engine:     engine,
		ledger:     ledgerSvc,
		moves:      movesSvc,
		checker:    operations.NewChecker(memProducts{cat}, cat),
		refs:       reference.NewWithSource(clock, 1),
		ledgerRepo: ledgerRepo,
		movesRepo:  movesRepo,
		cat:        cat,
		user:       id.New(),
		product:    productID,
		l1:         l1,
		l2:         l2,
	}
}

func (f *fixture) receipts(repo *memReceiptRepo) *receipt.Service {
	return receipt.NewService(repo, f.engine, f.refs, f.checker)
}

func (f *fixture) stock(t *testing.T, p, l id.ID) *ledger.Stock {
	t.Helper()
	row, err := f.ledger.Get(context.Background(), p, l)
	require.NoError(t, err)
	return row
}

func (f *fixture) seed(t *testing.T, p, l id.ID, quantity string) {
	t.Helper()
	_, err := f.ledger.ApplyDelta(context.Background(), ledger.Delta{
		ProductID: p, LocationID: l, Quantity: qty(quantity),
	})
	require.NoError(t, err)
}

func qty(s string) types.Quantity {
	q, err := types.ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

// --- scenarios ---

func TestReceiptValidate_PostsStockAndMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(f.product, qty("10"))
	require.NoError(t, svc.Create(ctx, doc))
	assert.Equal(t, operations.StatusDraft, doc.Status)
	assert.NotEmpty(t, doc.Reference)

	posted, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, operations.StatusDone, posted.Status)
	require.NotNil(t, posted.ValidatedDate)

	row := f.stock(t, f.product, f.l1)
	assert.Equal(t, qty("10"), row.Quantity)
	assert.Equal(t, qty("0"), row.Reserved)
	assert.Equal(t, qty("10"), row.Available)

	require.Len(t, f.movesRepo.log, 1)
	mv := f.movesRepo.log[0]
	assert.Equal(t, moves.TypeReceipt, mv.Type)
	assert.Equal(t, qty("10"), mv.Quantity)
	assert.Equal(t, moves.StatusDone, mv.Status)
	assert.Equal(t, posted.ID, mv.OperationID)
	assert.Equal(t, posted.Reference+"-01", mv.Reference)
	assert.Nil(t, mv.FromID)
	require.NotNil(t, mv.ToID)
	assert.Equal(t, f.l1, *mv.ToID)
}

func TestDeliveryValidate_InsufficientStockLeavesLedgerUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, f.product, f.l1, "10")

	repo := &memDeliveryRepo{docs: map[id.ID]*delivery.Delivery{}, lines: map[id.ID][]delivery.Line{}}
	svc := delivery.NewService(repo, f.engine, f.refs, f.checker)

	doc := delivery.New(f.user, "Initech", f.l1)
	doc.AddLine(f.product, qty("12"))
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.Validate(ctx, doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	row := f.stock(t, f.product, f.l1)
	assert.Equal(t, qty("10"), row.Quantity)
	assert.Equal(t, qty("10"), row.Available)
	assert.Empty(t, f.movesRepo.log)

	stored, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, operations.StatusDraft, stored.Status)
}

func TestTransferValidate_MovesStockBetweenLocations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, f.product, f.l1, "5")

	repo := &memTransferRepo{docs: map[id.ID]*transfer.Transfer{}, lines: map[id.ID][]transfer.Line{}}
	svc := transfer.NewService(repo, f.engine, f.refs, f.checker)

	doc := transfer.New(f.user, f.l1, f.l2)
	doc.AddLine(f.product, qty("5"))
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	src := f.stock(t, f.product, f.l1)
	assert.True(t, src.Quantity.IsZero())
	assert.True(t, src.Available.IsZero())

	dst := f.stock(t, f.product, f.l2)
	assert.Equal(t, qty("5"), dst.Quantity)
	assert.Equal(t, qty("5"), dst.Available)

	require.Len(t, f.movesRepo.log, 1)
	mv := f.movesRepo.log[0]
	assert.Equal(t, moves.TypeTransfer, mv.Type)
	require.NotNil(t, mv.FromID)
	require.NotNil(t, mv.ToID)
	assert.Equal(t, f.l1, *mv.FromID)
	assert.Equal(t, f.l2, *mv.ToID)
}

func TestAdjustmentValidate_RecomputesDifferenceAgainstLiveLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, f.product, f.l1, "8")

	repo := &memAdjustmentRepo{docs: map[id.ID]*adjustment.Adjustment{}, lines: map[id.ID][]adjustment.Line{}}
	svc := adjustment.NewService(repo, f.engine, f.refs, f.checker)

	doc := adjustment.New(f.user, f.l1)
	doc.AddLine(f.product, qty("8"), qty("5"))
	require.NoError(t, svc.Create(ctx, doc))

	posted, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	row := f.stock(t, f.product, f.l1)
	assert.Equal(t, qty("5"), row.Quantity)
	assert.Equal(t, qty("5"), row.Available)

	require.Len(t, f.movesRepo.log, 1)
	mv := f.movesRepo.log[0]
	assert.Equal(t, moves.TypeAdjustment, mv.Type)
	assert.Equal(t, qty("3"), mv.Quantity)
	require.NotNil(t, mv.FromID)
	assert.Equal(t, f.l1, *mv.FromID)

	require.Len(t, posted.Lines, 1)
	assert.Equal(t, qty("-3"), posted.Lines[0].Difference)
}

func TestAdjustmentValidate_StaleSystemQtyIsCorrected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, f.product, f.l1, "8")

	repo := &memAdjustmentRepo{docs: map[id.ID]*adjustment.Adjustment{}, lines: map[id.ID][]adjustment.Line{}}
	svc := adjustment.NewService(repo, f.engine, f.refs, f.checker)

	// Count captured against quantity 8.
	doc := adjustment.New(f.user, f.l1)
	doc.AddLine(f.product, qty("8"), qty("5"))
	require.NoError(t, svc.Create(ctx, doc))

	// Ledger moves on before validation.
	f.seed(t, f.product, f.l1, "2")

	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	// Difference is 5 - 10, not the stale 5 - 8.
	row := f.stock(t, f.product, f.l1)
	assert.Equal(t, qty("5"), row.Quantity)
	require.Len(t, f.movesRepo.log, 1)
	assert.Equal(t, qty("5"), f.movesRepo.log[0].Quantity)
}

func TestAdjustmentValidate_ZeroDifferenceProducesNoMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, f.product, f.l1, "8")

	repo := &memAdjustmentRepo{docs: map[id.ID]*adjustment.Adjustment{}, lines: map[id.ID][]adjustment.Line{}}
	svc := adjustment.NewService(repo, f.engine, f.refs, f.checker)

	doc := adjustment.New(f.user, f.l1)
	doc.AddLine(f.product, qty("8"), qty("8"))
	require.NoError(t, svc.Create(ctx, doc))

	posted, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, operations.StatusDone, posted.Status)
	assert.Empty(t, f.movesRepo.log)
}

func TestCancelDraft_NoMovesAndValidateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(f.product, qty("10"))
	require.NoError(t, svc.Create(ctx, doc))

	cancelled, err := svc.Cancel(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, operations.StatusCancelled, cancelled.Status)
	assert.Empty(t, f.movesRepo.log)

	_, err = svc.Validate(ctx, doc.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	row := f.stock(t, f.product, f.l1)
	assert.True(t, row.Quantity.IsZero())
}

func TestCancelTwice_SecondCallFailsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(f.product, qty("10"))
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.Cancel(ctx, doc.ID)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, doc.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCancelDone_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(f.product, qty("10"))
	require.NoError(t, svc.Create(ctx, doc))
	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, doc.ID)
	require.Error(t, err)
}

func TestValidateTwice_SecondCallRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(f.product, qty("10"))
	require.NoError(t, svc.Create(ctx, doc))
	_, err := svc.Validate(ctx, doc.ID)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, doc.ID)
	require.Error(t, err)

	// Effects were not applied twice.
	row := f.stock(t, f.product, f.l1)
	assert.Equal(t, qty("10"), row.Quantity)
	assert.Len(t, f.movesRepo.log, 1)
}

func TestValidate_PersistFailureRollsBackLedgerAndMoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, f.product, f.l1, "7")

	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(f.product, qty("10"))
	require.NoError(t, svc.Create(ctx, doc))

	repo.fail = errors.New("connection reset")
	_, err := svc.Validate(ctx, doc.ID)
	require.Error(t, err)

	row := f.stock(t, f.product, f.l1)
	assert.Equal(t, qty("7"), row.Quantity, "ledger must match its pre-call state")
	assert.Empty(t, f.movesRepo.log)

	repo.fail = nil
	stored, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, operations.StatusDraft, stored.Status)
}

func TestMultiLineValidate_OneFailingLineAbortsAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second := id.New()
	f.cat.products[second] = &product.Product{ID: second, SKU: "SKU-2", Name: "Gadget", IsActive: true}
	f.seed(t, f.product, f.l1, "10")
	f.seed(t, second, f.l1, "1")

	repo := &memDeliveryRepo{docs: map[id.ID]*delivery.Delivery{}, lines: map[id.ID][]delivery.Line{}}
	svc := delivery.NewService(repo, f.engine, f.refs, f.checker)

	doc := delivery.New(f.user, "Initech", f.l1)
	doc.AddLine(f.product, qty("4")) // would succeed alone
	doc.AddLine(second, qty("2"))    // insufficient
	require.NoError(t, svc.Create(ctx, doc))

	_, err := svc.Validate(ctx, doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, qty("10"), f.stock(t, f.product, f.l1).Quantity)
	assert.Equal(t, qty("1"), f.stock(t, second, f.l1).Quantity)
	assert.Empty(t, f.movesRepo.log)
}

func TestAdvance_WalksForwardAndStopsAtReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(f.product, qty("1"))
	require.NoError(t, svc.Create(ctx, doc))

	step, err := svc.Advance(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, operations.StatusWaiting, step.Status)

	step, err = svc.Advance(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, operations.StatusReady, step.Status)

	_, err = svc.Advance(ctx, doc.ID)
	require.Error(t, err, "READY only leaves via validate or cancel")
}

func TestCreate_RejectsVirtualDestination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	virtual := id.New()
	f.cat.locations[virtual] = &location.Location{ID: virtual, Code: "SUP", Type: location.TypeSupplier, IsActive: true}

	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", virtual)
	doc.AddLine(f.product, qty("10"))
	err := svc.Create(ctx, doc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidLocation, appErr.Code)
	assert.Empty(t, repo.docs)
}

func TestCreate_RejectsInactiveProductAndEmptyLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inactive := id.New()
	f.cat.products[inactive] = &product.Product{ID: inactive, SKU: "SKU-X", Name: "Retired", IsActive: false}

	repo := &memReceiptRepo{docs: map[id.ID]*receipt.Receipt{}, lines: map[id.ID][]receipt.Line{}}
	svc := f.receipts(repo)

	doc := receipt.New(f.user, "Acme Supply", f.l1)
	doc.AddLine(inactive, qty("1"))
	err := svc.Create(ctx, doc)
	require.Error(t, err)

	empty := receipt.New(f.user, "Acme Supply", f.l1)
	err = svc.Create(ctx, empty)
	require.Error(t, err)
	assert.Empty(t, repo.docs, "nothing may persist on a failed create")
}
