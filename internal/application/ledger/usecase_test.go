package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

// ─── In-memory fakes ──────────────────────────────────────────────────────────

// store is the in-memory state the fakes operate on.
type store struct {
	items      map[string]entity.InventoryItem
	lifecycles map[string]entity.PlantLifecycle // keyed by item id
	movements  []entity.InventoryMovement
	mortality  []entity.MortalityLog
}

func newStore() *store {
	return &store{
		items:      map[string]entity.InventoryItem{},
		lifecycles: map[string]entity.PlantLifecycle{},
	}
}

func (s *store) clone() *store {
	c := newStore()
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.lifecycles {
		c.lifecycles[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	c.mortality = append(c.mortality, s.mortality...)
	return c
}

type fakeItemRepo struct{ s *store }

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) ListByProduct(string) ([]*entity.InventoryItem, error) { return nil, nil }
func (r *fakeItemRepo) ListLowStock(int, int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for id := range r.s.items {
		item := r.s.items[id]
		if item.Quantity.LessThanOrEqual(item.ReorderLevel) {
			out = append(out, &item)
		}
	}
	return out, nil
}
func (r *fakeItemRepo) Deactivate(string) error { return nil }

type fakeLifecycleRepo struct{ s *store }

func (r *fakeLifecycleRepo) Create(lc *entity.PlantLifecycle) error {
	r.s.lifecycles[lc.ItemID] = *lc
	return nil
}

func (r *fakeLifecycleRepo) GetByItemID(itemID string) (*entity.PlantLifecycle, error) {
	lc, ok := r.s.lifecycles[itemID]
	if !ok {
		return nil, nil
	}
	return &lc, nil
}

func (r *fakeLifecycleRepo) Update(lc *entity.PlantLifecycle) error {
	r.s.lifecycles[lc.ItemID] = *lc
	return nil
}

type fakeMovementRepo struct {
	s    *store
	fail error // injected failure for rollback tests
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	if r.fail != nil {
		return r.fail
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *fakeMovementRepo) GetByID(string) (*entity.InventoryMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByItem(itemID string, _, _ *time.Time, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for i := range r.s.movements {
		if r.s.movements[i].ItemID == itemID {
			out = append(out, &r.s.movements[i])
		}
	}
	return out, nil
}

type fakeMortalityRepo struct{ s *store }

func (r *fakeMortalityRepo) Create(l *entity.MortalityLog) error {
	r.s.mortality = append(r.s.mortality, *l)
	return nil
}

func (r *fakeMortalityRepo) ListByItem(string, int, int) ([]*entity.MortalityLog, error) {
	return nil, nil
}
func (r *fakeMortalityRepo) ListBetween(time.Time, time.Time, int, int) ([]*entity.MortalityLog, error) {
	return nil, nil
}
func (r *fakeMortalityRepo) Summarize(time.Time, time.Time) ([]repository.MortalitySummaryRow, error) {
	return nil, nil
}

// fakeTxRunner runs fn against a clone of the store and only publishes
// the clone when fn succeeds, mirroring commit/rollback semantics.
type fakeTxRunner struct {
	s            *store
	failMovement error
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	items repository.InventoryItemRepository,
	lifecycles repository.PlantLifecycleRepository,
	movements repository.InventoryMovementRepository,
	mortalities repository.MortalityLogRepository,
) error) error {
	tx := r.s.clone()
	err := fn(
		&fakeItemRepo{s: tx},
		&fakeLifecycleRepo{s: tx},
		&fakeMovementRepo{s: tx, fail: r.failMovement},
		&fakeMortalityRepo{s: tx},
	)
	if err != nil {
		return err
	}
	*r.s = *tx
	return nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, time.October, 3, 9, 30, 0, 0, time.UTC)

func newTestLedger(s *store) *UseCase {
	runner := &fakeTxRunner{s: s}
	uc := New(runner, &fakeItemRepo{s: s}, &fakeMovementRepo{s: s}, &fakeMortalityRepo{s: s})
	uc.now = func() time.Time { return testNow }
	return uc
}

func seedItem(s *store, id string, qty, reserved int64, unitCost string) {
	s.items[id] = entity.InventoryItem{
		ID:               id,
		ProductID:        "prod-" + id,
		Quantity:         decimal.NewFromInt(qty),
		ReservedQuantity: decimal.NewFromInt(reserved),
		ReorderLevel:     decimal.NewFromInt(2),
		UnitCost:         decimal.RequireFromString(unitCost),
		TotalValue:       decimal.NewFromInt(qty).Mul(decimal.RequireFromString(unitCost)),
		Active:           true,
	}
}

// ─── ReceiveStock ─────────────────────────────────────────────────────────────

func TestReceiveStock_RejectsNonPositiveQuantity(t *testing.T) {
	uc := newTestLedger(newStore())

	_, err := uc.ReceiveStock(context.Background(), ReceiveInput{ItemID: "i1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ReceiveStock(context.Background(), ReceiveInput{ItemID: "i1", Quantity: decimal.NewFromInt(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiveStock_AddsQuantityAndAppendsINMovement(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 10, 0, "4.00")
	uc := newTestLedger(s)

	cost := decimal.NewFromInt(6)
	item, err := uc.ReceiveStock(context.Background(), ReceiveInput{
		ItemID: "i1", UserID: "u1", Quantity: decimal.NewFromInt(10), UnitCost: &cost,
	})
	require.NoError(t, err)

	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(20)))
	// Weighted average: (10*4 + 10*6) / 20 = 5
	assert.True(t, item.UnitCost.Equal(decimal.NewFromInt(5)), "got %s", item.UnitCost)
	assert.True(t, item.TotalValue.Equal(decimal.NewFromInt(100)), "got %s", item.TotalValue)
	require.NotNil(t, item.LastRestockedAt)
	assert.Equal(t, testNow, *item.LastRestockedAt)

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, mov.UnitCost.Equal(decimal.NewFromInt(6)), "movement records the batch cost")
	assert.NotEmpty(t, mov.EventID)
}

func TestReceiveStock_NoCostKeepsAverage(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 5, 0, "3.00")
	uc := newTestLedger(s)

	item, err := uc.ReceiveStock(context.Background(), ReceiveInput{
		ItemID: "i1", Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.True(t, item.UnitCost.Equal(decimal.RequireFromString("3.00")))
	assert.True(t, item.TotalValue.Equal(decimal.NewFromInt(30)))
}

func TestReceiveStock_UnknownItem(t *testing.T) {
	uc := newTestLedger(newStore())
	_, err := uc.ReceiveStock(context.Background(), ReceiveInput{ItemID: "missing", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── RecordMortality ──────────────────────────────────────────────────────────

func TestRecordMortality_DecrementsAndLogsAtomically(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 10, 3, "4.50")
	uc := newTestLedger(s)

	res, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", UserID: "u1", Reason: entity.MortalityDisease, Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	assert.True(t, res.Item.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, res.Item.TotalValue.Equal(decimal.RequireFromString("27.00")), "got %s", res.Item.TotalValue)

	require.Len(t, s.mortality, 1)
	log := s.mortality[0]
	assert.Equal(t, entity.MortalityDisease, log.Reason)
	assert.True(t, log.Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, log.TotalLoss.Equal(decimal.RequireFromString("18.00")), "got %s", log.TotalLoss)

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(-4)))
	assert.Equal(t, log.EventID, mov.EventID, "log and movement reference the same event")
}

func TestRecordMortality_InsufficientStockLeavesStateUntouched(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 6, 0, "4.50")
	uc := newTestLedger(s)

	_, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: entity.MortalityDisease, Quantity: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.items["i1"].Quantity.Equal(decimal.NewFromInt(6)))
	assert.Empty(t, s.movements)
	assert.Empty(t, s.mortality)
}

func TestRecordMortality_InvalidReasonRejectedBeforeMutation(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 6, 0, "4.50")
	uc := newTestLedger(s)

	_, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: "BAD_VIBES", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, s.items["i1"].Quantity.Equal(decimal.NewFromInt(6)))
}

func TestRecordMortality_ZeroQuantityMarksLifecycleDead(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 3, 0, "4.00")
	s.lifecycles["i1"] = entity.PlantLifecycle{
		ID: "lc1", ItemID: "i1", DaysInYard: 42, HealthStatus: "declining", IsAlive: true,
	}
	uc := newTestLedger(s)

	res, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: entity.MortalityRootRot, Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.True(t, res.Item.Quantity.IsZero())

	lc := s.lifecycles["i1"]
	assert.False(t, lc.IsAlive)
	require.NotNil(t, lc.DeathDate)
	assert.Equal(t, testNow, *lc.DeathDate)
	assert.Equal(t, entity.MortalityRootRot, lc.DeathReason)

	assert.Equal(t, 42, res.Log.DaysInInventory, "age snapshot comes from the lifecycle counter")
}

func TestRecordMortality_PartialLossLeavesLifecycleAlive(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 5, 0, "4.00")
	s.lifecycles["i1"] = entity.PlantLifecycle{ID: "lc1", ItemID: "i1", IsAlive: true}
	uc := newTestLedger(s)

	_, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: entity.MortalityFrostDamage, Quantity: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	lc := s.lifecycles["i1"]
	assert.True(t, lc.IsAlive)
	assert.Nil(t, lc.DeathDate)
}

func TestRecordMortality_SeasonInferredFromMonth(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 5, 0, "4.00")
	uc := newTestLedger(s)

	// testNow is October: fall.
	res, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: entity.MortalityPestDamage, Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SeasonFall, res.Log.Season)

	// Explicit season wins over the calendar.
	res, err = uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: entity.MortalityPestDamage, Quantity: decimal.NewFromInt(1),
		Season: entity.SeasonSummer,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SeasonSummer, res.Log.Season)
}

func TestRecordMortality_UnknownCostYieldsZeroLoss(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 5, 0, "0")
	uc := newTestLedger(s)

	res, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: entity.MortalityTheft, Quantity: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.True(t, res.Log.TotalLoss.IsZero())
}

// A failure on the last step (the movement append) must roll back the
// decrement, the lifecycle update and the mortality log.
func TestRecordMortality_FailureAfterDecrementRollsEverythingBack(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 3, 0, "4.00")
	s.lifecycles["i1"] = entity.PlantLifecycle{ID: "lc1", ItemID: "i1", IsAlive: true}

	runner := &fakeTxRunner{s: s, failMovement: errors.New("connection reset")}
	uc := New(runner, &fakeItemRepo{s: s}, &fakeMovementRepo{s: s}, &fakeMortalityRepo{s: s})
	uc.now = func() time.Time { return testNow }

	_, err := uc.RecordMortality(context.Background(), MortalityInput{
		ItemID: "i1", Reason: entity.MortalityDisease, Quantity: decimal.NewFromInt(3),
	})
	require.Error(t, err)

	assert.True(t, s.items["i1"].Quantity.Equal(decimal.NewFromInt(3)), "quantity restored")
	assert.True(t, s.lifecycles["i1"].IsAlive, "lifecycle restored")
	assert.Empty(t, s.mortality)
	assert.Empty(t, s.movements)
}

// ─── AdjustStock ──────────────────────────────────────────────────────────────

func TestAdjustStock_SignedCorrection(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 10, 0, "2.00")
	uc := newTestLedger(s)

	item, err := uc.AdjustStock(context.Background(), AdjustInput{
		ItemID: "i1", Quantity: decimal.NewFromInt(-3), Reason: "yearly count",
	})
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, item.TotalValue.Equal(decimal.NewFromInt(14)))

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, s.movements[0].Type)
	assert.True(t, s.movements[0].Quantity.Equal(decimal.NewFromInt(-3)))
}

func TestAdjustStock_CannotGoNegative(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 2, 0, "2.00")
	uc := newTestLedger(s)

	_, err := uc.AdjustStock(context.Background(), AdjustInput{
		ItemID: "i1", Quantity: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.items["i1"].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestAdjustStock_ZeroRejected(t *testing.T) {
	uc := newTestLedger(newStore())
	_, err := uc.AdjustStock(context.Background(), AdjustInput{ItemID: "i1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Reservations ─────────────────────────────────────────────────────────────

func TestReserveStock_BoundedByAvailable(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 10, 3, "1.00")
	uc := newTestLedger(s)

	item, err := uc.ReserveStock(context.Background(), "i1", decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.True(t, item.ReservedQuantity.Equal(decimal.NewFromInt(10)))

	_, err = uc.ReserveStock(context.Background(), "i1", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestReleaseStock_BoundedByReserved(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 10, 3, "1.00")
	uc := newTestLedger(s)

	item, err := uc.ReleaseStock(context.Background(), "i1", decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, item.ReservedQuantity.IsZero())

	_, err = uc.ReleaseStock(context.Background(), "i1", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReservations_DoNotTouchMovementTrail(t *testing.T) {
	s := newStore()
	seedItem(s, "i1", 10, 0, "1.00")
	uc := newTestLedger(s)

	_, err := uc.ReserveStock(context.Background(), "i1", decimal.NewFromInt(4))
	require.NoError(t, err)
	_, err = uc.ReleaseStock(context.Background(), "i1", decimal.NewFromInt(4))
	require.NoError(t, err)

	assert.Empty(t, s.movements, "reservations change no on-hand quantity")
}

// ─── Item creation ────────────────────────────────────────────────────────────

func TestCreateItem_LivingStockGetsLifecycle(t *testing.T) {
	s := newStore()
	uc := newTestLedger(s)

	item, err := uc.CreateItem(context.Background(), CreateItemInput{
		ProductID:    "p1",
		Location:     "greenhouse-2",
		ReorderLevel: decimal.NewFromInt(5),
		LivingStock:  true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)
	assert.True(t, item.Quantity.IsZero())
	assert.True(t, item.Active)

	lc, ok := s.lifecycles[item.ID]
	require.True(t, ok, "living stock gets a lifecycle record")
	assert.True(t, lc.IsAlive)
	assert.Equal(t, "healthy", lc.HealthStatus)
	assert.Nil(t, lc.DeathDate)
}

func TestCreateItem_NonLivingStockHasNoLifecycle(t *testing.T) {
	s := newStore()
	uc := newTestLedger(s)

	item, err := uc.CreateItem(context.Background(), CreateItemInput{
		ProductID:    "p2",
		ReorderLevel: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	_, ok := s.lifecycles[item.ID]
	assert.False(t, ok)
}

func TestCreateItem_Validation(t *testing.T) {
	uc := newTestLedger(newStore())

	_, err := uc.CreateItem(context.Background(), CreateItemInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(context.Background(), CreateItemInput{
		ProductID:    "p1",
		ReorderLevel: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
