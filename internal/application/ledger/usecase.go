// Package ledger applies stock-affecting events: receiving, mortality,
// adjustments and reservations. Every mutating operation runs as one
// transaction with the item row locked (SELECT FOR UPDATE), and every
// quantity change appends an immutable movement entry.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	domaininv "github.com/greenhollow/nursery-api/internal/domain/inventory"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

// UseCase is the inventory/mortality ledger.
type UseCase struct {
	txRunner TxRunner
	items    repository.InventoryItemRepository
	moves    repository.InventoryMovementRepository
	morts    repository.MortalityLogRepository
	now      func() time.Time
}

// New constructs the ledger. The non-tx repositories serve read paths
// only; every mutation goes through txRunner.
func New(
	txRunner TxRunner,
	items repository.InventoryItemRepository,
	moves repository.InventoryMovementRepository,
	morts repository.MortalityLogRepository,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		items:    items,
		moves:    moves,
		morts:    morts,
		now:      time.Now,
	}
}

// ReceiveInput is a stock receipt.
type ReceiveInput struct {
	ItemID   string
	UserID   string
	Quantity decimal.Decimal
	UnitCost *decimal.Decimal // nil keeps the current average cost
}

// ReceiveStock locks the item row, adds the received quantity, folds the
// batch cost into the weighted average when supplied, recomputes total
// value, stamps lastRestockedAt and appends an IN movement.
func (uc *UseCase) ReceiveStock(ctx context.Context, in ReceiveInput) (*entity.InventoryItem, error) {
	if in.ItemID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	eventID := uuid.New().String()
	var updated *entity.InventoryItem

	err := uc.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		_ repository.PlantLifecycleRepository,
		movements repository.InventoryMovementRepository,
		_ repository.MortalityLogRepository,
	) error {
		item, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		unitCost := item.UnitCost
		if in.UnitCost != nil {
			unitCost = domaininv.WeightedAverageCost(item.Quantity, item.UnitCost, in.Quantity, *in.UnitCost)
		}
		item.Quantity = item.Quantity.Add(in.Quantity)
		item.UnitCost = unitCost
		item.TotalValue = domaininv.TotalValue(item.Quantity, unitCost)
		item.LastRestockedAt = &now
		item.UpdatedAt = now
		if err := items.Update(item); err != nil {
			return err
		}

		batchCost := unitCost
		if in.UnitCost != nil {
			batchCost = *in.UnitCost
		}
		mov := &entity.InventoryMovement{
			EventID:   eventID,
			ItemID:    item.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  in.Quantity,
			UnitCost:  batchCost,
			TotalCost: in.Quantity.Mul(batchCost),
			CreatedAt: now,
			CreatedBy: in.UserID,
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MortalityInput is a loss of living stock.
type MortalityInput struct {
	ItemID   string
	UserID   string
	Reason   string
	Quantity decimal.Decimal
	Season   string // inferred from the calendar month when empty
	Notes    string
}

// MortalityResult is what RecordMortality returns: the immutable log
// entry and the item after the decrement.
type MortalityResult struct {
	Log  *entity.MortalityLog
	Item *entity.InventoryItem
}

// RecordMortality applies a mortality event as a single atomic unit:
// quantity decrement, valuation recompute, lifecycle death marking when
// stock reaches zero, plus a MortalityLog and a matching OUT movement
// sharing one event id. Any failure rolls everything back.
func (uc *UseCase) RecordMortality(ctx context.Context, in MortalityInput) (*MortalityResult, error) {
	if in.ItemID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidMortalityReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	if in.Season != "" && !isValidSeason(in.Season) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	eventID := uuid.New().String()
	var result *MortalityResult

	err := uc.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		lifecycles repository.PlantLifecycleRepository,
		movements repository.InventoryMovementRepository,
		mortalities repository.MortalityLogRepository,
	) error {
		item, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		lifecycle, err := lifecycles.GetByItemID(item.ID)
		if err != nil {
			return err
		}

		item.Quantity = item.Quantity.Sub(in.Quantity)
		item.TotalValue = domaininv.TotalValue(item.Quantity, item.UnitCost)
		// Dead plants cannot stay reserved: keep reserved <= quantity.
		if item.ReservedQuantity.GreaterThan(item.Quantity) {
			item.ReservedQuantity = item.Quantity
		}
		item.UpdatedAt = now
		if err := items.Update(item); err != nil {
			return err
		}

		if item.Quantity.IsZero() && lifecycle != nil && lifecycle.IsAlive {
			lifecycle.IsAlive = false
			lifecycle.DeathDate = &now
			lifecycle.DeathReason = in.Reason
			lifecycle.UpdatedAt = now
			if err := lifecycles.Update(lifecycle); err != nil {
				return err
			}
		}

		season := in.Season
		if season == "" {
			season = domaininv.SeasonOf(now.Month())
		}
		log := &entity.MortalityLog{
			EventID:         eventID,
			ItemID:          item.ID,
			ProductID:       item.ProductID,
			Reason:          in.Reason,
			Quantity:        in.Quantity,
			UnitCost:        item.UnitCost,
			TotalLoss:       domaininv.TotalValue(in.Quantity, item.UnitCost),
			Season:          season,
			DaysInInventory: domaininv.DaysInInventory(lifecycle, item.LastRestockedAt, now),
			Notes:           in.Notes,
			CreatedAt:       now,
			CreatedBy:       in.UserID,
		}
		if err := mortalities.Create(log); err != nil {
			return err
		}

		mov := &entity.InventoryMovement{
			EventID:   eventID,
			ItemID:    item.ID,
			Type:      entity.MovementTypeOUT,
			Quantity:  in.Quantity.Neg(),
			UnitCost:  item.UnitCost,
			TotalCost: in.Quantity.Neg().Mul(item.UnitCost),
			Reason:    in.Reason,
			Notes:     in.Notes,
			CreatedAt: now,
			CreatedBy: in.UserID,
		}
		if err := movements.Create(mov); err != nil {
			return err
		}

		result = &MortalityResult{Log: log, Item: item}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustInput is a signed count correction.
type AdjustInput struct {
	ItemID   string
	UserID   string
	Quantity decimal.Decimal // positive adds, negative removes
	Reason   string
	Notes    string
}

// AdjustStock applies a signed correction with an ADJUSTMENT movement.
// Negative adjustments are bounded by the on-hand quantity.
func (uc *UseCase) AdjustStock(ctx context.Context, in AdjustInput) (*entity.InventoryItem, error) {
	if in.ItemID == "" || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	eventID := uuid.New().String()
	var updated *entity.InventoryItem

	err := uc.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		_ repository.PlantLifecycleRepository,
		movements repository.InventoryMovementRepository,
		_ repository.MortalityLogRepository,
	) error {
		item, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		newQty := item.Quantity.Add(in.Quantity)
		if newQty.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		item.Quantity = newQty
		item.TotalValue = domaininv.TotalValue(newQty, item.UnitCost)
		if item.ReservedQuantity.GreaterThan(item.Quantity) {
			item.ReservedQuantity = item.Quantity
		}
		item.UpdatedAt = now
		if err := items.Update(item); err != nil {
			return err
		}

		mov := &entity.InventoryMovement{
			EventID:   eventID,
			ItemID:    item.ID,
			Type:      entity.MovementTypeADJUSTMENT,
			Quantity:  in.Quantity,
			UnitCost:  item.UnitCost,
			TotalCost: in.Quantity.Mul(item.UnitCost),
			Reason:    in.Reason,
			Notes:     in.Notes,
			CreatedAt: now,
			CreatedBy: in.UserID,
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReserveStock holds quantity for a pending order. Bounded by the
// available (unreserved) quantity; reservations do not touch the
// movement trail because on-hand quantity does not change.
func (uc *UseCase) ReserveStock(ctx context.Context, itemID string, quantity decimal.Decimal) (*entity.InventoryItem, error) {
	if itemID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutateReservation(ctx, itemID, func(item *entity.InventoryItem) error {
		if domaininv.Available(item).LessThan(quantity) {
			return domain.ErrInsufficientStock
		}
		item.ReservedQuantity = item.ReservedQuantity.Add(quantity)
		return nil
	})
}

// ReleaseStock returns a held quantity to the available pool.
func (uc *UseCase) ReleaseStock(ctx context.Context, itemID string, quantity decimal.Decimal) (*entity.InventoryItem, error) {
	if itemID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutateReservation(ctx, itemID, func(item *entity.InventoryItem) error {
		if item.ReservedQuantity.LessThan(quantity) {
			return domain.ErrConflict
		}
		item.ReservedQuantity = item.ReservedQuantity.Sub(quantity)
		return nil
	})
}

func (uc *UseCase) mutateReservation(ctx context.Context, itemID string, mutate func(*entity.InventoryItem) error) (*entity.InventoryItem, error) {
	now := uc.now()
	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		_ repository.PlantLifecycleRepository,
		_ repository.InventoryMovementRepository,
		_ repository.MortalityLogRepository,
	) error {
		item, err := items.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := mutate(item); err != nil {
			return err
		}
		item.UpdatedAt = now
		if err := items.Update(item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetItem is the read path for a single stock record.
func (uc *UseCase) GetItem(ctx context.Context, itemID string) (*entity.InventoryItem, error) {
	item, err := uc.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListLowStock lists items at or below their reorder level.
func (uc *UseCase) ListLowStock(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	return uc.items.ListLowStock(limit, offset)
}

// ListMovements lists the audit trail for an item.
func (uc *UseCase) ListMovements(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return uc.moves.ListByItem(itemID, from, to, limit, offset)
}

// ListMortality lists mortality records for an item.
func (uc *UseCase) ListMortality(ctx context.Context, itemID string, limit, offset int) ([]*entity.MortalityLog, error) {
	return uc.morts.ListByItem(itemID, limit, offset)
}

// CreateItemInput opens a stock record for a product at a yard location.
type CreateItemInput struct {
	ProductID    string
	VariantID    string
	Location     string
	ReorderLevel decimal.Decimal
	LivingStock  bool // attaches a PlantLifecycle care record
}

// CreateItem creates an empty stock record, with a lifecycle record
// alongside it when the product is living stock. Stock arrives later
// through ReceiveStock.
func (uc *UseCase) CreateItem(ctx context.Context, in CreateItemInput) (*entity.InventoryItem, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderLevel.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		VariantID:    in.VariantID,
		Location:     in.Location,
		ReorderLevel: in.ReorderLevel,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		lifecycles repository.PlantLifecycleRepository,
		_ repository.InventoryMovementRepository,
		_ repository.MortalityLogRepository,
	) error {
		if err := items.Create(item); err != nil {
			return err
		}
		if !in.LivingStock {
			return nil
		}
		lc := &entity.PlantLifecycle{
			ID:           uuid.New().String(),
			ItemID:       item.ID,
			HealthStatus: "healthy",
			IsAlive:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return lifecycles.Create(lc)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func isValidSeason(s string) bool {
	switch s {
	case entity.SeasonSpring, entity.SeasonSummer, entity.SeasonFall, entity.SeasonWinter:
		return true
	}
	return false
}
