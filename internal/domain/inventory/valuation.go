// Package inventory holds pure domain services for stock valuation and
// derived quantities. Nothing here touches storage.
package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenhollow/nursery-api/internal/domain/entity"
)

// Available returns quantity minus reserved. Always derived on demand,
// never stored, so it cannot drift from the quantities it is built from.
func Available(item *entity.InventoryItem) decimal.Decimal {
	return item.Quantity.Sub(item.ReservedQuantity)
}

// IsLowStock reports whether the item is at or below its reorder level.
func IsLowStock(item *entity.InventoryItem) bool {
	return item.Quantity.LessThanOrEqual(item.ReorderLevel)
}

// TotalValue is quantity times unit cost; zero when the cost is unknown.
func TotalValue(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitCost)
}

// WeightedAverageCost folds a received batch into the current average:
// ((onHand * currentCost) + (received * receivedCost)) / (onHand + received)
func WeightedAverageCost(onHand, currentCost, received, receivedCost decimal.Decimal) decimal.Decimal {
	sum := onHand.Add(received)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := onHand.Mul(currentCost).Add(received.Mul(receivedCost))
	return num.Div(sum)
}

// SeasonOf maps a calendar month to the reporting season:
// Mar-May spring, Jun-Aug summer, Sep-Nov fall, Dec-Feb winter.
func SeasonOf(month time.Month) string {
	switch month {
	case time.March, time.April, time.May:
		return entity.SeasonSpring
	case time.June, time.July, time.August:
		return entity.SeasonSummer
	case time.September, time.October, time.November:
		return entity.SeasonFall
	default:
		return entity.SeasonWinter
	}
}

// DaysInInventory derives the age snapshot recorded on a mortality log:
// the lifecycle counter when one exists, otherwise whole days since the
// last restock. Zero when neither is known.
func DaysInInventory(lifecycle *entity.PlantLifecycle, lastRestockedAt *time.Time, now time.Time) int {
	if lifecycle != nil && lifecycle.DaysInYard > 0 {
		return lifecycle.DaysInYard
	}
	if lastRestockedAt != nil {
		days := int(now.Sub(*lastRestockedAt).Hours() / 24)
		if days > 0 {
			return days
		}
	}
	return 0
}
