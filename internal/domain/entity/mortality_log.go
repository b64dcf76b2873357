package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mortality reason vocabulary. Closed set; anything else is rejected
// before mutation.
const (
	MortalityNaturalAging       = "NATURAL_AGING"
	MortalityOverwatering       = "OVERWATERING"
	MortalityUnderwatering      = "UNDERWATERING"
	MortalityDisease            = "DISEASE"
	MortalityPestDamage         = "PEST_DAMAGE"
	MortalityFrostDamage        = "FROST_DAMAGE"
	MortalityHeatStress         = "HEAT_STRESS"
	MortalityTransplantShock    = "TRANSPLANT_SHOCK"
	MortalityNutrientDeficiency = "NUTRIENT_DEFICIENCY"
	MortalityRootRot            = "ROOT_ROT"
	MortalityFungalInfection    = "FUNGAL_INFECTION"
	MortalityBacterialInfection = "BACTERIAL_INFECTION"
	MortalityViralInfection     = "VIRAL_INFECTION"
	MortalityPhysicalDamage     = "PHYSICAL_DAMAGE"
	MortalityPoorSoil           = "POOR_SOIL_CONDITIONS"
	MortalityImproperLighting   = "IMPROPER_LIGHTING"
	MortalityChemicalBurn       = "CHEMICAL_BURN"
	MortalityCustomerDamage     = "CUSTOMER_DAMAGE"
	MortalityTheft              = "THEFT"
	MortalityOther              = "OTHER"
)

// MortalityReasons lists the full vocabulary in a stable order.
var MortalityReasons = []string{
	MortalityNaturalAging, MortalityOverwatering, MortalityUnderwatering,
	MortalityDisease, MortalityPestDamage, MortalityFrostDamage,
	MortalityHeatStress, MortalityTransplantShock, MortalityNutrientDeficiency,
	MortalityRootRot, MortalityFungalInfection, MortalityBacterialInfection,
	MortalityViralInfection, MortalityPhysicalDamage, MortalityPoorSoil,
	MortalityImproperLighting, MortalityChemicalBurn, MortalityCustomerDamage,
	MortalityTheft, MortalityOther,
}

// IsValidMortalityReason reports whether reason belongs to the vocabulary.
func IsValidMortalityReason(reason string) bool {
	for _, r := range MortalityReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Seasons used for mortality reporting.
const (
	SeasonSpring = "SPRING"
	SeasonSummer = "SUMMER"
	SeasonFall   = "FALL"
	SeasonWinter = "WINTER"
)

// MortalityLog is the immutable record of a loss of living stock,
// created in the same transaction as the quantity decrement and its
// matching OUT movement (same EventID). Never updated or deleted.
type MortalityLog struct {
	ID              string
	EventID         string
	ItemID          string
	ProductID       string
	Reason          string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal // cost at time of loss
	TotalLoss       decimal.Decimal // UnitCost * Quantity, zero when cost unknown
	Season          string
	DaysInInventory int
	Notes           string
	CreatedAt       time.Time
	CreatedBy       string
}
