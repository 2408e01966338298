package models

import "strings"

// Unit is the measure an ingredient is bought and priced in.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "gr"
	UnitLiter      Unit = "ltr"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "pcs"
	UnitPack       Unit = "pack"
	UnitCan        Unit = "can"
	UnitBottle     Unit = "btl"
)

var allowedUnits = []Unit{UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitPiece, UnitPack, UnitCan, UnitBottle}

// Ingredient is a master-list entry. Price is per one Unit.
type Ingredient struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Unit  Unit    `json:"unit"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// AllowedUnits returns the list of supported units.
func AllowedUnits() []Unit {
	result := make([]Unit, len(allowedUnits))
	copy(result, allowedUnits)
	return result
}

// ValidUnit reports whether value names a supported unit.
func ValidUnit(value string) bool {
	for _, unit := range allowedUnits {
		if string(unit) == value {
			return true
		}
	}
	return false
}

// NormalizeUnit lower-cases and trims value, mapping common spellings onto
// the canonical unit. The boolean is false when the value is not recognised.
func NormalizeUnit(value string) (Unit, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "g", "gram", "grams":
		normalized = string(UnitGram)
	case "l", "liter", "litre":
		normalized = string(UnitLiter)
	case "pc", "piece", "pieces":
		normalized = string(UnitPiece)
	case "bottle":
		normalized = string(UnitBottle)
	}
	if ValidUnit(normalized) {
		return Unit(normalized), true
	}
	return "", false
}
