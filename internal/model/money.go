package model

import "github.com/shopspring/decimal"

// minorUnitExponent is the number of decimal places between the major
// unit (dollars) and the minor unit (cents) stored in cost_per_night.
const minorUnitExponent = 2

// ToMinorUnits converts an amount in major currency units into minor
// units, rounding half away from zero to the nearest unit.
//
//	150.00 -> 15000
//	 99.999 -> 10000
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitExponent).Round(0).IntPart()
}

// MinimumMinorUnits converts a lower price bound, rounding up so that
// "cost >= amount" keeps its meaning for sub-cent amounts (99.994 -> 10000).
func MinimumMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitExponent).Ceil().IntPart()
}

// MaximumMinorUnits converts an upper price bound, rounding down
// (200.006 -> 20000).
func MaximumMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitExponent).Floor().IntPart()
}

// FromMinorUnits converts minor units back into major units.
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -minorUnitExponent)
}
