package dip

import "math"

// DefaultDensity is the density of whole milk in KG per litre, used to
// convert a mass reading to a volume.
const DefaultDensity = 1.0285

// KGToLitres converts a mass in KG to litres using the standard milk
// density, rounded to 2 decimal places. Negative or non-finite input is
// treated as a data-entry error and converts to 0 rather than failing.
func KGToLitres(kg float64) float64 {
	return KGToLitresAt(kg, DefaultDensity)
}

// KGToLitresAt is KGToLitres with an explicit density, for installations
// that calibrate against something other than whole milk.
func KGToLitresAt(kg, density float64) float64 {
	if kg < 0 || math.IsNaN(kg) || math.IsInf(kg, 0) || density <= 0 {
		return 0
	}
	return round2(kg / density)
}

// round2 rounds to 2 decimal places. All stored quantities and table
// cells go through this, so equal readings always compare equal.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
