package dip

import "sort"

// Mode selects which quantity a table reports.
type Mode string

const (
	// ModeKG reports the raw measured mass.
	ModeKG Mode = "kg"
	// ModeLitre reports the mass converted to litres at display time.
	ModeLitre Mode = "litre"
)

// Valid reports whether m is a known table mode.
func (m Mode) Valid() bool {
	return m == ModeKG || m == ModeLitre
}

// calibrationSet is the deduplicated, ascending-sorted view of a record
// list that all lookups run against. It is rebuilt from scratch for every
// table and never mutated afterwards.
type calibrationSet struct {
	dips   []float64
	values map[float64]float64
}

// newCalibrationSet folds records into a level-to-quantity map. Records
// sharing a DIP overwrite each other, last one wins.
func newCalibrationSet(records []Record, mode Mode, density float64) calibrationSet {
	values := make(map[float64]float64, len(records))
	for _, r := range records {
		d := round2(r.DIP)
		if mode == ModeLitre {
			values[d] = KGToLitresAt(r.KG, density)
		} else {
			values[d] = round2(r.KG)
		}
	}

	dips := make([]float64, 0, len(values))
	for d := range values {
		dips = append(dips, d)
	}
	sort.Float64s(dips)

	return calibrationSet{dips: dips, values: values}
}

func (s calibrationSet) empty() bool {
	return len(s.dips) == 0
}

func (s calibrationSet) min() float64 {
	return s.dips[0]
}

func (s calibrationSet) max() float64 {
	return s.dips[len(s.dips)-1]
}
