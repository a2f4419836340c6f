package dip

import (
	"math"
	"strconv"
	"strings"
)

// Record is a single calibration reading: a dip-stick level paired with
// the milk mass measured at that level. DIPMM is a derived display field
// (the dip in millimetres); it is always recomputed from DIP and never
// entered directly.
type Record struct {
	KG    float64 `json:"kg"`
	DIP   float64 `json:"dip"`
	DIPMM float64 `json:"dipMM"`
}

// ParseDecimal parses a hand-entered decimal number. Malformed input
// degrades to 0 instead of rejecting the record: the operator sees an
// obviously wrong 0 in the grid and corrects it there. This keeps the
// numeric core total; no parse errors ever reach it.
func ParseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NewRecord builds a Record from free-form text fields, rounding the
// stored values to 2 decimal places and deriving DIPMM.
func NewRecord(kg, dip string) Record {
	r := Record{
		KG:  round2(ParseDecimal(kg)),
		DIP: round2(ParseDecimal(dip)),
	}
	r.DIPMM = round2(r.DIP * 10)
	return r
}

// Normalize re-derives the DIPMM column for every record. Call after any
// edit to the DIP column.
func Normalize(records []Record) {
	for i := range records {
		records[i].DIPMM = round2(records[i].DIP * 10)
	}
}
