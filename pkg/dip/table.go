// Package dip turns a handful of hand-entered tank calibration readings
// into a dense lookup table with one quantity per 0.1 DIP increment.
//
// The package is pure computation: every function is total, no state
// survives between calls, and inputs are never mutated. All leniency
// towards bad input (parse-to-zero, negative mass clamping) happens at
// the ingestion boundary in ParseDecimal and KGToLitres, so the table
// math itself never has to consider failure.
package dip

import "math"

// Headers is the fixed column layout of a generated table: the integer
// DIP followed by its ten tenth-of-a-DIP columns.
var Headers = []string{"DIP", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// Row is one table line: an integer DIP and up to ten cells, one per 0.1
// increment. The final row may carry fewer than ten cells when the
// display range ends below x.9.
type Row struct {
	DIP   int       `json:"dip"`
	Cells []float64 `json:"cells"`
}

// Table is the dense lookup table generated from a record list.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Options control table generation. The zero value builds a KG table
// over the full calibrated range using the stock density and fallback
// slope.
type Options struct {
	Mode Mode

	// Start is the first integer DIP of the table. Defaults to the floor
	// of the lowest calibrated DIP.
	Start *float64
	// End is the last DIP of the table. Defaults to the highest
	// calibrated DIP itself, not its ceiling, which is why the top row
	// is usually partial.
	End *float64

	// Density in KG per litre for ModeLitre. 0 means DefaultDensity.
	Density float64
	// DefaultSlope is the fallback extrapolation rate per 1.0 DIP used
	// when fewer than two points exist. 0 means DefaultSlope.
	DefaultSlope float64
}

// BuildTable generates the dense table for records. It is a pure
// function of its inputs: identical record lists produce identical
// tables. Empty input produces the headers with zero rows, which callers
// present as an informational "no records" state rather than an error.
func BuildTable(records []Record, opts Options) Table {
	t := Table{Headers: Headers}

	mode := opts.Mode
	if mode == "" {
		mode = ModeKG
	}
	density := opts.Density
	if density == 0 {
		density = DefaultDensity
	}
	fallback := opts.DefaultSlope
	if fallback == 0 {
		fallback = DefaultSlope
	}

	set := newCalibrationSet(records, mode, density)
	if set.empty() {
		return t
	}

	start := math.Floor(set.min())
	if opts.Start != nil {
		start = math.Floor(*opts.Start)
	}
	end := set.max()
	if opts.End != nil {
		end = *opts.End
	}

	for intDip := int(start); intDip <= int(end); intDip++ {
		row := Row{DIP: intDip, Cells: make([]float64, 0, 10)}
		for tenth := 0; tenth < 10; tenth++ {
			actual := round2(float64(intDip) + float64(tenth)/10)
			if actual > set.max() {
				// Past the top calibration point the table would be pure
				// guesswork, so the final row stops early instead of
				// extrapolating beyond the display boundary.
				break
			}
			row.Cells = append(row.Cells, round2(set.valueAt(actual, fallback)))
		}
		if len(row.Cells) == 0 {
			break
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}
