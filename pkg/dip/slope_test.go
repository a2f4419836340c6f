package dip

import (
	"math"
	"testing"
)

const slopeEps = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func setFrom(points map[float64]float64) calibrationSet {
	var records []Record
	for d, kg := range points {
		records = append(records, Record{DIP: d, KG: kg})
	}
	return newCalibrationSet(records, ModeKG, DefaultDensity)
}

func TestSmartSlopeDefaultWithFewPoints(t *testing.T) {
	empty := setFrom(nil)
	if got := empty.smartSlope(3, DefaultSlope); got != DefaultSlope {
		t.Errorf("empty set slope = %v, want %v", got, DefaultSlope)
	}

	single := setFrom(map[float64]float64{2: 50})
	if got := single.smartSlope(3, DefaultSlope); got != DefaultSlope {
		t.Errorf("single point slope = %v, want %v", got, DefaultSlope)
	}

	if got := single.smartSlope(3, 12.5); got != 12.5 {
		t.Errorf("configured fallback slope = %v, want 12.5", got)
	}
}

func TestSmartSlopeClampsOutlierInterval(t *testing.T) {
	// First interval rises 5.0 KG per DIP, second only 1.0 KG over six
	// DIPs. Extrapolating below the range must not use the raw first
	// interval rate.
	s := setFrom(map[float64]float64{3: 90, 4: 95, 10: 96})

	// Per-0.1 rates: 0.5 and 1/60. Mean = (0.5 + 1.0/60) / 2.
	avg := (0.5 + 1.0/60) / 2
	want := avg * 1.5 * 10 // local 0.5 clamped to the upper bound

	got := s.smartSlope(2.9, DefaultSlope)
	if !approxEqual(got, want, slopeEps) {
		t.Errorf("slope = %v, want clamped %v", got, want)
	}
	if got >= 5.0*10*0.999 {
		t.Errorf("slope %v not discounted from raw first-interval rate", got)
	}
}

func TestSmartSlopeWithinClampBounds(t *testing.T) {
	s := setFrom(map[float64]float64{1: 10, 2: 40, 3: 45, 5: 200, 7: 210})

	rates := make([]float64, 0, len(s.dips)-1)
	for i := 0; i < len(s.dips)-1; i++ {
		d1, d2 := s.dips[i], s.dips[i+1]
		rates = append(rates, intervalRate(d1, d2, s.values[d1], s.values[d2]))
	}
	avg := 0.0
	for _, r := range rates {
		avg += r
	}
	avg /= float64(len(rates))

	for _, target := range []float64{0.5, 1.5, 4.0, 6.5, 8.2} {
		got := s.smartSlope(target, DefaultSlope) / 10
		if got < avg*clampLow-slopeEps || got > avg*clampHigh+slopeEps {
			t.Errorf("slope at %v = %v outside [%v, %v]",
				target, got, avg*clampLow, avg*clampHigh)
		}
	}
}

func TestSmartSlopeNegativeTrendMirrorsBounds(t *testing.T) {
	// Quantities falling with level: per-0.1 rates -1 and -4, mean -2.5.
	s := setFrom(map[float64]float64{1: 100, 2: 90, 3: 50})

	// Above the range the local rate -4 clamps to 1.5 x mean = -3.75.
	got := s.smartSlope(3.5, DefaultSlope)
	if !approxEqual(got, -37.5, slopeEps) {
		t.Errorf("slope = %v, want -37.5", got)
	}

	// Below the range the local rate -1 clamps to 0.5 x mean = -1.25.
	got = s.smartSlope(0.5, DefaultSlope)
	if !approxEqual(got, -12.5, slopeEps) {
		t.Errorf("slope = %v, want -12.5", got)
	}
}

func TestIntervalRateZeroWidthGuard(t *testing.T) {
	if got := intervalRate(2, 2, 10, 50); got != 0 {
		t.Errorf("zero-width interval rate = %v, want 0", got)
	}
}
