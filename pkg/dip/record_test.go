package dip

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2.5", 2.5},
		{"  2.5  ", 2.5},
		{"100", 100},
		{"", 0},
		{"abc", 0},
		{"1.2.3", 0},
		{"-3.5", -3.5},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, c := range cases {
		if got := ParseDecimal(c.in); got != c.want {
			t.Errorf("ParseDecimal(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewRecordDerivesDIPMM(t *testing.T) {
	r := NewRecord("100.456", "2.345")
	want := Record{KG: 100.46, DIP: 2.35, DIPMM: 23.5}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("NewRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRecordMalformedInputDegradesToZero(t *testing.T) {
	r := NewRecord("not-a-number", "")
	want := Record{}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("NewRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeRederivesDIPMM(t *testing.T) {
	records := []Record{
		{KG: 100, DIP: 2, DIPMM: 20},
		{KG: 130, DIP: 5.5, DIPMM: 999}, // stale after an edit
	}

	Normalize(records)

	if records[0].DIPMM != 20 {
		t.Errorf("records[0].DIPMM = %v, want 20", records[0].DIPMM)
	}
	if records[1].DIPMM != 55 {
		t.Errorf("records[1].DIPMM = %v, want 55", records[1].DIPMM)
	}
}
