package export

import (
	"bytes"
	"strings"
	"testing"

	"diptab/pkg/dip"
)

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, scenarioTable(), "DIP Table (KG)"); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("output does not start with a PDF header")
	}
	if buf.Len() < 500 {
		t.Errorf("pdf suspiciously small: %d bytes", buf.Len())
	}
}

func TestWritePDFEmptyTable(t *testing.T) {
	// Header-only document, still a valid single page.
	var buf bytes.Buffer
	if err := WritePDF(&buf, dip.BuildTable(nil, dip.Options{}), ""); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestWritePDFManyRowsPaginates(t *testing.T) {
	records := []dip.Record{
		{DIP: 0, KG: 0},
		{DIP: 120, KG: 3000},
	}
	table := dip.BuildTable(records, dip.Options{})
	if len(table.Rows) != 121 {
		t.Fatalf("rows = %d, want 121", len(table.Rows))
	}

	var long bytes.Buffer
	if err := WritePDF(&long, table, "long table"); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	var short bytes.Buffer
	if err := WritePDF(&short, scenarioTable(), "short table"); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	if long.Len() <= short.Len() {
		t.Errorf("121-row document (%d bytes) not larger than 4-row document (%d bytes)",
			long.Len(), short.Len())
	}
}
