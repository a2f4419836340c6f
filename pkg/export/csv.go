// Package export encodes generated tables for the two field formats: a
// delimited text file for spreadsheets and a paginated PDF for printing.
// Both adapters only consume the header/row structure; all table content
// is decided by the engine.
package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"diptab/pkg/dip"
)

// WriteCSV encodes the table as delimited text: the literal header row
// followed by one line per table row. Short final rows simply produce
// fewer fields.
func WriteCSV(w io.Writer, t dip.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Headers); err != nil {
		return pkgerrors.Wrap(err, "failed to write csv header")
	}
	for _, row := range t.Rows {
		if err := cw.Write(rowStrings(row)); err != nil {
			return pkgerrors.Wrap(err, "failed to write csv row")
		}
	}

	cw.Flush()
	return pkgerrors.Wrap(cw.Error(), "failed to flush csv")
}

// EncodeCSV is WriteCSV into a byte slice, for HTTP responses.
func EncodeCSV(t dip.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rowStrings(r dip.Row) []string {
	out := make([]string, 0, len(r.Cells)+1)
	out = append(out, strconv.Itoa(r.DIP))
	for _, c := range r.Cells {
		out = append(out, formatCell(c))
	}
	return out
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
