package export

import (
	"io"

	pkgerrors "github.com/pkg/errors"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics/color"

	"diptab/pkg/dip"
)

const (
	pdfMargin    = 40.0
	pdfRowHeight = 18.0
	pdfFontSize  = 10.0
	pdfTitleSize = 14.0
)

// WritePDF renders the table as a paginated A4 document with fixed-width
// bordered cells and a shaded header row repeated on every page. The
// title is printed above the table on the first page.
func WritePDF(w io.Writer, t dip.Table, title string) error {
	paper := document.A4
	doc, err := document.WriteMultiPage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create pdf document")
	}

	heading := standard.HelveticaBold.New()
	body := standard.Helvetica.New()

	colWidth := (paper.URx - 2*pdfMargin) / float64(len(t.Headers))
	rows := t.Rows
	first := true

	for {
		page := doc.AddPage()
		y := paper.URy - pdfMargin

		if first && title != "" {
			page.TextBegin()
			page.TextSetFont(heading, pdfTitleSize)
			page.TextFirstLine(pdfMargin, y-pdfTitleSize)
			page.TextShow(title)
			page.TextEnd()
			y -= 2 * pdfTitleSize
		}
		first = false

		drawRow(page, heading, y, colWidth, t.Headers, true)
		y -= pdfRowHeight

		for len(rows) > 0 && y-pdfRowHeight >= pdfMargin {
			drawRow(page, body, y, colWidth, rowStrings(rows[0]), false)
			y -= pdfRowHeight
			rows = rows[1:]
		}

		if err := page.Close(); err != nil {
			return pkgerrors.Wrap(err, "failed to close pdf page")
		}
		if len(rows) == 0 {
			break
		}
	}

	return pkgerrors.Wrap(doc.Close(), "failed to close pdf document")
}

// drawRow draws one table line of bordered cells with y at the top edge.
func drawRow(page *document.Page, f font.Layouter, y, w float64, cells []string, shaded bool) {
	page.PushGraphicsState()

	if shaded {
		page.SetFillColor(color.DeviceGray(0.86))
		page.Rectangle(pdfMargin, y-pdfRowHeight, w*float64(len(cells)), pdfRowHeight)
		page.Fill()
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.5)
	for i := range cells {
		page.Rectangle(pdfMargin+float64(i)*w, y-pdfRowHeight, w, pdfRowHeight)
	}
	page.Stroke()

	page.SetFillColor(color.DeviceGray(0))
	for i, s := range cells {
		// Rough centering; Helvetica digits run close to half the font
		// size in width.
		tw := float64(len(s)) * pdfFontSize * 0.5
		x := pdfMargin + float64(i)*w + (w-tw)/2
		page.TextBegin()
		page.TextSetFont(f, pdfFontSize)
		page.TextFirstLine(x, y-pdfRowHeight+5)
		page.TextShow(s)
		page.TextEnd()
	}

	page.PopGraphicsState()
}
