// Package pdf renders landfall reports as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
)

// Column headers of the report table.
var headers = [3]string{"Hurricane Name", "Landfall Date", "MAX Wind Speed"}

// Renderer lays out a Report as a single-table PDF.
type Renderer struct {
	title    string
	compress bool
}

// NewRenderer creates a Renderer with the given document title.
func NewRenderer(title string) *Renderer {
	return &Renderer{title: title, compress: true}
}

// Render produces the PDF bytes for report.
func (r *Renderer) Render(report domain.Report) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetCompression(r.compress)
	doc.SetCreationDate(report.GeneratedAt)
	doc.SetTitle(r.title, true)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, r.title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, "Desc: "+describe(report.Criteria), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, "Generated: "+report.GeneratedAt.UTC().Format(time.RFC1123), "", 1, "L", false, 0, "")
	doc.Ln(4)

	pageWidth, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(headers))

	doc.SetFont("Helvetica", "B", 11)
	for _, h := range headers {
		doc.CellFormat(colWidth, 8, h, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, row := range report.Rows {
		doc.CellFormat(colWidth, 7, row.Name, "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidth, 7, row.LandfallDate, "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidth, 7, strconv.Itoa(row.MaxWindSpeedKnots), "1", 0, "C", false, 0, "")
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func describe(c domain.FilterCriteria) string {
	if c.Region == domain.FloridaBox {
		return fmt.Sprintf("Hurricanes %d-Now in Florida", c.MinYear)
	}
	return fmt.Sprintf("Hurricanes %d-Now in region lat %g to %g, lon %g to %g",
		c.MinYear, c.Region.MinLat, c.Region.MaxLat, c.Region.MinLon, c.Region.MaxLon)
}
