package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// renderTicketsPDF lays the export rows out as a landscape A4 table, one
// ticket per line.
func renderTicketsPDF(rows []ExportRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Store Ops - Ticket Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	type column struct {
		Title string
		Width float64
	}
	columns := []column{
		{"Ticket", 62},
		{"Template", 38},
		{"Store", 20},
		{"Employee", 22},
		{"Status", 20},
		{"Detail", 64},
		{"Submitted", 26},
		{"Decided", 26},
	}

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(235, 235, 235)
		for _, c := range columns {
			pdf.CellFormat(c.Width, 7, c.Title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	writeHeader()

	for i, r := range rows {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			writeHeader()
		}
		fill := i%2 == 1
		pdf.SetFillColor(248, 248, 248)
		values := []string{r.ID, r.TemplateName, r.StoreCode, r.EmployeeID, r.Status, r.Detail, r.CreatedAt, r.DecidedAt}
		for j, v := range values {
			pdf.CellFormat(columns[j].Width, 6, truncate(pdf, v, columns[j].Width-2), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.CellFormat(0, 8, "No tickets recorded.", "", 1, "L", false, 0, "")
	} else {
		pdf.Ln(2)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d tickets", len(rows)), "", 1, "L", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	for pdf.GetStringWidth(s) > width && len(s) > 3 {
		s = s[:len(s)-4] + "..."
	}
	return s
}
