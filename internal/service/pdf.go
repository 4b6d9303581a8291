package service

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"

	"hrms/backend/internal/repository/storage/statistics"
)

const PDFContentType = "application/pdf"

// WriteStatisticsPDF renders the dashboard figures as a one table report.
func WriteStatisticsPDF(w io.Writer, stats statistics.GetResponse, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("HRMS attendance report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Attendance report")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, "Generated "+now.UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []struct {
		label string
		value int
	}{
		{"Total employees", stats.TotalEmployees},
		{"Total attendance records", stats.TotalAttendanceRecords},
		{"Total present", stats.TotalPresent},
	} {
		pdf.CellFormat(70, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprint(line.value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	widths := []float64{40, 100, 40}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Employee ID", "Name", "Present days"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, s := range stats.EmployeeStats {
		pdf.CellFormat(widths[0], 7, tr(s.EmployeeID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(s.EmployeeName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprint(s.PresentDays), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	return errors.Wrap(pdf.Output(w), "writing pdf")
}
