package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/eventful-api/eventful-backend/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter serializes organizer analytics into a downloadable file.
type ReportExporter interface {
	Export(format string, analytics OrganizerAnalytics) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(format string, analytics OrganizerAnalytics) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		return e.exportCSV(timestamp, analytics)
	case FormatPDF:
		return e.exportPDF(timestamp, analytics)
	case FormatExcel:
		return e.exportExcel(timestamp, analytics)
	default:
		return nil, "", "", utils.BadRequest("invalid export format, use csv, pdf or excel")
	}
}

func (e *reportExporter) exportCSV(timestamp string, analytics OrganizerAnalytics) ([]byte, string, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"Event", "Total Enrollments", "Scanned In"})
	for _, s := range analytics.IndividualEventStats {
		_ = w.Write([]string{s.Title, strconv.Itoa(s.TotalEnrollment), strconv.Itoa(s.ScannedIn)})
	}
	_ = w.Write([]string{"TOTAL", strconv.Itoa(analytics.AllTimeEnrollments), ""})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("organizer_analytics_%s.csv", timestamp)
	return buf.Bytes(), filename, "text/csv", nil
}

func (e *reportExporter) exportPDF(timestamp string, analytics OrganizerAnalytics) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Organizer Analytics")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Total events organized: %d", analytics.TotalEventsOrganized))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("All-time enrollments: %d", analytics.AllTimeEnrollments))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(100, 8, "Event", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Enrollments", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Scanned In", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, s := range analytics.IndividualEventStats {
		pdf.CellFormat(100, 8, s.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, strconv.Itoa(s.TotalEnrollment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, strconv.Itoa(s.ScannedIn), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("organizer_analytics_%s.pdf", timestamp)
	return buf.Bytes(), filename, "application/pdf", nil
}

func (e *reportExporter) exportExcel(timestamp string, analytics OrganizerAnalytics) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Analytics"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Event")
	_ = f.SetCellValue(sheet, "B1", "Total Enrollments")
	_ = f.SetCellValue(sheet, "C1", "Scanned In")

	for i, s := range analytics.IndividualEventStats {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.Title)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.TotalEnrollment)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), s.ScannedIn)
	}

	summaryRow := len(analytics.IndividualEventStats) + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "TOTAL")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), analytics.AllTimeEnrollments)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("organizer_analytics_%s.xlsx", timestamp)
	return buf.Bytes(), filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}
