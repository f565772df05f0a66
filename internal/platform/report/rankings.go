package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"scorecard/internal/domain/scorecard"
)

var columnWidths = []float64{10, 50, 55, 35, 20, 20}

// RankingsPDF renders the top and low slices as two tables on A4.
func RankingsPDF(title string, rankings scorecard.Rankings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Window: %s to %s (%d days, %d weeks)",
		rankings.Window.From.Format("2006-01-02"),
		rankings.Window.To.Format("2006-01-02"),
		rankings.Window.Days,
		rankings.Window.Weeks,
	))
	pdf.Ln(7)
	pdf.Cell(0, 7, summaryLine(rankings.Summary))
	pdf.Ln(10)

	if rankings.Summary.Count == 0 {
		pdf.Cell(0, 7, "No employees in scope.")
	} else {
		table(pdf, "Top performers", rankings.Top)
		pdf.Ln(6)
		table(pdf, "Needs attention", rankings.Low)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render rankings pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryLine(s scorecard.RankingSummary) string {
	line := fmt.Sprintf("Employees: %d", s.Count)
	if s.AvgScore != nil {
		line += fmt.Sprintf("   Average: %d", *s.AvgScore)
	}
	if s.TopCutoff != nil && s.LowCutoff != nil {
		line += fmt.Sprintf("   Top cutoff: %d   Low cutoff: %d", *s.TopCutoff, *s.LowCutoff)
	}
	return line
}

func table(pdf *gofpdf.Fpdf, heading string, items []scorecard.ScorecardItem) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, heading)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range []string{"#", "Name", "Email", "Department", "On time", "Score"} {
		pdf.CellFormat(columnWidths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for idx, item := range items {
		row := []string{
			strconv.Itoa(idx + 1),
			item.Username,
			item.Email,
			item.Department,
			strconv.Itoa(item.Metrics.OnTimeRate) + "%",
			strconv.Itoa(item.Score),
		}
		for i, cell := range row {
			pdf.CellFormat(columnWidths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
