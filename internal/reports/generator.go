// Package reports renders the monthly operations report: per-day missed-meal
// counts and leftover weights, with month totals, as a PDF.
package reports

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/greenplate/mealops/internal/calendar"
	"github.com/greenplate/mealops/internal/mealplan"
	"github.com/greenplate/mealops/internal/records"
)

// Generator renders monthly operation reports.
type Generator struct {
	SchoolName string
}

func NewGenerator(schoolName string) *Generator {
	return &Generator{SchoolName: schoolName}
}

type summary struct {
	recordedDays  int
	lunchMissed   int
	dinnerMissed  int
	lunchKg       float64
	dinnerKg      float64
	plannedLunch  int
	plannedDinner int
}

// MonthlyPDF renders the report for one month from the availability mapping
// and a snapshot of the record cache.
func (g *Generator) MonthlyPDF(month calendar.Month, avail map[string]mealplan.Availability, recs map[string]records.DailyRecord) ([]byte, error) {
	layout := month.Layout()
	sum := summarize(month, layout, avail, recs)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Meal Service Operations Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	if g.SchoolName != "" {
		pdf.Cell(0, 8, g.SchoolName)
		pdf.Ln(6)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s-01 - %s", month.String(), month.DateString(layout.DaysInMonth)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Recorded days: %d", sum.recordedDays))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Planned meals: %d lunch, %d dinner", sum.plannedLunch, sum.plannedDinner))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Missed meals: %d lunch, %d dinner", sum.lunchMissed, sum.dinnerMissed))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Leftovers: %.1f kg lunch, %.1f kg dinner", sum.lunchKg, sum.dinnerKg))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Daily records")
	pdf.Ln(8)

	g.drawDailyTable(pdf, month, layout, avail, recs)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawDailyTable(pdf *gofpdf.Fpdf, month calendar.Month, layout calendar.Layout, avail map[string]mealplan.Availability, recs map[string]records.DailyRecord) {
	widths := []float64{28, 24, 28, 24, 28}
	headers := []string{"Date", "Lunch missed", "Lunch left (kg)", "Dinner missed", "Dinner left (kg)"}

	pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for day := 1; day <= layout.DaysInMonth; day++ {
		date := month.DateString(day)
		rec, hasRec := recs[date]
		a := avail[date]

		row := []string{
			date,
			slotCell(a.Lunch, hasRec, strconv.Itoa(rec.LunchMissed)),
			slotCell(a.Lunch, hasRec, fmt.Sprintf("%.1f", rec.LunchLeftoversKg)),
			slotCell(a.Dinner, hasRec, strconv.Itoa(rec.DinnerMissed)),
			slotCell(a.Dinner, hasRec, fmt.Sprintf("%.1f", rec.DinnerLeftoversKg)),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// slotCell renders one table value: blank when no meal was planned, a dash
// when planned but unrecorded.
func slotCell(planned, recorded bool, value string) string {
	if !planned {
		return ""
	}
	if !recorded {
		return calendar.Placeholder
	}
	return value
}

func summarize(month calendar.Month, layout calendar.Layout, avail map[string]mealplan.Availability, recs map[string]records.DailyRecord) summary {
	var sum summary
	for day := 1; day <= layout.DaysInMonth; day++ {
		date := month.DateString(day)
		a := avail[date]
		if a.Lunch {
			sum.plannedLunch++
		}
		if a.Dinner {
			sum.plannedDinner++
		}
		rec, ok := recs[date]
		if !ok {
			continue
		}
		sum.recordedDays++
		sum.lunchMissed += rec.LunchMissed
		sum.dinnerMissed += rec.DinnerMissed
		sum.lunchKg += rec.LunchLeftoversKg
		sum.dinnerKg += rec.DinnerLeftoversKg
	}
	return sum
}

// SaveToFile writes the report into dir under a collision-safe name and
// returns the full path.
func (g *Generator) SaveToFile(dir string, month calendar.Month, data []byte) (string, error) {
	name := fmt.Sprintf("mealops-report-%s-%s.pdf", month.String(), uuid.NewString()[:8])
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
