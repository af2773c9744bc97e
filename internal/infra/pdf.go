package infra

import (
	"bytes"
	"fmt"

	"schoolcash/internal/dto"

	"github.com/go-pdf/fpdf"
)

// ReportRenderer produces the downloadable PDF for the reports page.
// Implements service.PDFRenderer.
type ReportRenderer struct {
	schoolName string
}

func NewReportRenderer(schoolName string) *ReportRenderer {
	if schoolName == "" {
		schoolName = "School Cash Register"
	}
	return &ReportRenderer{schoolName: schoolName}
}

func (r *ReportRenderer) RenderReport(report *dto.ReportResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, r.schoolName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Transaction Report  %s to %s", report.From, report.To), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Income: %s", report.Totals.Income.StringFixed(2)), "1", 0, "C", true, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Expense: %s", report.Totals.Expense.StringFixed(2)), "1", 0, "C", true, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Balance: %s", report.Totals.Balance.StringFixed(2)), "1", 1, "C", true, 0, "")
	pdf.Ln(4)

	for _, day := range report.Days {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, day.Date, "B", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(22, 7, "Type", "1", 0, "L", true, 0, "")
		pdf.CellFormat(108, 7, "Details", "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 7, "Mode", "1", 0, "L", true, 0, "")
		pdf.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, tx := range day.Transactions {
			pdf.CellFormat(22, 7, tx.Type, "1", 0, "L", false, 0, "")
			pdf.CellFormat(108, 7, truncate(tx.Details, 70), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 7, tx.PaymentMode, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, tx.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
		}

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(155, 7, "Day total (income / expense / balance)", "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%s / %s / %s",
			day.DailyIncome.StringFixed(2),
			day.DailyExpense.StringFixed(2),
			day.DailyBalance.StringFixed(2)), "1", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	if len(report.Days) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 10, "No transactions in the selected range.", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
