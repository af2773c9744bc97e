package service

import (
	"context"
	"testing"

	"schoolcash/internal/audit"
	"schoolcash/internal/dto"
	"schoolcash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(incomes *stubIncomeRepo, expenses *stubExpenseRepo) ReportService {
	return NewReportService(incomes, expenses, audit.NewReporter(nil), stubRenderer{})
}

type stubRenderer struct{}

func (stubRenderer) RenderReport(_ *dto.ReportResponse) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func TestReportRangeEndpointsAreInclusive(t *testing.T) {
	incomes := &stubIncomeRepo{}
	seedIncome(incomes, "2026-03-01", "10")
	seedIncome(incomes, "2026-03-05", "20")
	seedIncome(incomes, "2026-03-10", "30")
	seedIncome(incomes, "2026-02-28", "999") // before range
	seedIncome(incomes, "2026-03-11", "999") // after range
	svc := newTestReportService(incomes, &stubExpenseRepo{})

	report, err := svc.Generate(context.Background(), dto.ReportFilter{
		From: "2026-03-01", To: "2026-03-10", Type: ReportTypeAll,
	})

	require.NoError(t, err)
	assert.True(t, report.Totals.Income.Equal(mustDecimal("60")))
	assert.Len(t, report.Days, 3)
}

func TestReportCountsBankExpenses(t *testing.T) {
	expenses := &stubExpenseRepo{}
	seedExpense(expenses, todayKey, "100", model.PaymentModeCash)
	seedExpense(expenses, todayKey, "400", model.PaymentModeBank)
	svc := newTestReportService(&stubIncomeRepo{}, expenses)

	report, err := svc.Generate(context.Background(), dto.ReportFilter{
		From: todayKey, To: todayKey, Type: ReportTypeAll,
	})

	require.NoError(t, err)
	// Unlike the register drawer, reports measure total spend.
	assert.True(t, report.Totals.Expense.Equal(mustDecimal("500")))
	assert.True(t, report.Totals.Balance.Equal(mustDecimal("-500")))
}

func TestReportTypeFilterExcludesOtherKind(t *testing.T) {
	incomes := &stubIncomeRepo{}
	expenses := &stubExpenseRepo{}
	seedIncome(incomes, todayKey, "100")
	seedExpense(expenses, todayKey, "50", model.PaymentModeCash)
	svc := newTestReportService(incomes, expenses)

	report, err := svc.Generate(context.Background(), dto.ReportFilter{
		From: todayKey, To: todayKey, Type: ReportTypeIncome,
	})

	require.NoError(t, err)
	assert.True(t, report.Totals.Income.Equal(mustDecimal("100")))
	assert.True(t, report.Totals.Expense.IsZero())
	require.Len(t, report.Days, 1)
	for _, tx := range report.Days[0].Transactions {
		assert.Equal(t, ReportTypeIncome, tx.Type)
	}
}

func TestReportDaysSortedNewestFirst(t *testing.T) {
	incomes := &stubIncomeRepo{}
	seedIncome(incomes, "2026-03-01", "10")
	seedIncome(incomes, "2026-03-03", "10")
	seedIncome(incomes, "2026-03-02", "10")
	svc := newTestReportService(incomes, &stubExpenseRepo{})

	report, err := svc.Generate(context.Background(), dto.ReportFilter{
		From: "2026-03-01", To: "2026-03-03", Type: ReportTypeAll,
	})

	require.NoError(t, err)
	require.Len(t, report.Days, 3)
	assert.Equal(t, "2026-03-03", report.Days[0].Date)
	assert.Equal(t, "2026-03-02", report.Days[1].Date)
	assert.Equal(t, "2026-03-01", report.Days[2].Date)
}

func TestReportRejectsMalformedFilter(t *testing.T) {
	svc := newTestReportService(&stubIncomeRepo{}, &stubExpenseRepo{})

	cases := []dto.ReportFilter{
		{From: "01-03-2026", To: "2026-03-10", Type: ReportTypeAll},
		{From: "2026-03-10", To: "2026-03-01", Type: ReportTypeAll},
		{From: "2026-03-01", To: "2026-03-10", Type: "bogus"},
		{From: "", To: "2026-03-10", Type: ReportTypeAll},
	}
	for _, filter := range cases {
		_, err := svc.Generate(context.Background(), filter)
		assert.Error(t, err, "filter %+v should be rejected", filter)
	}
}

func TestExportPDFDelegatesToRenderer(t *testing.T) {
	svc := newTestReportService(&stubIncomeRepo{}, &stubExpenseRepo{})

	data, err := svc.ExportPDF(context.Background(), dto.ReportFilter{
		From: todayKey, To: todayKey, Type: ReportTypeAll,
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), data)
}

func TestFeeBreakdownStableOrder(t *testing.T) {
	got := feeBreakdown(model.FeeDetails{
		Admission: decimalPtr("1000"),
		Tuition:   decimalPtr("300"),
		Fine:      decimalPtr("25"),
	})
	assert.Equal(t, "Tuition: 300.00, Fine: 25.00, Admission: 1000.00", got)
}
