package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/dto"
	"schoolcash/internal/model"
	"schoolcash/internal/repository"

	"github.com/shopspring/decimal"
)

// Report filter types.
const (
	ReportTypeAll     = "all"
	ReportTypeIncome  = "income"
	ReportTypeExpense = "expense"
)

// ReportService re-derives aggregates over the full transaction histories
// for an arbitrary inclusive date range. Stateless and idempotent: nothing
// is persisted, and the register's correctness does not depend on it.
//
// Unlike the register, report expense totals count every expense regardless
// of payment mode — this view is about total spend, not cash-in-hand.
type ReportService interface {
	Generate(ctx context.Context, filter dto.ReportFilter) (*dto.ReportResponse, error)
	ExportPDF(ctx context.Context, filter dto.ReportFilter) ([]byte, error)
}

type reportService struct {
	incomes  repository.IncomeRepository
	expenses repository.ExpenseRepository
	reporter *audit.Reporter
	renderer PDFRenderer
}

// PDFRenderer turns a generated report into a downloadable document.
type PDFRenderer interface {
	RenderReport(report *dto.ReportResponse) ([]byte, error)
}

func NewReportService(incomes repository.IncomeRepository, expenses repository.ExpenseRepository, reporter *audit.Reporter, renderer PDFRenderer) ReportService {
	return &reportService{incomes: incomes, expenses: expenses, reporter: reporter, renderer: renderer}
}

func (s *reportService) Generate(ctx context.Context, filter dto.ReportFilter) (*dto.ReportResponse, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	transactions, err := s.loadTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportResponse{
		From: filter.From,
		To:   filter.To,
		Type: filter.Type,
		Days: []dto.ReportDayGroup{},
	}

	grouped := make(map[string][]dto.ReportTransaction)
	for _, tx := range transactions {
		grouped[tx.Date] = append(grouped[tx.Date], tx)
		switch tx.Type {
		case ReportTypeIncome:
			resp.Totals.Income = resp.Totals.Income.Add(tx.Amount)
		case ReportTypeExpense:
			resp.Totals.Expense = resp.Totals.Expense.Add(tx.Amount)
		}
	}
	resp.Totals.Balance = resp.Totals.Income.Sub(resp.Totals.Expense)

	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	// Newest day first, like the dashboard history
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, date := range dates {
		txs := grouped[date]
		sort.Slice(txs, func(i, j int) bool { return txs[i].Timestamp > txs[j].Timestamp })

		day := dto.ReportDayGroup{Date: date, Transactions: txs}
		for _, tx := range txs {
			if tx.Type == ReportTypeIncome {
				day.DailyIncome = day.DailyIncome.Add(tx.Amount)
			} else {
				day.DailyExpense = day.DailyExpense.Add(tx.Amount)
			}
		}
		day.DailyBalance = day.DailyIncome.Sub(day.DailyExpense)
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

func (s *reportService) ExportPDF(ctx context.Context, filter dto.ReportFilter) ([]byte, error) {
	report, err := s.Generate(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderReport(report)
}

func (s *reportService) loadTransactions(ctx context.Context, filter dto.ReportFilter) ([]dto.ReportTransaction, error) {
	var transactions []dto.ReportTransaction

	if filter.Type != ReportTypeExpense {
		incomes, err := s.incomes.ListAll(ctx)
		if err != nil {
			s.reporter.Report(ctx, "incomes", audit.OpList, nil, err)
			return nil, errors.New("failed to load income history")
		}
		for i := range incomes {
			if inRange(incomes[i].Date, filter) {
				transactions = append(transactions, incomeTransaction(&incomes[i]))
			}
		}
	}

	if filter.Type != ReportTypeIncome {
		expenses, err := s.expenses.ListAll(ctx)
		if err != nil {
			s.reporter.Report(ctx, "expenses", audit.OpList, nil, err)
			return nil, errors.New("failed to load expense history")
		}
		for i := range expenses {
			if inRange(expenses[i].Date, filter) {
				transactions = append(transactions, expenseTransaction(&expenses[i]))
			}
		}
	}

	return transactions, nil
}

func validateFilter(filter dto.ReportFilter) error {
	for _, date := range []string{filter.From, filter.To} {
		if _, err := time.Parse(dateKeyLayout, date); err != nil {
			return errors.New("dates must be in YYYY-MM-DD format")
		}
	}
	if filter.From > filter.To {
		return errors.New("range start must not be after range end")
	}
	switch filter.Type {
	case ReportTypeAll, ReportTypeIncome, ReportTypeExpense:
		return nil
	default:
		return errors.New("type must be one of: all, income, expense")
	}
}

// inRange relies on YYYY-MM-DD keys ordering lexicographically; both range
// endpoints are inclusive.
func inRange(date string, filter dto.ReportFilter) bool {
	return date >= filter.From && date <= filter.To
}

func incomeTransaction(income *model.Income) dto.ReportTransaction {
	return dto.ReportTransaction{
		ID:        income.ID.String(),
		Type:      ReportTypeIncome,
		Date:      income.Date,
		Amount:    income.TotalAmount,
		Details:   fmt.Sprintf("%s — %s", income.StudentName, feeBreakdown(income.Fees.Data())),
		Timestamp: income.CreatedAt.Format(time.RFC3339),
	}
}

func expenseTransaction(expense *model.Expense) dto.ReportTransaction {
	return dto.ReportTransaction{
		ID:          expense.ID.String(),
		Type:        ReportTypeExpense,
		Date:        expense.Date,
		Amount:      expense.Amount,
		Details:     fmt.Sprintf("%s (%s)", expense.PayTo, expense.Category),
		PaymentMode: expense.PaymentMode,
		Timestamp:   expense.CreatedAt.Format(time.RFC3339),
	}
}

// feeBreakdown renders "Tuition: 300, Exam: 100" in a stable kind order.
func feeBreakdown(fees model.FeeDetails) string {
	parts := make([]string, 0, 4)
	add := func(kind string, amount *decimal.Decimal) {
		if amount != nil {
			parts = append(parts, fmt.Sprintf("%s: %s", kind, amount.StringFixed(2)))
		}
	}
	add(model.FeeTuition, fees.Tuition)
	add(model.FeeExam, fees.Exam)
	add(model.FeeFine, fees.Fine)
	add(model.FeeAdmission, fees.Admission)
	return strings.Join(parts, ", ")
}
