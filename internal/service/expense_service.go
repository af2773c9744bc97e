package service

import (
	"context"
	"errors"
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/dto"
	"schoolcash/internal/event"
	"schoolcash/internal/model"
	"schoolcash/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	ListByDate(ctx context.Context, date string) ([]dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseService struct {
	repo     repository.ExpenseRepository
	bus      *event.Bus
	reporter *audit.Reporter
	loc      *time.Location
	now      func() time.Time
}

func NewExpenseService(repo repository.ExpenseRepository, bus *event.Bus, reporter *audit.Reporter, loc *time.Location) ExpenseService {
	return &expenseService{repo: repo, bus: bus, reporter: reporter, loc: loc, now: time.Now}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense := &model.Expense{
		Category:    req.Category,
		PayTo:       req.PayTo,
		VoucherNo:   req.VoucherNo,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		Date:        s.now().In(s.loc).Format(dateKeyLayout),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		s.reporter.Report(ctx, "expenses", audit.OpCreate, req, err)
		return nil, errors.New("failed to record expense")
	}

	s.bus.Publish(ctx, event.TransactionEvent{Type: event.ExpenseCreated, Date: expense.Date})

	resp := toExpenseResponse(expense)
	return &resp, nil
}

func (s *expenseService) ListByDate(ctx context.Context, date string) ([]dto.ExpenseResponse, error) {
	if date == "" {
		date = s.now().In(s.loc).Format(dateKeyLayout)
	}
	expenses, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		s.reporter.Report(ctx, "expenses", audit.OpList, nil, err)
		return nil, errors.New("failed to load expenses")
	}
	resp := make([]dto.ExpenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = toExpenseResponse(&expenses[i])
	}
	return resp, nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("expense record not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.reporter.Report(ctx, "expenses/"+id.String(), audit.OpDelete, nil, err)
		return errors.New("failed to delete expense record")
	}
	s.bus.Publish(ctx, event.TransactionEvent{Type: event.ExpenseDeleted, Date: expense.Date})
	return nil
}

func toExpenseResponse(expense *model.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          expense.ID.String(),
		Category:    expense.Category,
		PayTo:       expense.PayTo,
		VoucherNo:   expense.VoucherNo,
		Amount:      expense.Amount,
		PaymentMode: expense.PaymentMode,
		Date:        expense.Date,
		Description: expense.Description,
		Timestamp:   expense.CreatedAt.Format(time.RFC3339),
	}
}
