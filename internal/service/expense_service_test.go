package service

import (
	"context"
	"testing"
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/dto"
	"schoolcash/internal/event"
	"schoolcash/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExpenseService(repo *stubExpenseRepo, bus *event.Bus) ExpenseService {
	return &expenseService{
		repo:     repo,
		bus:      bus,
		reporter: audit.NewReporter(nil),
		loc:      time.UTC,
		now:      func() time.Time { return testNow },
	}
}

func TestCreateExpenseStampsDate(t *testing.T) {
	repo := &stubExpenseRepo{}
	bus := event.NewBus()
	events := collectEvents(bus)
	svc := newTestExpenseService(repo, bus)

	resp, err := svc.Create(context.Background(), dto.CreateExpenseRequest{
		Category:    model.CategorySalary,
		PayTo:       "Head Teacher",
		VoucherNo:   "V-1001",
		Amount:      mustDecimal("15000"),
		PaymentMode: model.PaymentModeBank,
		Description: "March salary",
	})

	require.NoError(t, err)
	assert.Equal(t, todayKey, resp.Date)
	assert.Equal(t, model.PaymentModeBank, resp.PaymentMode)

	require.Len(t, *events, 1)
	assert.Equal(t, event.ExpenseCreated, (*events)[0].Type)
	assert.Equal(t, todayKey, (*events)[0].Date)
}

func TestDeleteExpensePublishesEventWithRecordDate(t *testing.T) {
	repo := &stubExpenseRepo{}
	seedExpense(repo, yesterdayKey, "300", model.PaymentModeCash)
	bus := event.NewBus()
	events := collectEvents(bus)
	svc := newTestExpenseService(repo, bus)

	err := svc.Delete(context.Background(), repo.records[0].ID)

	require.NoError(t, err)
	require.Len(t, *events, 1)
	assert.Equal(t, event.ExpenseDeleted, (*events)[0].Type)
	assert.Equal(t, yesterdayKey, (*events)[0].Date)
	assert.Empty(t, repo.records)
}

func TestDeleteMissingExpenseFails(t *testing.T) {
	svc := newTestExpenseService(&stubExpenseRepo{}, event.NewBus())

	err := svc.Delete(context.Background(), uuid.New())

	require.Error(t, err)
}

func TestListExpensesDefaultsToToday(t *testing.T) {
	repo := &stubExpenseRepo{}
	seedExpense(repo, todayKey, "100", model.PaymentModeCash)
	seedExpense(repo, yesterdayKey, "200", model.PaymentModeCash)
	svc := newTestExpenseService(repo, event.NewBus())

	list, err := svc.ListByDate(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, todayKey, list[0].Date)
}
