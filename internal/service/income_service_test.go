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

func newTestIncomeService(repo *stubIncomeRepo, bus *event.Bus) IncomeService {
	return &incomeService{
		repo:     repo,
		bus:      bus,
		reporter: audit.NewReporter(nil),
		loc:      time.UTC,
		now:      func() time.Time { return testNow },
	}
}

func collectEvents(bus *event.Bus) *[]event.TransactionEvent {
	var events []event.TransactionEvent
	bus.Subscribe(func(_ context.Context, evt event.TransactionEvent) {
		events = append(events, evt)
	})
	return &events
}

func TestCreateIncomeStampsDateAndCollector(t *testing.T) {
	repo := &stubIncomeRepo{}
	bus := event.NewBus()
	svc := newTestIncomeService(repo, bus)
	collector := uuid.New()

	resp, err := svc.Create(context.Background(), collector, dto.CreateIncomeRequest{
		StudentID:   "S-42",
		StudentName: "Rahim",
		Class:       "Seven",
		Section:     model.SectionHigh,
		Fees:        model.FeeDetails{Tuition: decimalPtr("300"), Exam: decimalPtr("100")},
		TotalAmount: mustDecimal("400"),
	})

	require.NoError(t, err)
	assert.Equal(t, todayKey, resp.Date, "the server stamps the date, never the client")
	assert.Equal(t, collector.String(), resp.CollectedBy)
	assert.True(t, resp.TotalAmount.Equal(mustDecimal("400")))
}

func TestCreateIncomePublishesEvent(t *testing.T) {
	repo := &stubIncomeRepo{}
	bus := event.NewBus()
	events := collectEvents(bus)
	svc := newTestIncomeService(repo, bus)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateIncomeRequest{
		StudentID:   "S-1",
		StudentName: "Karim",
		Class:       "Three",
		Section:     model.SectionPrimary,
		Fees:        model.FeeDetails{Fine: decimalPtr("25")},
		TotalAmount: mustDecimal("25"),
	})

	require.NoError(t, err)
	require.Len(t, *events, 1)
	assert.Equal(t, event.IncomeCreated, (*events)[0].Type)
	assert.Equal(t, todayKey, (*events)[0].Date)
}

func TestCreateIncomeRejectsTotalMismatch(t *testing.T) {
	svc := newTestIncomeService(&stubIncomeRepo{}, event.NewBus())

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateIncomeRequest{
		StudentID:   "S-1",
		StudentName: "Karim",
		Class:       "Three",
		Section:     model.SectionPrimary,
		Fees:        model.FeeDetails{Tuition: decimalPtr("300")},
		TotalAmount: mustDecimal("999"),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestCreateIncomeRejectsEmptyBreakdown(t *testing.T) {
	svc := newTestIncomeService(&stubIncomeRepo{}, event.NewBus())

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateIncomeRequest{
		StudentID:   "S-1",
		StudentName: "Karim",
		Class:       "Three",
		Section:     model.SectionPrimary,
		Fees:        model.FeeDetails{},
		TotalAmount: mustDecimal("0"),
	})

	require.Error(t, err)
}

func TestCreateIncomeRejectsNonPositiveFee(t *testing.T) {
	svc := newTestIncomeService(&stubIncomeRepo{}, event.NewBus())

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateIncomeRequest{
		StudentID:   "S-1",
		StudentName: "Karim",
		Class:       "Three",
		Section:     model.SectionPrimary,
		Fees:        model.FeeDetails{Tuition: decimalPtr("-5")},
		TotalAmount: mustDecimal("-5"),
	})

	require.Error(t, err)
}

func TestListIncomesDefaultsToToday(t *testing.T) {
	repo := &stubIncomeRepo{}
	seedIncome(repo, todayKey, "100")
	seedIncome(repo, yesterdayKey, "9000")
	svc := newTestIncomeService(repo, event.NewBus())

	list, err := svc.ListByDate(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, todayKey, list[0].Date)
}

func TestDeleteIncomePublishesEventWithRecordDate(t *testing.T) {
	repo := &stubIncomeRepo{}
	seedIncome(repo, yesterdayKey, "100")
	bus := event.NewBus()
	events := collectEvents(bus)
	svc := newTestIncomeService(repo, bus)

	err := svc.Delete(context.Background(), repo.records[0].ID)

	require.NoError(t, err)
	require.Len(t, *events, 1)
	assert.Equal(t, event.IncomeDeleted, (*events)[0].Type)
	assert.Equal(t, yesterdayKey, (*events)[0].Date, "the event carries the record's day, not today")
	assert.Empty(t, repo.records)
}

func TestDeleteMissingIncomeFails(t *testing.T) {
	svc := newTestIncomeService(&stubIncomeRepo{}, event.NewBus())

	err := svc.Delete(context.Background(), uuid.New())

	require.Error(t, err)
}
