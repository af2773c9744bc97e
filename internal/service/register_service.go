package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/dto"
	"schoolcash/internal/event"
	"schoolcash/internal/model"
	"schoolcash/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateKeyLayout = "2006-01-02"

// RegisterService is the daily cash-register reconciliation engine. It owns
// the DailyRegister document for "today": it seeds the opening balance from
// the previous day's closing balance, folds the live stream of today's
// income/expense events into running totals, and writes the derived fields
// back whenever the system balance changes.
//
// It is the sole writer of DailyRegister aggregate fields. All recomputation
// goes through one mutex, so concurrent transaction events serialize here
// instead of racing at the storage layer.
type RegisterService interface {
	// Start performs the initial bootstrap. Called once when the storage
	// connection becomes available.
	Start(ctx context.Context)
	// HandleTransactionEvent is the bus subscription entry point.
	HandleTransactionEvent(ctx context.Context, evt event.TransactionEvent)
	// Snapshot returns the engine's public contract: register (nil while
	// loading), today's record sets, derived totals, loading flag.
	Snapshot(ctx context.Context) dto.RegisterSnapshot
	// SubscribeSnapshots registers a listener that receives a snapshot after
	// every recomputation. Returns the subscription id and the channel.
	SubscribeSnapshots(buffer int) (string, <-chan dto.RegisterSnapshot)
	UnsubscribeSnapshots(id string)
}

type registerService struct {
	registers repository.RegisterRepository
	incomes   repository.IncomeRepository
	expenses  repository.ExpenseRepository
	reporter  *audit.Reporter
	loc       *time.Location
	now       func() time.Time

	mu            sync.Mutex
	current       *model.DailyRegister
	todayIncomes  []model.Income
	todayExpenses []model.Expense
	totalIncome   decimal.Decimal
	totalExpense  decimal.Decimal
	systemBalance decimal.Decimal

	subMu       sync.RWMutex
	subscribers map[string]chan dto.RegisterSnapshot
}

func NewRegisterService(
	registers repository.RegisterRepository,
	incomes repository.IncomeRepository,
	expenses repository.ExpenseRepository,
	reporter *audit.Reporter,
	loc *time.Location,
) RegisterService {
	return &registerService{
		registers:   registers,
		incomes:     incomes,
		expenses:    expenses,
		reporter:    reporter,
		loc:         loc,
		now:         time.Now,
		subscribers: make(map[string]chan dto.RegisterSnapshot),
	}
}

func (s *registerService) Start(ctx context.Context) {
	s.mu.Lock()
	s.ensureTodayLocked(ctx)
	s.recomputeLocked(ctx)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.broadcast(snapshot)

	if snapshot.Register != nil {
		log.Info().
			Str("date", snapshot.Register.ID).
			Str("opening_balance", snapshot.Register.OpeningBalance.String()).
			Msg("daily register ready")
	}
}

func (s *registerService) HandleTransactionEvent(ctx context.Context, evt event.TransactionEvent) {
	todayKey := s.dateKey(s.now())
	s.mu.Lock()
	rolledOver := s.current == nil || s.current.ID != todayKey
	if evt.Date != todayKey && !rolledOver {
		// Not today's ledger; reports recompute their own aggregates.
		s.mu.Unlock()
		return
	}
	s.ensureTodayLocked(ctx)
	s.recomputeLocked(ctx)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.broadcast(snapshot)
}

func (s *registerService) Snapshot(ctx context.Context) dto.RegisterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureTodayLocked(ctx)
	s.recomputeLocked(ctx)
	return s.snapshotLocked()
}

// ── Bootstrap ─────────────────────────────────────────────────────────────────

// ensureTodayLocked guarantees s.current points at today's register, creating
// it with yesterday's closing balance when absent. On any read failure the
// register stays unset: a loading state is honest, a fabricated zero balance
// is not. Caller holds s.mu.
func (s *registerService) ensureTodayLocked(ctx context.Context) {
	todayKey := s.dateKey(s.now())
	if s.current != nil && s.current.ID == todayKey {
		return
	}

	// First bootstrap, a previous failed attempt, or the date rolled over.
	s.current = nil
	s.todayIncomes = nil
	s.todayExpenses = nil

	register, err := s.registers.FindByDate(ctx, todayKey)
	switch {
	case err == nil:
		// Adopt as-is: the persisted opening balance is authoritative and is
		// never recomputed.
		s.current = register
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.reporter.Report(ctx, "daily_registers/"+todayKey, audit.OpGet, nil, err)
		return
	}

	opening := decimal.Zero
	yesterdayKey := s.dateKey(s.now().AddDate(0, 0, -1))
	prev, err := s.registers.FindByDate(ctx, yesterdayKey)
	switch {
	case err == nil:
		opening = prev.SystemBalance
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No predecessor — a normal case, the drawer starts empty.
	default:
		s.reporter.Report(ctx, "daily_registers/"+yesterdayKey, audit.OpGet, nil, err)
		return
	}

	register = &model.DailyRegister{
		ID:             todayKey,
		Date:           s.now().In(s.loc),
		OpeningBalance: opening,
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		SystemBalance:  opening,
	}

	err = s.registers.Create(ctx, register)
	switch {
	case err == nil:
		s.current = register
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// Lost the create race to a concurrent bootstrap. The primary key
		// keeps exactly one register per date; adopt the winner's row so both
		// sides converge on the same opening balance.
		winner, readErr := s.registers.FindByDate(ctx, todayKey)
		if readErr != nil {
			s.reporter.Report(ctx, "daily_registers/"+todayKey, audit.OpGet, nil, readErr)
			return
		}
		s.current = winner
	default:
		s.reporter.Report(ctx, "daily_registers/"+todayKey, audit.OpCreate, register, err)
		// Stay unset; the next transaction event or snapshot retries the
		// bootstrap.
	}
}

// ── Live aggregation ──────────────────────────────────────────────────────────

// recomputeLocked reloads today's record sets, folds them into totals, and
// writes the derived fields back iff the system balance changed. The fold is
// pure; the conditional UpdateTotals call is the only side effect. On list
// failures the last known record sets are retained — transient stream errors
// must not reset the dashboard to zero. Caller holds s.mu.
func (s *registerService) recomputeLocked(ctx context.Context) {
	if s.current == nil {
		return
	}
	todayKey := s.current.ID

	incomes, err := s.incomes.ListByDate(ctx, todayKey)
	if err != nil {
		s.reporter.Report(ctx, "incomes", audit.OpList, nil, err)
	} else {
		s.todayIncomes = incomes
	}

	expenses, err := s.expenses.ListByDate(ctx, todayKey)
	if err != nil {
		s.reporter.Report(ctx, "expenses", audit.OpList, nil, err)
	} else {
		s.todayExpenses = expenses
	}

	s.totalIncome = sumIncome(s.todayIncomes)
	s.totalExpense = sumCashExpense(s.todayExpenses)
	s.systemBalance = s.current.OpeningBalance.Add(s.totalIncome).Sub(s.totalExpense)

	// Change detection is the sole guard against redundant writes: identical
	// recomputations must not touch storage.
	if s.systemBalance.Equal(s.current.SystemBalance) {
		return
	}

	err = s.registers.UpdateTotals(ctx, todayKey, s.totalIncome, s.totalExpense, s.systemBalance)
	if err != nil {
		// No retry and no rollback: the in-memory aggregates remain the
		// presented values, and the next recomputation's write supersedes
		// this one.
		s.reporter.Report(ctx, "daily_registers/"+todayKey, audit.OpUpdate, map[string]string{
			"total_income":   s.totalIncome.String(),
			"total_expense":  s.totalExpense.String(),
			"system_balance": s.systemBalance.String(),
		}, err)
		return
	}
	s.current.TotalIncome = s.totalIncome
	s.current.TotalExpense = s.totalExpense
	s.current.SystemBalance = s.systemBalance
}

// sumIncome folds income records into a total. The zero value of a decimal
// is 0, so records persisted without an amount contribute nothing rather
// than failing the fold.
func sumIncome(incomes []model.Income) decimal.Decimal {
	total := decimal.Zero
	for _, income := range incomes {
		total = total.Add(income.TotalAmount)
	}
	return total
}

// sumCashExpense folds Cash-mode expenses only. Bank payments reduce
// accounting spend but never the physical drawer.
func sumCashExpense(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		if expense.PaymentMode == model.PaymentModeCash {
			total = total.Add(expense.Amount)
		}
	}
	return total
}

// ── Snapshot / fan-out ────────────────────────────────────────────────────────

func (s *registerService) snapshotLocked() dto.RegisterSnapshot {
	snapshot := dto.RegisterSnapshot{
		Incomes:       make([]dto.IncomeResponse, 0, len(s.todayIncomes)),
		Expenses:      make([]dto.ExpenseResponse, 0, len(s.todayExpenses)),
		TotalIncome:   s.totalIncome,
		TotalExpense:  s.totalExpense,
		SystemBalance: s.systemBalance,
		IsLoading:     s.current == nil,
	}
	if s.current == nil {
		return snapshot
	}

	snapshot.Register = &dto.RegisterResponse{
		ID:             s.current.ID,
		Date:           s.current.Date.Format(time.RFC3339),
		OpeningBalance: s.current.OpeningBalance,
		TotalIncome:    s.totalIncome,
		TotalExpense:   s.totalExpense,
		SystemBalance:  s.systemBalance,
	}
	for _, income := range s.todayIncomes {
		snapshot.Incomes = append(snapshot.Incomes, toIncomeResponse(&income))
	}
	for _, expense := range s.todayExpenses {
		snapshot.Expenses = append(snapshot.Expenses, toExpenseResponse(&expense))
	}
	return snapshot
}

func (s *registerService) SubscribeSnapshots(buffer int) (string, <-chan dto.RegisterSnapshot) {
	id := uuid.New().String()
	ch := make(chan dto.RegisterSnapshot, buffer)
	s.subMu.Lock()
	s.subscribers[id] = ch
	s.subMu.Unlock()
	return id, ch
}

func (s *registerService) UnsubscribeSnapshots(id string) {
	s.subMu.Lock()
	if ch, ok := s.subscribers[id]; ok {
		delete(s.subscribers, id)
		close(ch)
	}
	s.subMu.Unlock()
}

func (s *registerService) broadcast(snapshot dto.RegisterSnapshot) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for id, ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Slow consumer: drop rather than block the write path.
			log.Warn().Str("subscriber_id", id).Msg("snapshot subscriber channel full, dropping")
		}
	}
}

func (s *registerService) dateKey(t time.Time) string {
	return t.In(s.loc).Format(dateKeyLayout)
}
