package service

import (
	"context"
	"errors"
	"time"

	"schoolcash/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs shared by the service tests.

type stubIncomeRepo struct {
	records []model.Income
	listErr error
}

func (r *stubIncomeRepo) Create(_ context.Context, income *model.Income) error {
	if income.ID == uuid.Nil {
		income.ID = uuid.New()
	}
	if income.CreatedAt.IsZero() {
		income.CreatedAt = time.Now()
	}
	r.records = append(r.records, *income)
	return nil
}

func (r *stubIncomeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Income, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubIncomeRepo) ListByDate(_ context.Context, date string) ([]model.Income, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.Income
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubIncomeRepo) ListAll(_ context.Context) ([]model.Income, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]model.Income(nil), r.records...), nil
}

func (r *stubIncomeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubExpenseRepo struct {
	records []model.Expense
	listErr error
}

func (r *stubExpenseRepo) Create(_ context.Context, expense *model.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	r.records = append(r.records, *expense)
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Expense, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubExpenseRepo) ListByDate(_ context.Context, date string) ([]model.Expense, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.Expense
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) ListAll(_ context.Context) ([]model.Expense, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]model.Expense(nil), r.records...), nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubRegisterRepo struct {
	rows map[string]model.DailyRegister
	// missFirst makes FindByDate report not-found for that many calls even
	// when the row exists, to stage lost create races.
	missFirst   int
	findErr     error
	createErr   error
	updateErr   error
	createCalls int
	updateCalls int
}

func newStubRegisterRepo() *stubRegisterRepo {
	return &stubRegisterRepo{rows: make(map[string]model.DailyRegister)}
}

func (r *stubRegisterRepo) FindByDate(_ context.Context, date string) (*model.DailyRegister, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.missFirst > 0 {
		r.missFirst--
		return nil, gorm.ErrRecordNotFound
	}
	row, ok := r.rows[date]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := row
	return &out, nil
}

func (r *stubRegisterRepo) Create(_ context.Context, register *model.DailyRegister) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.rows[register.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.rows[register.ID] = *register
	return nil
}

func (r *stubRegisterRepo) UpdateTotals(_ context.Context, date string, totalIncome, totalExpense, systemBalance decimal.Decimal) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	row, ok := r.rows[date]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.TotalIncome = totalIncome
	row.TotalExpense = totalExpense
	row.SystemBalance = systemBalance
	r.rows[date] = row
	return nil
}

type stubAdminRepo struct {
	admins    map[string]model.Admin
	existsErr error
	countErr  error
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]model.Admin)}
}

func (r *stubAdminRepo) Add(_ context.Context, admin *model.Admin) error {
	if _, exists := r.admins[admin.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	r.admins[admin.Email] = *admin
	return nil
}

func (r *stubAdminRepo) Remove(_ context.Context, email string) error {
	if _, exists := r.admins[email]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(r.admins, email)
	return nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]model.Admin, error) {
	out := make([]model.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAdminRepo) Exists(_ context.Context, email string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.admins[email]
	return ok, nil
}

func (r *stubAdminRepo) Count(_ context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.admins)), nil
}

var errStorage = errors.New("storage unavailable")

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decimalPtr(s string) *decimal.Decimal {
	d := mustDecimal(s)
	return &d
}
