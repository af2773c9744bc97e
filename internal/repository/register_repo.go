package repository

import (
	"context"

	"schoolcash/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterRepository interface {
	FindByDate(ctx context.Context, date string) (*model.DailyRegister, error)
	// Create inserts a new register row. The date-string primary key gives
	// fail-if-exists semantics: a concurrent bootstrap loses with
	// gorm.ErrDuplicatedKey instead of silently overwriting the winner's
	// opening balance.
	Create(ctx context.Context, register *model.DailyRegister) error
	// UpdateTotals rewrites only the derived fields; OpeningBalance is
	// immutable after creation.
	UpdateTotals(ctx context.Context, date string, totalIncome, totalExpense, systemBalance decimal.Decimal) error
}

type registerRepo struct{ db *gorm.DB }

func NewRegisterRepository(db *gorm.DB) RegisterRepository { return &registerRepo{db: db} }

func (r *registerRepo) FindByDate(ctx context.Context, date string) (*model.DailyRegister, error) {
	var register model.DailyRegister
	err := r.db.WithContext(ctx).First(&register, "id = ?", date).Error
	if err != nil {
		return nil, err
	}
	return &register, nil
}

func (r *registerRepo) Create(ctx context.Context, register *model.DailyRegister) error {
	return r.db.WithContext(ctx).Create(register).Error
}

func (r *registerRepo) UpdateTotals(ctx context.Context, date string, totalIncome, totalExpense, systemBalance decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.DailyRegister{}).Where("id = ?", date).Updates(map[string]interface{}{
		"total_income":   totalIncome,
		"total_expense":  totalExpense,
		"system_balance": systemBalance,
	}).Error
}
