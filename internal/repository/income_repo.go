package repository

import (
	"context"

	"schoolcash/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncomeRepository interface {
	Create(ctx context.Context, income *model.Income) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Income, error)
	ListByDate(ctx context.Context, date string) ([]model.Income, error)
	// ListAll returns the full history, newest first — report aggregation input
	ListAll(ctx context.Context) ([]model.Income, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type incomeRepo struct{ db *gorm.DB }

func NewIncomeRepository(db *gorm.DB) IncomeRepository { return &incomeRepo{db: db} }

func (r *incomeRepo) Create(ctx context.Context, income *model.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *incomeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Income, error) {
	var income model.Income
	err := r.db.WithContext(ctx).First(&income, "id = ?", id).Error
	return &income, err
}

func (r *incomeRepo) ListByDate(ctx context.Context, date string) ([]model.Income, error) {
	var incomes []model.Income
	err := r.db.WithContext(ctx).Where("date = ?", date).Order("created_at DESC").Find(&incomes).Error
	return incomes, err
}

func (r *incomeRepo) ListAll(ctx context.Context) ([]model.Income, error) {
	var incomes []model.Income
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&incomes).Error
	return incomes, err
}

func (r *incomeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Income{}, "id = ?", id).Error
}
