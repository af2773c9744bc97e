package repository

import (
	"context"

	"schoolcash/internal/model"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Add(ctx context.Context, admin *model.Admin) error
	Remove(ctx context.Context, email string) error
	List(ctx context.Context) ([]model.Admin, error)
	Exists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type adminRepo struct{ db *gorm.DB }

func NewAdminRepository(db *gorm.DB) AdminRepository { return &adminRepo{db: db} }

func (r *adminRepo) Add(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepo) Remove(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&model.Admin{}, "email = ?", email).Error
}

func (r *adminRepo) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&admins).Error
	return admins, err
}

func (r *adminRepo) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Admin{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *adminRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Admin{}).Count(&count).Error
	return count, err
}
