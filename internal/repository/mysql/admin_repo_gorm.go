package mysql

import (
	"context"
	"errors"
	"fmt"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/repository"

	"gorm.io/gorm"
)

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Update(ctx context.Context, admin *domain.Admin) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Admin{}).
		Where("id = ?", admin.ID).
		Updates(map[string]any{
			"full_name":    admin.FullName,
			"phone_number": admin.PhoneNumber,
		}).Error
	if err != nil {
		return fmt.Errorf("update admin %s: %w", admin.ID, err)
	}
	return nil
}

func (r *adminRepo) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *adminRepo) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *adminRepo) FindByPhoneNumber(ctx context.Context, phone string) (*domain.Admin, error) {
	return r.findOne(ctx, "phone_number = ?", phone)
}

func (r *adminRepo) findOne(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.db.WithContext(ctx).Where(query, arg).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &a, nil
}

func (r *adminRepo) DeleteAndDeactivate(ctx context.Context, admin *domain.Admin) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.UserCredential{}).
			Where("id = ?", admin.CredentialID).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate credential: %w", err)
		}
		if err := tx.Delete(&domain.Admin{}, "id = ?", admin.ID).Error; err != nil {
			return fmt.Errorf("delete admin %s: %w", admin.ID, err)
		}
		return nil
	})
}
