package mysql

import (
	"context"
	"errors"
	"fmt"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/repository"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer %s: %w", id, err)
	}
	return &c, nil
}

func (r *catalogRepo) FindComputerByID(ctx context.Context, id string) (*domain.Computer, error) {
	var c domain.Computer
	if err := r.db.WithContext(ctx).Preload("Type").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find computer %s: %w", id, err)
	}
	return &c, nil
}

func (r *catalogRepo) FindActivePriceByTypeID(ctx context.Context, typeID string) (*domain.TypePrice, error) {
	var p domain.TypePrice
	if err := r.db.WithContext(ctx).
		Where("type_id = ? AND is_active = ?", typeID, true).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active price of type %s: %w", typeID, err)
	}
	return &p, nil
}

func (r *catalogRepo) ListComputers(ctx context.Context) ([]domain.Computer, error) {
	var out []domain.Computer
	if err := r.db.WithContext(ctx).Preload("Type").Order("code").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list computers: %w", err)
	}
	return out, nil
}
