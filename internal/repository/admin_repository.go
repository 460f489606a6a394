package repository

import (
	"context"

	"icafe-booking/internal/domain"
)

type AdminRepository interface {
	Update(ctx context.Context, admin *domain.Admin) error
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByPhoneNumber(ctx context.Context, phone string) (*domain.Admin, error)
	// DeleteAndDeactivate removes the admin and disables its credential atomically.
	DeleteAndDeactivate(ctx context.Context, admin *domain.Admin) error
}
