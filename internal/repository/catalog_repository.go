package repository

import (
	"context"

	"icafe-booking/internal/domain"
)

type CatalogRepository interface {
	FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	FindComputerByID(ctx context.Context, id string) (*domain.Computer, error)
	FindActivePriceByTypeID(ctx context.Context, typeID string) (*domain.TypePrice, error)
	ListComputers(ctx context.Context) ([]domain.Computer, error)
}
