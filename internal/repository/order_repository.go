package repository

import (
	"context"
	"time"

	"icafe-booking/internal/domain"
)

// OrderRepository finders return (nil, nil) when the record does not exist.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]domain.Order, error)
	FindPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
	// TransitionStatus moves the order to `to` only while it is still in
	// `from`. It reports whether a row changed.
	TransitionStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
	// SettleOrder moves a PENDING order to SUCCESS and marks its computer
	// ORDERED in one transaction. Nothing is written unless both succeed.
	SettleOrder(ctx context.Context, id, computerID string) (bool, error)
}
