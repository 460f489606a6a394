package mysql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	result := r.db.WithContext(ctx).Create(order)
	if result.Error != nil {
		slog.Error("order save failed", "order_id", order.ID, "error", result.Error)
		return fmt.Errorf("save order: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("save order %s: %d rows affected", order.ID, result.RowsAffected)
	}

	slog.Debug("order saved", "order_id", order.ID)
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return &o, nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Order("transaction_date DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	return out, nil
}

func (r *orderRepo) FindByCustomerID(ctx context.Context, customerID string) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("transaction_date DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find orders of customer %s: %w", customerID, err)
	}
	return out, nil
}

func (r *orderRepo) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).
		Where("order_status = ? AND transaction_date < ?", domain.StatusPending, cutoff).
		Order("transaction_date ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find stale pending orders: %w", err)
	}
	return out, nil
}

func (r *orderRepo) TransitionStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	return transition(r.db.WithContext(ctx), id, from, to)
}

func (r *orderRepo) SettleOrder(ctx context.Context, id, computerID string) (bool, error) {
	var settled bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changed, err := transition(tx, id, domain.StatusPending, domain.StatusSuccess)
		if err != nil || !changed {
			return err
		}

		if err := tx.Model(&domain.Computer{}).
			Where("id = ?", computerID).
			Update("status", domain.ComputerOrdered).Error; err != nil {
			return fmt.Errorf("mark computer %s ordered: %w", computerID, err)
		}
		settled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return settled, nil
}

// transition is a conditional update; a row already past `from` is untouched.
func transition(db *gorm.DB, id string, from, to domain.OrderStatus) (bool, error) {
	result := db.Model(&domain.Order{}).
		Where("id = ? AND order_status = ?", id, from).
		Update("order_status", to)
	if result.Error != nil {
		return false, fmt.Errorf("transition order %s %s->%s: %w", id, from, to, result.Error)
	}
	return result.RowsAffected == 1, nil
}
