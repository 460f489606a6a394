package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/infra"
	"icafe-booking/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultOrderExpiry = 2 * time.Minute

	keyCustomerOrders = "orders:customer:"
	keyAllOrders      = "orders:all"
)

type CreateOrderRequest struct {
	CustomerID  string
	ComputerID  string
	Duration    int
	BookingDate time.Time
}

type OrderService struct {
	repo      repository.OrderRepository
	catalog   repository.CatalogRepository
	gateway   infra.PaymentGateway
	publisher infra.Publisher
	scheduler Scheduler

	cache    infra.Cache
	cacheTTL time.Duration

	expiry time.Duration
	now    func() time.Time
}

func NewOrderService(r repository.OrderRepository, c repository.CatalogRepository, g infra.PaymentGateway,
	pub infra.Publisher, s Scheduler) *OrderService {
	if pub == nil {
		pub = infra.NoopPublisher{}
	}
	return &OrderService{
		repo:      r,
		catalog:   c,
		gateway:   g,
		publisher: pub,
		scheduler: s,
		expiry:    DefaultOrderExpiry,
		now:       time.Now,
	}
}

func (u *OrderService) SetCache(c infra.Cache, ttl time.Duration) {
	u.cache = c
	u.cacheTTL = ttl
}

func (u *OrderService) SetExpiry(d time.Duration) {
	if d > 0 {
		u.expiry = d
	}
}

func (u *OrderService) SetClock(now func() time.Time) {
	u.now = now
}

func (u *OrderService) Expiry() time.Duration { return u.expiry }

// CreateOrder books a computer for the caller and opens a payment transaction.
// The order stays PENDING until the gateway reports a final state or the
// expiry check fails it.
func (u *OrderService) CreateOrder(ctx context.Context, caller domain.Identity, req CreateOrderRequest) (*infra.PaymentResponse, error) {
	if caller.UserID != req.CustomerID {
		return nil, fmt.Errorf("%w: you are not allowed here", ErrForbidden)
	}

	now := u.now()
	if req.BookingDate.Before(now) || req.Duration < 0 {
		return nil, fmt.Errorf("%w: invalid booking date or duration", ErrBadRequest)
	}

	var (
		customer *domain.Customer
		computer *domain.Computer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := u.catalog.FindCustomerByID(gctx, req.CustomerID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCustomerNotFound
		}
		customer = c
		return nil
	})
	g.Go(func() error {
		c, err := u.catalog.FindComputerByID(gctx, req.ComputerID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrComputerNotFound
		}
		computer = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if computer.Status == domain.ComputerUsed {
		return nil, fmt.Errorf("%w: computer is already in use", ErrBadRequest)
	}

	price, err := u.catalog.FindActivePriceByTypeID(ctx, computer.TypeID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, ErrPriceNotFound
	}

	order := domain.NewOrder(
		domain.NewCustomerSnapshot(*customer),
		domain.NewComputerSnapshot(*computer),
		domain.NewPriceSnapshot(*price),
		customer.ID, computer.ID, req.Duration, req.BookingDate, now,
	)

	if err := u.repo.Save(ctx, order); err != nil {
		return nil, err
	}
	slog.Info("order created", "order_id", order.ID, "customer_id", order.CustomerID,
		"computer_id", order.ComputerID, "total", order.TotalPrice().StringFixed(2))

	orderID := order.ID
	u.scheduler.Schedule(u.expiry, func() { u.expireOrder(orderID) })

	u.invalidate(ctx, order.CustomerID)
	u.publish(ctx, domain.EventOrderCreated, order)

	payment, err := u.gateway.RequestTransaction(ctx, transactionRequest(order))
	if err != nil {
		return nil, fmt.Errorf("request payment for order %s: %w", order.ID, err)
	}
	return payment, nil
}

func transactionRequest(o *domain.Order) infra.TransactionRequest {
	unit := o.Price.Price.Round(0).IntPart()
	return infra.TransactionRequest{
		TransactionDetails: infra.TransactionDetails{
			OrderID:     o.ID,
			GrossAmount: unit * int64(o.Duration),
		},
		ItemDetails: []infra.ItemDetail{{
			ID:       o.ComputerID,
			Name:     fmt.Sprintf("%s (%s)", o.Computer.Name, o.Computer.Code),
			Price:    unit,
			Quantity: o.Duration,
			Category: string(o.Computer.Category),
		}},
		CustomerDetails: infra.CustomerDetails{
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Email:     o.Customer.Email,
			Phone:     o.Customer.PhoneNumber,
		},
	}
}

// gatewayTarget maps a gateway transaction status to the order status it
// settles into. ok is false for statuses that leave the order untouched.
func gatewayTarget(transactionStatus string) (domain.OrderStatus, bool) {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return domain.StatusSuccess, true
	case "expire", "cancel":
		return domain.StatusFailed, true
	default:
		return "", false
	}
}

// UpdateStatus reconciles the order with the gateway and returns the raw
// gateway payload.
func (u *OrderService) UpdateStatus(ctx context.Context, orderID string) (json.RawMessage, error) {
	order, err := u.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	ts, err := u.gateway.GetTransactionStatus(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("transaction status of order %s: %w", order.ID, err)
	}

	target, ok := gatewayTarget(ts.TransactionStatus)
	if !ok {
		slog.Info("gateway status leaves order unchanged", "order_id", order.ID,
			"transaction_status", ts.TransactionStatus, "status", order.Status)
		return ts.Raw, nil
	}

	changed, err := u.transition(ctx, order, target)
	if err != nil {
		return nil, err
	}
	if !changed && order.Status.IsTerminal() && order.Status != target {
		slog.Warn("order already settled, gateway status ignored", "order_id", order.ID,
			"status", order.Status, "transaction_status", ts.TransactionStatus)
	}
	return ts.Raw, nil
}

// transition moves a PENDING order to target. It is a no-op when the order has
// already left PENDING. Settling writes the order and its computer together.
func (u *OrderService) transition(ctx context.Context, order *domain.Order, target domain.OrderStatus) (bool, error) {
	var (
		changed bool
		err     error
	)
	if target == domain.StatusSuccess {
		changed, err = u.repo.SettleOrder(ctx, order.ID, order.ComputerID)
	} else {
		changed, err = u.repo.TransitionStatus(ctx, order.ID, domain.StatusPending, target)
	}
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	order.Status = target

	slog.Info("order status changed", "order_id", order.ID, "status", target)
	u.invalidate(ctx, order.CustomerID)
	if target == domain.StatusSuccess {
		u.publish(ctx, domain.EventOrderSettled, order)
	} else {
		u.publish(ctx, domain.EventOrderFailed, order)
	}
	return true, nil
}

func (u *OrderService) expireOrder(orderID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := u.repo.FindByID(ctx, orderID)
	if err != nil {
		slog.Error("expiry check failed", "order_id", orderID, "error", err)
		return
	}
	if order == nil || order.Status != domain.StatusPending {
		return
	}
	if _, err := u.transition(ctx, order, domain.StatusFailed); err != nil {
		slog.Error("expire order failed", "order_id", orderID, "error", err)
	}
}

// ExpireStale fails every PENDING order created before cutoff and returns how
// many it changed. A failing order does not stop the sweep; its error is
// joined into the result.
func (u *OrderService) ExpireStale(ctx context.Context, cutoff time.Time) (int, error) {
	orders, err := u.repo.FindPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var (
		n    int
		errs []error
	)
	for i := range orders {
		changed, err := u.transition(ctx, &orders[i], domain.StatusFailed)
		if err != nil {
			slog.Error("expire stale order failed", "order_id", orders[i].ID, "error", err)
			errs = append(errs, err)
			continue
		}
		if changed {
			n++
		}
	}
	return n, errors.Join(errs...)
}

func (u *OrderService) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// GetOrder returns one order; customers may only read their own.
func (u *OrderService) GetOrder(ctx context.Context, caller domain.Identity, id string) (*OrderResponse, error) {
	o, err := u.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && o.CustomerID != caller.UserID {
		return nil, fmt.Errorf("%w: you are not allowed to access this resource", ErrForbidden)
	}
	resp := NewOrderResponse(o)
	return &resp, nil
}

// GetAll lists every order when caller is nil, otherwise the caller's orders.
func (u *OrderService) GetAll(ctx context.Context, caller *domain.Identity) ([]OrderResponse, error) {
	key := keyAllOrders
	if caller != nil {
		key = keyCustomerOrders + caller.UserID
	}

	if cached, ok := u.cached(ctx, key); ok {
		return cached, nil
	}

	var (
		orders []domain.Order
		err    error
	)
	if caller == nil {
		orders, err = u.repo.FindAll(ctx)
	} else {
		orders, err = u.repo.FindByCustomerID(ctx, caller.UserID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}

	u.store(ctx, key, out)
	return out, nil
}

func (u *OrderService) cached(ctx context.Context, key string) ([]OrderResponse, bool) {
	if u.cache == nil {
		return nil, false
	}
	b, err := u.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, infra.ErrCacheMiss) {
			slog.Warn("order cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var out []OrderResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (u *OrderService) store(ctx context.Context, key string, v []OrderResponse) {
	if u.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := u.cache.Set(ctx, key, data, u.cacheTTL); err != nil {
		slog.Warn("order cache write failed", "key", key, "error", err)
	}
}

func (u *OrderService) invalidate(ctx context.Context, customerID string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Del(ctx, keyCustomerOrders+customerID, keyAllOrders); err != nil {
		slog.Warn("order cache invalidation failed", "customer_id", customerID, "error", err)
	}
}

func (u *OrderService) publish(ctx context.Context, event string, order *domain.Order) {
	evt := domain.NewOrderEvent(order, u.now())
	if err := u.publisher.Publish(ctx, event, evt); err != nil {
		slog.Error("failed to publish event", "event", event, "order_id", order.ID, "error", err)
	}
}
