package services

import (
	"time"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/mocks"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type orderDeps struct {
	repo      *mocks.MockOrderRepository
	catalog   *mocks.MockCatalogRepository
	gateway   *mocks.MockPaymentGateway
	publisher *mocks.MockPublisher
	scheduler *mocks.ManualScheduler
}

func newOrderDeps() *orderDeps {
	return &orderDeps{
		repo:      new(mocks.MockOrderRepository),
		catalog:   new(mocks.MockCatalogRepository),
		gateway:   new(mocks.MockPaymentGateway),
		publisher: new(mocks.MockPublisher),
		scheduler: new(mocks.ManualScheduler),
	}
}

func (d *orderDeps) service() *OrderService {
	s := NewOrderService(d.repo, d.catalog, d.gateway, d.publisher, d.scheduler)
	s.SetClock(func() time.Time { return fixedNow })
	return s
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:          "cust-1",
		FirstName:   "Budi",
		LastName:    "Santoso",
		Email:       "budi@example.com",
		PhoneNumber: "08123456789",
		IsMember:    true,
	}
}

func testComputer(status domain.ComputerStatus) *domain.Computer {
	return &domain.Computer{
		ID:     "pc-1",
		Name:   "Station 7",
		Code:   "VIP-07",
		Status: status,
		TypeID: "type-vip",
		Type:   domain.ComputerType{ID: "type-vip", Category: domain.CategoryVIP},
	}
}

func testPrice() *domain.TypePrice {
	return &domain.TypePrice{
		ID:       "price-1",
		TypeID:   "type-vip",
		Price:    decimal.NewFromInt(15000),
		IsActive: true,
	}
}

func testOrder(status domain.OrderStatus) *domain.Order {
	o := domain.NewOrder(
		domain.NewCustomerSnapshot(*testCustomer()),
		domain.NewComputerSnapshot(*testComputer(domain.ComputerAvailable)),
		domain.NewPriceSnapshot(*testPrice()),
		"cust-1", "pc-1", 2, fixedNow.Add(time.Hour), fixedNow,
	)
	o.ID = "order-1"
	o.Status = status
	return o
}

func customerIdentity() domain.Identity {
	return domain.Identity{UserID: "cust-1", Email: "budi@example.com", Role: domain.RoleCustomer}
}

func adminIdentity() domain.Identity {
	return domain.Identity{UserID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
}
