package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusSuccess OrderStatus = "SUCCESS"
	StatusFailed  OrderStatus = "FAILED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Order is a single computer rental. Snapshots are copied at creation time so
// later catalog changes never alter a historical order.
type Order struct {
	ID              string           `json:"id" gorm:"primaryKey;type:char(36)"`
	CustomerID      string           `json:"customerId" gorm:"type:char(36);not null;index"`
	ComputerID      string           `json:"computerId" gorm:"type:char(36);not null;index"`
	Customer        CustomerSnapshot `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Computer        ComputerSnapshot `json:"computer" gorm:"embedded;embeddedPrefix:computer_"`
	Price           PriceSnapshot    `json:"price" gorm:"embedded;embeddedPrefix:price_"`
	Duration        int              `json:"duration" gorm:"not null"`
	BookingStart    time.Time        `json:"bookingStart" gorm:"column:start_booking;not null"`
	BookingEnd      time.Time        `json:"bookingEnd" gorm:"column:end_booking;not null"`
	TransactionDate time.Time        `json:"transactionDate" gorm:"not null;index"`
	Status          OrderStatus      `json:"status" gorm:"column:order_status;type:enum('PENDING','SUCCESS','FAILED');default:'PENDING';index"`
}

func (Order) TableName() string { return "orders" }

// NewOrder builds a PENDING order. The end of the booking is always start plus
// duration hours.
func NewOrder(customer CustomerSnapshot, computer ComputerSnapshot, price PriceSnapshot,
	customerID, computerID string, duration int, start, now time.Time) *Order {
	return &Order{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		ComputerID:      computerID,
		Customer:        customer,
		Computer:        computer,
		Price:           price,
		Duration:        duration,
		BookingStart:    start,
		BookingEnd:      start.Add(time.Duration(duration) * time.Hour),
		TransactionDate: now,
		Status:          StatusPending,
	}
}

// TotalPrice is unit price times booked hours.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.Price.Price.Mul(decimal.NewFromInt(int64(o.Duration)))
}
