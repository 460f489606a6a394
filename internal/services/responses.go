package services

import (
	"time"

	"icafe-booking/internal/domain"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	OrderID             string             `json:"orderId"`
	ComputerCode        string             `json:"computerCode"`
	ComputerName        string             `json:"computerName"`
	Type                domain.Category    `json:"type"`
	Duration            int                `json:"duration"`
	Price               decimal.Decimal    `json:"price"`
	Status              domain.OrderStatus `json:"status"`
	CustomerFirstName   string             `json:"customerFirstName"`
	CustomerLastName    string             `json:"customerLastName"`
	CustomerPhoneNumber string             `json:"customerPhoneNumber"`
	CustomerEmail       string             `json:"customerEmail"`
	StartBookingDate    time.Time          `json:"startBookingDate"`
	EndBookingDate      time.Time          `json:"endBookingDate"`
	TransactionDate     time.Time          `json:"transactionDate"`
}

// NewOrderResponse projects an order; Price is the total for the booking.
func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:             o.ID,
		ComputerCode:        o.Computer.Code,
		ComputerName:        o.Computer.Name,
		Type:                o.Computer.Category,
		Duration:            o.Duration,
		Price:               o.TotalPrice(),
		Status:              o.Status,
		CustomerFirstName:   o.Customer.FirstName,
		CustomerLastName:    o.Customer.LastName,
		CustomerPhoneNumber: o.Customer.PhoneNumber,
		CustomerEmail:       o.Customer.Email,
		StartBookingDate:    o.BookingStart,
		EndBookingDate:      o.BookingEnd,
		TransactionDate:     o.TransactionDate,
	}
}

type AdminResponse struct {
	AdminID     string `json:"adminId"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

func NewAdminResponse(a *domain.Admin) *AdminResponse {
	return &AdminResponse{
		AdminID:     a.ID,
		Email:       a.Email,
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
	}
}
