package http

import (
	"fmt"
	"time"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

type RegisterAdminRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateOrderRequest struct {
	CustomerID  string `json:"customerId" binding:"required"`
	ComputerID  string `json:"computerId" binding:"required"`
	Duration    int    `json:"duration"`
	BookingDate string `json:"bookingDate" binding:"required"`
}

type UpdateAdminRequest struct {
	AdminID     string `json:"adminId" binding:"required"`
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// NotificationRequest is the subset of the gateway callback we act on; the
// status itself is always re-read from the gateway.
type NotificationRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// Local wall-clock form first, then the UTC forms clients send.
var bookingLayouts = []struct {
	layout string
	loc    *time.Location
}{
	{"2006-01-02 15:04:05", time.Local},
	{"2006-01-02T15:04:05.000Z", time.UTC},
	{time.RFC3339, time.UTC},
}

func parseBookingDate(s string) (time.Time, error) {
	for _, l := range bookingLayouts {
		if t, err := time.ParseInLocation(l.layout, s, l.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bookingDate %q: expected yyyy-MM-dd HH:mm:ss", s)
}
