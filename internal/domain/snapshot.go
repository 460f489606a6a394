package domain

import "github.com/shopspring/decimal"

type CustomerSnapshot struct {
	FirstName   string `json:"firstName" gorm:"size:100"`
	LastName    string `json:"lastName" gorm:"size:100"`
	Email       string `json:"email" gorm:"size:150"`
	PhoneNumber string `json:"phoneNumber" gorm:"size:30"`
	IsMember    bool   `json:"isMember"`
}

type ComputerSnapshot struct {
	Name     string   `json:"name" gorm:"size:100"`
	Code     string   `json:"code" gorm:"size:50"`
	Category Category `json:"category" gorm:"size:20"`
}

type PriceSnapshot struct {
	ID       string          `json:"id" gorm:"type:char(36)"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	IsActive bool            `json:"isActive"`
}

func NewCustomerSnapshot(c Customer) CustomerSnapshot {
	return CustomerSnapshot{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		IsMember:    c.IsMember,
	}
}

func NewComputerSnapshot(c Computer) ComputerSnapshot {
	return ComputerSnapshot{
		Name:     c.Name,
		Code:     c.Code,
		Category: c.Type.Category,
	}
}

func NewPriceSnapshot(p TypePrice) PriceSnapshot {
	return PriceSnapshot{
		ID:       p.ID,
		Price:    p.Price,
		IsActive: p.IsActive,
	}
}
