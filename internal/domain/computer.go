package domain

import "github.com/shopspring/decimal"

type ComputerStatus string

const (
	ComputerAvailable ComputerStatus = "AVAILABLE"
	ComputerUsed      ComputerStatus = "USED"
	ComputerOrdered   ComputerStatus = "ORDERED"
)

type Category string

const (
	CategoryRegular Category = "REGULAR"
	CategoryVIP     Category = "VIP"
	CategoryVVIP    Category = "VVIP"
)

type ComputerSpec struct {
	Processor string `json:"processor" gorm:"size:100"`
	RAM       string `json:"ram" gorm:"size:50"`
	Monitor   string `json:"monitor" gorm:"size:100"`
	SSD       string `json:"ssd" gorm:"size:50"`
	VGA       string `json:"vga" gorm:"size:100"`
}

type Computer struct {
	ID            string         `json:"id" gorm:"primaryKey;type:char(36)"`
	Name          string         `json:"name" gorm:"size:100;not null"`
	Code          string         `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Status        ComputerStatus `json:"status" gorm:"type:enum('AVAILABLE','USED','ORDERED');default:'AVAILABLE'"`
	TypeID        string         `json:"typeId" gorm:"type:char(36);not null;index"`
	Type          ComputerType   `json:"type" gorm:"foreignKey:TypeID"`
	Specification ComputerSpec   `json:"specification" gorm:"embedded;embeddedPrefix:spec_"`
}

type ComputerType struct {
	ID       string      `json:"id" gorm:"primaryKey;type:char(36)"`
	Category Category    `json:"category" gorm:"size:20;uniqueIndex;not null"`
	Prices   []TypePrice `json:"prices" gorm:"foreignKey:TypeID"`
}

// TypePrice is one price tier of a computer type. At most one tier per type is
// expected to be active.
type TypePrice struct {
	ID       string          `json:"id" gorm:"primaryKey;type:char(36)"`
	TypeID   string          `json:"typeId" gorm:"type:char(36);not null;index"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	IsActive bool            `json:"isActive" gorm:"not null;default:true"`
}
