package domain

import "time"

const (
	EventOrderCreated = "order.created"
	EventOrderSettled = "order.settled"
	EventOrderFailed  = "order.failed"
)

type OrderEvent struct {
	OrderID    string      `json:"orderId"`
	CustomerID string      `json:"customerId"`
	ComputerID string      `json:"computerId"`
	Status     OrderStatus `json:"status"`
	TotalPrice string      `json:"totalPrice"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func NewOrderEvent(o *Order, at time.Time) OrderEvent {
	return OrderEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ComputerID: o.ComputerID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice().StringFixed(2),
		OccurredAt: at,
	}
}

func (e OrderEvent) PartitionKey() string { return e.OrderID }
