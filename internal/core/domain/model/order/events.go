package order

import (
	"time"

	"movers/internal/pkg/ddd"
)

const (
	CreatedEventName       = "order.created"
	StatusChangedEventName = "order.status_changed"
)

type CreatedEvent struct {
	ddd.BaseEvent
	CustomerID string    `json:"customerId"`
	MoverID    string    `json:"moverId"`
	StartTime  time.Time `json:"startTime"`
	TotalCost  string    `json:"totalCost"`
}

func NewCreatedEvent(o *Order) CreatedEvent {
	return CreatedEvent{
		BaseEvent:  ddd.NewBaseEvent(CreatedEventName, o.ID().String()),
		CustomerID: o.CustomerID().String(),
		MoverID:    o.MoverID().String(),
		StartTime:  o.StartTime(),
		TotalCost:  o.TotalCost().StringFixed(CurrencyPrecision),
	}
}

type StatusChangedEvent struct {
	ddd.BaseEvent
	MoverID          string `json:"moverId"`
	Status           string `json:"status"`
	PaymentReference string `json:"paymentReference,omitempty"`
}

func NewStatusChangedEvent(o *Order) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:        ddd.NewBaseEvent(StatusChangedEventName, o.ID().String()),
		MoverID:          o.MoverID().String(),
		Status:           o.Status().String(),
		PaymentReference: o.PaymentReference(),
	}
}
