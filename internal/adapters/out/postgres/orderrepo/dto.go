// Package orderrepo maps Order aggregates to the orders table.
package orderrepo

import (
	"time"

	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is indexed on (status, start_time) for the overdue scan.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	MoverID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	OriginAddress      string          `gorm:"type:varchar(500);not null"`
	DestinationAddress string          `gorm:"type:varchar(500);not null"`
	StartTime          time.Time       `gorm:"not null;index:idx_orders_status_start,priority:2"`
	EndTime            time.Time       `gorm:"not null"`
	TotalCost          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status             string          `gorm:"type:varchar(16);not null;index:idx_orders_status_start,priority:1"`
	PaymentReference   string          `gorm:"type:varchar(255)"`
	PaymentMethod      string          `gorm:"type:varchar(255)"`
	DepositAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		CustomerID:         o.CustomerID().Bytes(),
		MoverID:            o.MoverID().Bytes(),
		OriginAddress:      o.OriginAddress(),
		DestinationAddress: o.DestinationAddress(),
		StartTime:          o.StartTime(),
		EndTime:            o.EndTime(),
		TotalCost:          o.TotalCost(),
		Status:             o.Status().String(),
		PaymentReference:   o.PaymentReference(),
		PaymentMethod:      o.PaymentMethod(),
		DepositAmount:      o.DepositAmount(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	moverID, err := kernel.UUIDFromBytes(dto.MoverID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		moverID,
		dto.OriginAddress,
		dto.DestinationAddress,
		dto.StartTime,
		dto.EndTime,
		dto.TotalCost,
		status,
		dto.PaymentReference,
		dto.PaymentMethod,
		dto.DepositAmount,
	)
}
