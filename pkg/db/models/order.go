package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// Order is a guest-post order owned by an account. The lifecycle is soft:
// once submitted an order is never hard-deleted, only cancelled.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID     uuid.UUID         `gorm:"column:account_id;type:uuid;not null"`
	Status        enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'draft'"`
	State         *enums.OrderState `gorm:"column:state;type:order_state"`
	SubtotalCents int               `gorm:"column:subtotal_cents;not null;default:0"`
	TotalCents    int               `gorm:"column:total_cents;not null;default:0"`
	Notes         *string           `gorm:"column:notes"`
	InternalNotes *string           `gorm:"column:internal_notes"`
	ConfirmedAt   *time.Time        `gorm:"column:confirmed_at"`
	CompletedAt   *time.Time        `gorm:"column:completed_at"`
	CancelledAt   *time.Time        `gorm:"column:cancelled_at"`
	Groups        []OrderGroup      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	LineItems     []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
