package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// EarningsEntry is one row in the publisher earnings ledger. Entries are
// created pending and reconciled separately from the status change that
// produced them.
type EarningsEntry struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PublisherID      uuid.UUID            `gorm:"column:publisher_id;type:uuid;not null"`
	OrderID          uuid.UUID            `gorm:"column:order_id;type:uuid;not null"`
	LineItemID       uuid.UUID            `gorm:"column:line_item_id;type:uuid;not null;uniqueIndex:ux_earnings_line_item_type,priority:1"`
	Type             enums.EarningsType   `gorm:"column:type;type:earnings_type;not null;uniqueIndex:ux_earnings_line_item_type,priority:2"`
	Status           enums.EarningsStatus `gorm:"column:status;type:earnings_status;not null;default:'pending'"`
	GrossCents       int                  `gorm:"column:gross_cents;not null"`
	PlatformFeeCents int                  `gorm:"column:platform_fee_cents;not null"`
	NetCents         int                  `gorm:"column:net_cents;not null"`
	ConfirmedAt      *time.Time           `gorm:"column:confirmed_at"`
	PaidAt           *time.Time           `gorm:"column:paid_at"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
