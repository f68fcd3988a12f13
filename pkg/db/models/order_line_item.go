package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// OrderLineItem is one deliverable placement within an order: a target page,
// an anchor text, and the domain it will be published on.
type OrderLineItem struct {
	ID                  uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID                  `gorm:"column:order_id;type:uuid;not null"`
	ClientID            uuid.UUID                  `gorm:"column:client_id;type:uuid;not null"`
	TargetPageURL       string                     `gorm:"column:target_page_url;not null"`
	AnchorText          string                     `gorm:"column:anchor_text;not null"`
	AssignedDomain      *string                    `gorm:"column:assigned_domain"`
	PublisherID         *uuid.UUID                 `gorm:"column:publisher_id;type:uuid"`
	PublisherStatus     enums.PublisherOrderStatus `gorm:"column:publisher_status;type:publisher_order_status;not null;default:'pending'"`
	PublishedURL        *string                    `gorm:"column:published_url"`
	PublisherNotes      *string                    `gorm:"column:publisher_notes"`
	DeliveredAt         *time.Time                 `gorm:"column:delivered_at"`
	EstimatedPriceCents int                        `gorm:"column:estimated_price_cents;not null;default:0"`
	WholesalePriceCents int                        `gorm:"column:wholesale_price_cents;not null;default:0"`
	ServiceFeeCents     int                        `gorm:"column:service_fee_cents;not null;default:0"`
	CreatedAt           time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}
