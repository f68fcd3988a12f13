package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderGroup buckets an order's submissions and line items by client.
type OrderGroup struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID             `gorm:"column:order_id;type:uuid;not null"`
	ClientID    uuid.UUID             `gorm:"column:client_id;type:uuid;not null"`
	LinkCount   int                   `gorm:"column:link_count;not null;default:0"`
	Submissions []OrderSiteSubmission `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
