package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a brand/website an account builds links for. Order groups are
// keyed by client within an order.
type Client struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	Website   string    `gorm:"column:website;not null"`
	Status    string    `gorm:"column:status;not null;default:'active'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
