package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the customer organization that owns orders.
type Account struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	ContactEmail string    `gorm:"column:contact_email;not null"`
	BillingEmail *string   `gorm:"column:billing_email"`
	Status       string    `gorm:"column:status;not null;default:'active'"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
