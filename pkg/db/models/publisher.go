package models

import (
	"time"

	"github.com/google/uuid"
)

// Publisher is a site owner fulfilling guest-post placements.
type Publisher struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName  string    `gorm:"column:company_name;not null"`
	ContactEmail string    `gorm:"column:contact_email;not null"`
	PaymentEmail *string   `gorm:"column:payment_email"`
	Status       string    `gorm:"column:status;not null;default:'active'"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
