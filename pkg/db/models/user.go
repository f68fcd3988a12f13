package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// User is a platform login. Account and publisher users are scoped to their
// owning organization; internal users carry neither scope.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	Name         string         `gorm:"column:name;not null"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	UserType     enums.UserType `gorm:"column:user_type;type:user_type;not null"`
	AccountID    *uuid.UUID     `gorm:"column:account_id;type:uuid"`
	PublisherID  *uuid.UUID     `gorm:"column:publisher_id;type:uuid"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
