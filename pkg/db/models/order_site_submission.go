package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// OrderSiteSubmission is one candidate site placement proposed inside an
// order group. Inclusion state hides or surfaces it without deleting data;
// the selection pool columns are the legacy mirror of inclusion status and
// are written only through the inclusion mapper.
type OrderSiteSubmission struct {
	ID                  uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID             uuid.UUID              `gorm:"column:group_id;type:uuid;not null"`
	Domain              string                 `gorm:"column:domain;not null"`
	DomainRating        *int                   `gorm:"column:domain_rating"`
	MonthlyTraffic      *int                   `gorm:"column:monthly_traffic"`
	WholesalePriceCents int                    `gorm:"column:wholesale_price_cents;not null;default:0"`
	RetailPriceCents    int                    `gorm:"column:retail_price_cents;not null;default:0"`
	SubmissionStatus    enums.SubmissionStatus `gorm:"column:submission_status;type:submission_status;not null;default:'pending'"`
	ClientReviewedAt    *time.Time             `gorm:"column:client_reviewed_at"`
	ClientReviewedBy    *uuid.UUID             `gorm:"column:client_reviewed_by;type:uuid"`
	ClientReviewNotes   *string                `gorm:"column:client_review_notes"`
	InclusionStatus     *enums.InclusionStatus `gorm:"column:inclusion_status;type:inclusion_status"`
	InclusionOrder      *int                   `gorm:"column:inclusion_order"`
	ExclusionReason     *string                `gorm:"column:exclusion_reason"`
	SelectionPool       enums.SelectionPool    `gorm:"column:selection_pool;type:selection_pool;not null;default:'alternative'"`
	PoolRank            *int                   `gorm:"column:pool_rank"`
	Reviews             []SubmissionReview     `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
