package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// SubmissionReview is one entry in a submission's append-only review audit
// trail. Rows are only ever inserted; there is no update or delete path.
type SubmissionReview struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubmissionID uuid.UUID          `gorm:"column:submission_id;type:uuid;not null"`
	Action       enums.ReviewAction `gorm:"column:action;type:review_action;not null"`
	ReviewerType enums.ReviewerType `gorm:"column:reviewer_type;type:reviewer_type;not null"`
	ReviewedBy   *uuid.UUID         `gorm:"column:reviewed_by;type:uuid"`
	Notes        *string            `gorm:"column:notes"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}
