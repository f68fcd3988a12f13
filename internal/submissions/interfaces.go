package submissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
)

// Repository defines persistence operations for submissions and their audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindGroup(ctx context.Context, groupID uuid.UUID) (*models.OrderGroup, error)
	FindSubmission(ctx context.Context, submissionID uuid.UUID) (*models.OrderSiteSubmission, error)
	UpdateSubmission(ctx context.Context, submissionID uuid.UUID, updates map[string]any) error
	AppendReview(ctx context.Context, review *models.SubmissionReview) error
	ListReviews(ctx context.Context, submissionID uuid.UUID) ([]models.SubmissionReview, error)
}
