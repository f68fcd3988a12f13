package submissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a submissions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindGroup(ctx context.Context, groupID uuid.UUID) (*models.OrderGroup, error) {
	var group models.OrderGroup
	err := r.db.WithContext(ctx).
		Where("id = ?", groupID).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) FindSubmission(ctx context.Context, submissionID uuid.UUID) (*models.OrderSiteSubmission, error) {
	var submission models.OrderSiteSubmission
	err := r.db.WithContext(ctx).
		Where("id = ?", submissionID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *repository) UpdateSubmission(ctx context.Context, submissionID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderSiteSubmission{}).
		Where("id = ?", submissionID).
		Updates(updates).Error
}

func (r *repository) AppendReview(ctx context.Context, review *models.SubmissionReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) ListReviews(ctx context.Context, submissionID uuid.UUID) ([]models.SubmissionReview, error) {
	var reviews []models.SubmissionReview
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
