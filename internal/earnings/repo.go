package earnings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an earnings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, entry *models.EarningsEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ExistsForLineItem(ctx context.Context, lineItemID uuid.UUID, entryType enums.EarningsType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EarningsEntry{}).
		Where("line_item_id = ? AND type = ?", lineItemID, entryType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListForPublisher(ctx context.Context, publisherID uuid.UUID) ([]models.EarningsEntry, error) {
	var entries []models.EarningsEntry
	err := r.db.WithContext(ctx).
		Where("publisher_id = ?", publisherID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
