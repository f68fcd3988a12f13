package earnings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// Repository defines persistence operations for the earnings ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, entry *models.EarningsEntry) error
	ExistsForLineItem(ctx context.Context, lineItemID uuid.UUID, entryType enums.EarningsType) (bool, error)
	ListForPublisher(ctx context.Context, publisherID uuid.UUID) ([]models.EarningsEntry, error)
}
