package publisherorders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/pagination"
)

// Repository defines persistence operations for publisher line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindLineItem(ctx context.Context, lineItemID uuid.UUID) (*models.OrderLineItem, error)
	ListAssigned(ctx context.Context, publisherID uuid.UUID, params pagination.Params, filters ListFilters) (*LineItemList, error)
	UpdateLineItem(ctx context.Context, lineItemID uuid.UUID, updates map[string]any) error
}
