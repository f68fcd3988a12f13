package publisherorders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	"github.com/linkquarry/linkquarry-backend/pkg/pagination"
)

func setupLineItemTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  target_page_url TEXT NOT NULL,
  anchor_text TEXT NOT NULL,
  assigned_domain TEXT,
  publisher_id TEXT,
  publisher_status TEXT NOT NULL DEFAULT 'pending',
  published_url TEXT,
  publisher_notes TEXT,
  delivered_at DATETIME,
  estimated_price_cents INTEGER NOT NULL DEFAULT 0,
  wholesale_price_cents INTEGER NOT NULL DEFAULT 0,
  service_fee_cents INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)

	return db
}

func seedLineItem(t *testing.T, db *gorm.DB, publisherID uuid.UUID, status enums.PublisherOrderStatus, createdAt time.Time) *models.OrderLineItem {
	t.Helper()
	item := &models.OrderLineItem{
		ID:                  uuid.New(),
		OrderID:             uuid.New(),
		ClientID:            uuid.New(),
		TargetPageURL:       "https://example.com/landing",
		AnchorText:          "best tools",
		PublisherID:         &publisherID,
		PublisherStatus:     status,
		WholesalePriceCents: 15000,
		CreatedAt:           createdAt,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestRepositoryFindLineItem(t *testing.T) {
	db := setupLineItemTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedLineItem(t, db, uuid.New(), enums.PublisherOrderStatusNotified, time.Now().UTC())

	item, err := repo.FindLineItem(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, item.ID)
	assert.Equal(t, enums.PublisherOrderStatusNotified, item.PublisherStatus)

	_, err = repo.FindLineItem(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListAssignedPaginates(t *testing.T) {
	db := setupLineItemTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	publisherID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		seedLineItem(t, db, publisherID, enums.PublisherOrderStatusNotified, base.Add(-time.Duration(i)*time.Minute))
	}
	seedLineItem(t, db, uuid.New(), enums.PublisherOrderStatusNotified, base)

	page1, err := repo.ListAssigned(ctx, publisherID, pagination.Params{Limit: 2}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, page1.LineItems, 2)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := repo.ListAssigned(ctx, publisherID, pagination.Params{Limit: 2, Cursor: page1.NextCursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, page2.LineItems, 2)

	page3, err := repo.ListAssigned(ctx, publisherID, pagination.Params{Limit: 2, Cursor: page2.NextCursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, page3.LineItems, 1)
	assert.Empty(t, page3.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, page := range []*LineItemList{page1, page2, page3} {
		for _, item := range page.LineItems {
			assert.False(t, seen[item.ID], "item repeated across pages")
			seen[item.ID] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestRepositoryListAssignedStatusFilter(t *testing.T) {
	db := setupLineItemTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	publisherID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	seedLineItem(t, db, publisherID, enums.PublisherOrderStatusNotified, base)
	accepted := seedLineItem(t, db, publisherID, enums.PublisherOrderStatusAccepted, base.Add(-time.Minute))

	status := enums.PublisherOrderStatusAccepted
	list, err := repo.ListAssigned(ctx, publisherID, pagination.Params{Limit: 10}, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, list.LineItems, 1)
	assert.Equal(t, accepted.ID, list.LineItems[0].ID)
}

func TestRepositoryUpdateLineItem(t *testing.T) {
	db := setupLineItemTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedLineItem(t, db, uuid.New(), enums.PublisherOrderStatusInProgress, time.Now().UTC())
	url := "https://blog.example.net/guest-post"
	now := time.Now().UTC()

	err := repo.UpdateLineItem(ctx, seeded.ID, map[string]any{
		"publisher_status": enums.PublisherOrderStatusSubmitted,
		"published_url":    url,
		"delivered_at":     now,
		"updated_at":       now,
	})
	require.NoError(t, err)

	reloaded, err := repo.FindLineItem(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PublisherOrderStatusSubmitted, reloaded.PublisherStatus)
	require.NotNil(t, reloaded.PublishedURL)
	assert.Equal(t, url, *reloaded.PublishedURL)
	assert.NotNil(t, reloaded.DeliveredAt)
}
