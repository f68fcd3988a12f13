package earnings

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
)

func setupEarningsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS earnings_entries (
  id TEXT PRIMARY KEY,
  publisher_id TEXT NOT NULL,
  order_id TEXT NOT NULL,
  line_item_id TEXT NOT NULL,
  type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  gross_cents INTEGER NOT NULL,
  platform_fee_cents INTEGER NOT NULL,
  net_cents INTEGER NOT NULL,
  confirmed_at DATETIME,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_earnings_line_item_type ON earnings_entries (line_item_id, type);`
	require.NoError(t, db.Exec(ddl).Error)

	return db
}

func newEntry(publisherID uuid.UUID, createdAt time.Time) *models.EarningsEntry {
	return &models.EarningsEntry{
		ID:               uuid.New(),
		PublisherID:      publisherID,
		OrderID:          uuid.New(),
		LineItemID:       uuid.New(),
		Type:             enums.EarningsTypeOrderCompletion,
		Status:           enums.EarningsStatusPending,
		GrossCents:       10000,
		PlatformFeeCents: 3000,
		NetCents:         7000,
		CreatedAt:        createdAt,
	}
}

func TestRepositoryInsertAndExists(t *testing.T) {
	db := setupEarningsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	entry := newEntry(uuid.New(), time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, entry))

	exists, err := repo.ExistsForLineItem(ctx, entry.LineItemID, enums.EarningsTypeOrderCompletion)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForLineItem(ctx, entry.LineItemID, enums.EarningsTypeBonus)
	require.NoError(t, err)
	assert.False(t, exists, "different entry type must not collide")

	exists, err = repo.ExistsForLineItem(ctx, uuid.New(), enums.EarningsTypeOrderCompletion)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepositoryUniqueIndexRejectsDuplicate(t *testing.T) {
	db := setupEarningsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	entry := newEntry(uuid.New(), time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, entry))

	dup := newEntry(entry.PublisherID, time.Now().UTC())
	dup.LineItemID = entry.LineItemID
	err := repo.Insert(ctx, dup)
	assert.Error(t, err, "second entry for the same line item and type must fail")
}

func TestRepositoryListForPublisherNewestFirst(t *testing.T) {
	db := setupEarningsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	publisherID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	oldest := newEntry(publisherID, base.Add(-2*time.Hour))
	middle := newEntry(publisherID, base.Add(-time.Hour))
	newest := newEntry(publisherID, base)
	other := newEntry(uuid.New(), base)

	for _, e := range []*models.EarningsEntry{oldest, middle, newest, other} {
		require.NoError(t, repo.Insert(ctx, e))
	}

	entries, err := repo.ListForPublisher(ctx, publisherID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, newest.ID, entries[0].ID)
	assert.Equal(t, middle.ID, entries[1].ID)
	assert.Equal(t, oldest.ID, entries[2].ID)
}
