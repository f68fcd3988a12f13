package earnings

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// RecordPendingInput describes a single pending ledger entry to create.
type RecordPendingInput struct {
	PublisherID         uuid.UUID
	OrderID             uuid.UUID
	LineItemID          uuid.UUID
	Type                enums.EarningsType
	WholesalePriceCents int
	ActorUserID         uuid.UUID
	ActorUserType       enums.UserType
}

// EntryView is the API projection of one ledger entry.
type EntryView struct {
	ID               uuid.UUID            `json:"id"`
	OrderID          uuid.UUID            `json:"order_id"`
	LineItemID       uuid.UUID            `json:"line_item_id"`
	Type             enums.EarningsType   `json:"type"`
	Status           enums.EarningsStatus `json:"status"`
	GrossCents       int                  `json:"gross_cents"`
	PlatformFeeCents int                  `json:"platform_fee_cents"`
	NetCents         int                  `json:"net_cents"`
	ConfirmedAt      *time.Time           `json:"confirmed_at,omitempty"`
	PaidAt           *time.Time           `json:"paid_at,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// Totals aggregates net amounts by ledger status.
type Totals struct {
	PendingNetCents   int `json:"pending_net_cents"`
	ConfirmedNetCents int `json:"confirmed_net_cents"`
	PaidNetCents      int `json:"paid_net_cents"`
}

// LedgerView is the publisher-facing earnings response.
type LedgerView struct {
	Entries []EntryView `json:"entries"`
	Totals  Totals      `json:"totals"`
}

// RecordedEvent is emitted when a pending ledger entry is created.
type RecordedEvent struct {
	EntryID     uuid.UUID          `json:"entry_id"`
	PublisherID uuid.UUID          `json:"publisher_id"`
	OrderID     uuid.UUID          `json:"order_id"`
	LineItemID  uuid.UUID          `json:"line_item_id"`
	Type        enums.EarningsType `json:"type"`
	NetCents    int                `json:"net_cents"`
}

func buildEntryView(m models.EarningsEntry) EntryView {
	return EntryView{
		ID:               m.ID,
		OrderID:          m.OrderID,
		LineItemID:       m.LineItemID,
		Type:             m.Type,
		Status:           m.Status,
		GrossCents:       m.GrossCents,
		PlatformFeeCents: m.PlatformFeeCents,
		NetCents:         m.NetCents,
		ConfirmedAt:      m.ConfirmedAt,
		PaidAt:           m.PaidAt,
		CreatedAt:        m.CreatedAt,
	}
}
