package publisherorders

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// UpdateStatusInput is a publisher-driven line item status change.
type UpdateStatusInput struct {
	LineItemID     uuid.UUID
	TargetStatus   enums.PublisherOrderStatus
	PublishedURL   *string
	Notes          *string
	ActorUserID    uuid.UUID
	ActorUserType  enums.UserType
	ActorPublisher *uuid.UUID
}

// ResolveInput is the internal-side completion or rejection of a line item.
type ResolveInput struct {
	LineItemID    uuid.UUID
	TargetStatus  enums.PublisherOrderStatus
	Notes         *string
	ActorUserID   uuid.UUID
	ActorUserType enums.UserType
}

// ListFilters narrows the assigned line item listing.
type ListFilters struct {
	Status *enums.PublisherOrderStatus
}

// LineItemView is the publisher-facing projection of a line item.
type LineItemView struct {
	ID              uuid.UUID                  `json:"id"`
	OrderID         uuid.UUID                  `json:"order_id"`
	TargetPageURL   string                     `json:"target_page_url"`
	AnchorText      string                     `json:"anchor_text"`
	AssignedDomain  *string                    `json:"assigned_domain,omitempty"`
	PublisherStatus enums.PublisherOrderStatus `json:"publisher_status"`
	PublishedURL    *string                    `json:"published_url,omitempty"`
	PublisherNotes  *string                    `json:"publisher_notes,omitempty"`
	DeliveredAt     *time.Time                 `json:"delivered_at,omitempty"`
	PayoutCents     int                        `json:"payout_cents"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// LineItemList wraps the paginated line items plus the next page cursor.
type LineItemList struct {
	LineItems  []LineItemView `json:"line_items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// StatusChangedEvent is emitted for every publisher status transition.
type StatusChangedEvent struct {
	LineItemID  uuid.UUID                  `json:"line_item_id"`
	OrderID     uuid.UUID                  `json:"order_id"`
	PublisherID *uuid.UUID                 `json:"publisher_id,omitempty"`
	FromStatus  enums.PublisherOrderStatus `json:"from_status"`
	ToStatus    enums.PublisherOrderStatus `json:"to_status"`
}

func buildView(m *models.OrderLineItem) *LineItemView {
	if m == nil {
		return nil
	}
	return &LineItemView{
		ID:              m.ID,
		OrderID:         m.OrderID,
		TargetPageURL:   m.TargetPageURL,
		AnchorText:      m.AnchorText,
		AssignedDomain:  m.AssignedDomain,
		PublisherStatus: m.PublisherStatus,
		PublishedURL:    m.PublishedURL,
		PublisherNotes:  m.PublisherNotes,
		DeliveredAt:     m.DeliveredAt,
		PayoutCents:     m.WholesalePriceCents,
		CreatedAt:       m.CreatedAt,
	}
}
