package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// TransitionInput captures a top-level order status change request.
type TransitionInput struct {
	OrderID        uuid.UUID
	TargetStatus   enums.OrderStatus
	ActorUserID    uuid.UUID
	ActorUserType  enums.UserType
	ActorAccountID *uuid.UUID
}

// SetStateInput advances the internal fulfillment sub-state.
type SetStateInput struct {
	OrderID       uuid.UUID
	State         enums.OrderState
	ActorUserID   uuid.UUID
	ActorUserType enums.UserType
}

// ListFilters describe the inputs supported by the orders list.
type ListFilters struct {
	AccountID *uuid.UUID
	Status    *enums.OrderStatus
}

// OrderSummary exposes the aggregated fields returned in the orders list.
type OrderSummary struct {
	ID            uuid.UUID         `json:"id"`
	AccountID     uuid.UUID         `json:"account_id"`
	Status        enums.OrderStatus `json:"status"`
	State         *enums.OrderState `json:"state,omitempty"`
	SubtotalCents int               `json:"subtotal_cents"`
	TotalCents    int               `json:"total_cents"`
	CreatedAt     time.Time         `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// GroupDetail nests a group's submissions inside the order detail.
type GroupDetail struct {
	ID          uuid.UUID        `json:"id"`
	ClientID    uuid.UUID        `json:"client_id"`
	LinkCount   int              `json:"link_count"`
	Submissions []SubmissionItem `json:"submissions"`
}

// SubmissionItem is the order-detail projection of a submission.
type SubmissionItem struct {
	ID               uuid.UUID              `json:"id"`
	Domain           string                 `json:"domain"`
	DomainRating     *int                   `json:"domain_rating,omitempty"`
	MonthlyTraffic   *int                   `json:"monthly_traffic,omitempty"`
	RetailPriceCents int                    `json:"retail_price_cents"`
	SubmissionStatus enums.SubmissionStatus `json:"submission_status"`
	InclusionStatus  *enums.InclusionStatus `json:"inclusion_status,omitempty"`
	InclusionOrder   *int                   `json:"inclusion_order,omitempty"`
	SelectionPool    enums.SelectionPool    `json:"selection_pool"`
}

// LineItemDetail is the order-detail projection of a line item.
type LineItemDetail struct {
	ID                  uuid.UUID                  `json:"id"`
	ClientID            uuid.UUID                  `json:"client_id"`
	TargetPageURL       string                     `json:"target_page_url"`
	AnchorText          string                     `json:"anchor_text"`
	AssignedDomain      *string                    `json:"assigned_domain,omitempty"`
	PublisherStatus     enums.PublisherOrderStatus `json:"publisher_status"`
	PublishedURL        *string                    `json:"published_url,omitempty"`
	DeliveredAt         *time.Time                 `json:"delivered_at,omitempty"`
	EstimatedPriceCents int                        `json:"estimated_price_cents"`
}

// OrderDetail wraps an order with its groups, submissions, and line items.
type OrderDetail struct {
	ID            uuid.UUID         `json:"id"`
	AccountID     uuid.UUID         `json:"account_id"`
	Status        enums.OrderStatus `json:"status"`
	State         *enums.OrderState `json:"state,omitempty"`
	SubtotalCents int               `json:"subtotal_cents"`
	TotalCents    int               `json:"total_cents"`
	Notes         *string           `json:"notes,omitempty"`
	ConfirmedAt   *time.Time        `json:"confirmed_at,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Groups        []GroupDetail     `json:"groups"`
	LineItems     []LineItemDetail  `json:"line_items"`
}

// StatusChangedEvent is emitted for every top-level status transition.
type StatusChangedEvent struct {
	OrderID    uuid.UUID         `json:"order_id"`
	AccountID  uuid.UUID         `json:"account_id"`
	FromStatus enums.OrderStatus `json:"from_status"`
	ToStatus   enums.OrderStatus `json:"to_status"`
}

// ConfirmedEvent is emitted once when an order is confirmed.
type ConfirmedEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	AccountID  uuid.UUID `json:"account_id"`
	TotalCents int       `json:"total_cents"`
}

func buildSummary(m models.Order) OrderSummary {
	return OrderSummary{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Status:        m.Status,
		State:         m.State,
		SubtotalCents: m.SubtotalCents,
		TotalCents:    m.TotalCents,
		CreatedAt:     m.CreatedAt,
	}
}

func buildDetail(m *models.Order) *OrderDetail {
	if m == nil {
		return nil
	}
	detail := &OrderDetail{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Status:        m.Status,
		State:         m.State,
		SubtotalCents: m.SubtotalCents,
		TotalCents:    m.TotalCents,
		Notes:         m.Notes,
		ConfirmedAt:   m.ConfirmedAt,
		CompletedAt:   m.CompletedAt,
		CancelledAt:   m.CancelledAt,
		CreatedAt:     m.CreatedAt,
		Groups:        make([]GroupDetail, 0, len(m.Groups)),
		LineItems:     make([]LineItemDetail, 0, len(m.LineItems)),
	}
	for _, group := range m.Groups {
		g := GroupDetail{
			ID:          group.ID,
			ClientID:    group.ClientID,
			LinkCount:   group.LinkCount,
			Submissions: make([]SubmissionItem, 0, len(group.Submissions)),
		}
		for _, sub := range group.Submissions {
			g.Submissions = append(g.Submissions, SubmissionItem{
				ID:               sub.ID,
				Domain:           sub.Domain,
				DomainRating:     sub.DomainRating,
				MonthlyTraffic:   sub.MonthlyTraffic,
				RetailPriceCents: sub.RetailPriceCents,
				SubmissionStatus: sub.SubmissionStatus,
				InclusionStatus:  sub.InclusionStatus,
				InclusionOrder:   sub.InclusionOrder,
				SelectionPool:    sub.SelectionPool,
			})
		}
		detail.Groups = append(detail.Groups, g)
	}
	for _, item := range m.LineItems {
		detail.LineItems = append(detail.LineItems, LineItemDetail{
			ID:                  item.ID,
			ClientID:            item.ClientID,
			TargetPageURL:       item.TargetPageURL,
			AnchorText:          item.AnchorText,
			AssignedDomain:      item.AssignedDomain,
			PublisherStatus:     item.PublisherStatus,
			PublishedURL:        item.PublishedURL,
			DeliveredAt:         item.DeliveredAt,
			EstimatedPriceCents: item.EstimatedPriceCents,
		})
	}
	return detail
}
