package submissions

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

// UpdateInclusionInput carries an inclusion-status change request.
type UpdateInclusionInput struct {
	OrderID         uuid.UUID
	GroupID         uuid.UUID
	SubmissionID    uuid.UUID
	InclusionStatus enums.InclusionStatus
	InclusionOrder  *int
	ExclusionReason *string
	ActorUserID     uuid.UUID
	ActorUserType   enums.UserType
	ActorAccountID  *uuid.UUID
}

// ReviewInput carries a client review decision on a submission.
type ReviewInput struct {
	OrderID        uuid.UUID
	GroupID        uuid.UUID
	SubmissionID   uuid.UUID
	Action         enums.ReviewAction
	Notes          *string
	ActorUserID    uuid.UUID
	ActorUserType  enums.UserType
	ActorAccountID *uuid.UUID
}

// SubmissionView is the API projection of a submission row.
type SubmissionView struct {
	ID                uuid.UUID              `json:"id"`
	GroupID           uuid.UUID              `json:"group_id"`
	Domain            string                 `json:"domain"`
	DomainRating      *int                   `json:"domain_rating,omitempty"`
	MonthlyTraffic    *int                   `json:"monthly_traffic,omitempty"`
	RetailPriceCents  int                    `json:"retail_price_cents"`
	SubmissionStatus  enums.SubmissionStatus `json:"submission_status"`
	InclusionStatus   *enums.InclusionStatus `json:"inclusion_status,omitempty"`
	InclusionOrder    *int                   `json:"inclusion_order,omitempty"`
	ExclusionReason   *string                `json:"exclusion_reason,omitempty"`
	SelectionPool     enums.SelectionPool    `json:"selection_pool"`
	PoolRank          *int                   `json:"pool_rank,omitempty"`
	ClientReviewedAt  *time.Time             `json:"client_reviewed_at,omitempty"`
	ClientReviewNotes *string                `json:"client_review_notes,omitempty"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// InclusionChangedEvent is emitted when a submission's inclusion status changes.
type InclusionChangedEvent struct {
	SubmissionID    uuid.UUID             `json:"submission_id"`
	GroupID         uuid.UUID             `json:"group_id"`
	OrderID         uuid.UUID             `json:"order_id"`
	InclusionStatus enums.InclusionStatus `json:"inclusion_status"`
	SelectionPool   enums.SelectionPool   `json:"selection_pool"`
}

// ReviewedEvent is emitted when a submission receives a review decision.
type ReviewedEvent struct {
	SubmissionID     uuid.UUID              `json:"submission_id"`
	GroupID          uuid.UUID              `json:"group_id"`
	OrderID          uuid.UUID              `json:"order_id"`
	Action           enums.ReviewAction     `json:"action"`
	SubmissionStatus enums.SubmissionStatus `json:"submission_status"`
	ReviewerType     enums.ReviewerType     `json:"reviewer_type"`
}

func buildView(m *models.OrderSiteSubmission) *SubmissionView {
	if m == nil {
		return nil
	}
	return &SubmissionView{
		ID:                m.ID,
		GroupID:           m.GroupID,
		Domain:            m.Domain,
		DomainRating:      m.DomainRating,
		MonthlyTraffic:    m.MonthlyTraffic,
		RetailPriceCents:  m.RetailPriceCents,
		SubmissionStatus:  m.SubmissionStatus,
		InclusionStatus:   m.InclusionStatus,
		InclusionOrder:    m.InclusionOrder,
		ExclusionReason:   m.ExclusionReason,
		SelectionPool:     m.SelectionPool,
		PoolRank:          m.PoolRank,
		ClientReviewedAt:  m.ClientReviewedAt,
		ClientReviewNotes: m.ClientReviewNotes,
		UpdatedAt:         m.UpdatedAt,
	}
}
