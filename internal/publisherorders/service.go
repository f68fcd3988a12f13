package publisherorders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/internal/earnings"
	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/logger"
	"github.com/linkquarry/linkquarry-backend/pkg/outbox"
	"github.com/linkquarry/linkquarry-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type earningsRecorder interface {
	RecordPending(ctx context.Context, input earnings.RecordPendingInput) (*earnings.EntryView, error)
}

// Service defines the line item operations publishers and staff perform.
type Service interface {
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*LineItemView, error)
	Resolve(ctx context.Context, input ResolveInput) (*LineItemView, error)
	ListAssigned(ctx context.Context, publisherID *uuid.UUID, params pagination.Params, filters ListFilters) (*LineItemList, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	outbox   outboxPublisher
	earnings earningsRecorder
	logg     *logger.Logger
}

// Publishers move their own work forward; staff resolve submitted work.
// Acceptance of a notified line item happens through assignment tooling,
// not this endpoint.
var publisherTransitions = map[enums.PublisherOrderStatus][]enums.PublisherOrderStatus{
	enums.PublisherOrderStatusAccepted:   {enums.PublisherOrderStatusInProgress},
	enums.PublisherOrderStatusInProgress: {enums.PublisherOrderStatusSubmitted},
}

var internalResolutions = map[enums.PublisherOrderStatus][]enums.PublisherOrderStatus{
	enums.PublisherOrderStatusSubmitted: {enums.PublisherOrderStatusCompleted, enums.PublisherOrderStatusRejected},
}

// NewService builds a publisher line item service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, earnings earningsRecorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("publisher orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if earnings == nil {
		return nil, fmt.Errorf("earnings recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		outbox:   outbox,
		earnings: earnings,
		logg:     logg,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*LineItemView, error) {
	if input.LineItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorUserType != enums.UserTypePublisher {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted")
	}
	if input.ActorPublisher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "publisher context missing")
	}
	if !input.TargetStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid publisher status %q", input.TargetStatus))
	}

	if input.TargetStatus == enums.PublisherOrderStatusSubmitted {
		if input.PublishedURL == nil || strings.TrimSpace(*input.PublishedURL) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "published_url required to submit")
		}
	}

	var view *LineItemView
	var completed *models.OrderLineItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindLineItem(ctx, input.LineItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line item")
		}

		if item.PublisherID == nil || *item.PublisherID != *input.ActorPublisher {
			return pkgerrors.New(pkgerrors.CodeForbidden, "line item not assigned to publisher")
		}

		if !allowed(publisherTransitions, item.PublisherStatus, input.TargetStatus) {
			return pkgerrors.New(
				pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot transition line item from %s to %s", item.PublisherStatus, input.TargetStatus),
			)
		}

		now := time.Now()
		updates := map[string]any{
			"publisher_status": input.TargetStatus,
			"updated_at":       now,
		}
		if input.Notes != nil {
			updates["publisher_notes"] = input.Notes
		}
		if input.TargetStatus == enums.PublisherOrderStatusSubmitted {
			updates["published_url"] = input.PublishedURL
			updates["delivered_at"] = now
		}

		if err := repo.UpdateLineItem(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line item status")
		}

		fromStatus := item.PublisherStatus
		item.PublisherStatus = input.TargetStatus
		if input.Notes != nil {
			item.PublisherNotes = input.Notes
		}
		if input.TargetStatus == enums.PublisherOrderStatusSubmitted {
			item.PublishedURL = input.PublishedURL
			item.DeliveredAt = &now
			itemCopy := *item
			completed = &itemCopy
		}
		item.UpdatedAt = now

		event := outbox.DomainEvent{
			EventType:     enums.EventLineItemStatusChanged,
			AggregateType: enums.AggregateLineItem,
			AggregateID:   item.ID,
			Version:       1,
			Actor: &outbox.ActorRef{
				UserID:      input.ActorUserID,
				UserType:    string(input.ActorUserType),
				PublisherID: input.ActorPublisher,
			},
			Data: StatusChangedEvent{
				LineItemID:  item.ID,
				OrderID:     item.OrderID,
				PublisherID: item.PublisherID,
				FromStatus:  fromStatus,
				ToStatus:    input.TargetStatus,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		view = buildView(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Ledger entry creation is best effort. The status change already
	// committed; a failure here is logged and reconciled out of band.
	if completed != nil {
		s.recordPendingEarnings(ctx, completed, input.ActorUserID, input.ActorUserType)
	}

	return view, nil
}

func (s *service) Resolve(ctx context.Context, input ResolveInput) (*LineItemView, error) {
	if input.LineItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorUserType != enums.UserTypeInternal {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted")
	}
	if !input.TargetStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid publisher status %q", input.TargetStatus))
	}

	var view *LineItemView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindLineItem(ctx, input.LineItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line item")
		}

		if !allowed(internalResolutions, item.PublisherStatus, input.TargetStatus) {
			return pkgerrors.New(
				pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot transition line item from %s to %s", item.PublisherStatus, input.TargetStatus),
			)
		}

		now := time.Now()
		updates := map[string]any{
			"publisher_status": input.TargetStatus,
			"updated_at":       now,
		}
		if input.Notes != nil {
			updates["publisher_notes"] = input.Notes
		}
		if err := repo.UpdateLineItem(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line item status")
		}

		fromStatus := item.PublisherStatus
		item.PublisherStatus = input.TargetStatus
		if input.Notes != nil {
			item.PublisherNotes = input.Notes
		}
		item.UpdatedAt = now

		event := outbox.DomainEvent{
			EventType:     enums.EventLineItemStatusChanged,
			AggregateType: enums.AggregateLineItem,
			AggregateID:   item.ID,
			Version:       1,
			Actor: &outbox.ActorRef{
				UserID:   input.ActorUserID,
				UserType: string(input.ActorUserType),
			},
			Data: StatusChangedEvent{
				LineItemID:  item.ID,
				OrderID:     item.OrderID,
				PublisherID: item.PublisherID,
				FromStatus:  fromStatus,
				ToStatus:    input.TargetStatus,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		view = buildView(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) ListAssigned(ctx context.Context, publisherID *uuid.UUID, params pagination.Params, filters ListFilters) (*LineItemList, error) {
	if publisherID == nil || *publisherID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "publisher context missing")
	}

	list, err := s.repo.ListAssigned(ctx, *publisherID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned line items")
	}
	return list, nil
}

func (s *service) recordPendingEarnings(ctx context.Context, item *models.OrderLineItem, actorID uuid.UUID, actorType enums.UserType) {
	if item.PublisherID == nil {
		return
	}
	_, err := s.earnings.RecordPending(ctx, earnings.RecordPendingInput{
		PublisherID:         *item.PublisherID,
		OrderID:             item.OrderID,
		LineItemID:          item.ID,
		Type:                enums.EarningsTypeOrderCompletion,
		WholesalePriceCents: item.WholesalePriceCents,
		ActorUserID:         actorID,
		ActorUserType:       actorType,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			return
		}
		lctx := s.logg.WithFields(ctx, map[string]any{
			"line_item_id": item.ID.String(),
			"publisher_id": item.PublisherID.String(),
		})
		s.logg.Error(lctx, "pending earnings entry not recorded", err)
	}
}

func allowed(table map[enums.PublisherOrderStatus][]enums.PublisherOrderStatus, from, to enums.PublisherOrderStatus) bool {
	for _, candidate := range table[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
