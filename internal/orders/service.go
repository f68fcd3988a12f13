package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/outbox"
	"github.com/linkquarry/linkquarry-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the order lifecycle and read operations.
type Service interface {
	Transition(ctx context.Context, input TransitionInput) (*OrderSummary, error)
	SetState(ctx context.Context, input SetStateInput) (*OrderSummary, error)
	List(ctx context.Context, actorType enums.UserType, actorAccountID *uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error)
	Detail(ctx context.Context, orderID uuid.UUID, actorType enums.UserType, actorAccountID *uuid.UUID) (*OrderDetail, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// Each user type gets its own allow-list of status transitions. Publishers
// never appear here: they have no authority over the order lifecycle.
var accountTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusDraft:               {enums.OrderStatusPendingConfirmation},
	enums.OrderStatusPendingConfirmation: {enums.OrderStatusCancelled},
	enums.OrderStatusSitesReady:          {enums.OrderStatusClientReviewing},
}

var internalTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPendingConfirmation: {enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed:           {enums.OrderStatusInProgress, enums.OrderStatusCancelled},
	enums.OrderStatusSitesReady:          {enums.OrderStatusCancelled},
	enums.OrderStatusClientReviewing:     {enums.OrderStatusCancelled},
	enums.OrderStatusInProgress:          {enums.OrderStatusCompleted, enums.OrderStatusCancelled},
	enums.OrderStatusDraft:               {enums.OrderStatusCancelled},
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:   repo,
		tx:     tx,
		outbox: outbox,
	}, nil
}

func (s *service) Transition(ctx context.Context, input TransitionInput) (*OrderSummary, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.TargetStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.TargetStatus))
	}
	if input.ActorUserType == enums.UserTypePublisher {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted")
	}

	var summary *OrderSummary
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if input.ActorUserType == enums.UserTypeAccount {
			if input.ActorAccountID == nil || *input.ActorAccountID != order.AccountID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to account")
			}
		}

		if !transitionAllowed(input.ActorUserType, order.Status, input.TargetStatus) {
			return pkgerrors.New(
				pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot transition order from %s to %s", order.Status, input.TargetStatus),
			)
		}

		now := time.Now()
		updates := map[string]any{
			"status":     input.TargetStatus,
			"updated_at": now,
		}
		switch input.TargetStatus {
		case enums.OrderStatusConfirmed:
			updates["confirmed_at"] = now
		case enums.OrderStatusCompleted:
			updates["completed_at"] = now
		case enums.OrderStatusCancelled:
			updates["cancelled_at"] = now
		}

		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		fromStatus := order.Status
		order.Status = input.TargetStatus
		switch input.TargetStatus {
		case enums.OrderStatusConfirmed:
			order.ConfirmedAt = &now
		case enums.OrderStatusCompleted:
			order.CompletedAt = &now
		case enums.OrderStatusCancelled:
			order.CancelledAt = &now
		}

		actor := buildActor(input.ActorUserID, input.ActorUserType, input.ActorAccountID)
		statusEvent := outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         actor,
			Data: StatusChangedEvent{
				OrderID:    order.ID,
				AccountID:  order.AccountID,
				FromStatus: fromStatus,
				ToStatus:   input.TargetStatus,
			},
		}
		if err := s.outbox.Emit(ctx, tx, statusEvent); err != nil {
			return err
		}

		if input.TargetStatus == enums.OrderStatusConfirmed {
			confirmedEvent := outbox.DomainEvent{
				EventType:     enums.EventOrderConfirmed,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Version:       1,
				Actor:         actor,
				Data: ConfirmedEvent{
					OrderID:    order.ID,
					AccountID:  order.AccountID,
					TotalCents: order.TotalCents,
				},
			}
			if err := s.outbox.EmitIfNotExists(ctx, tx, confirmedEvent); err != nil {
				return err
			}
		}

		sum := buildSummary(*order)
		summary = &sum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *service) SetState(ctx context.Context, input SetStateInput) (*OrderSummary, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorUserType != enums.UserTypeInternal {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted")
	}
	if !input.State.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order state %q", input.State))
	}

	var summary *OrderSummary
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(
				pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot change state of %s order", order.Status),
			)
		}

		updates := map[string]any{
			"state":      input.State,
			"updated_at": time.Now(),
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order state")
		}

		state := input.State
		order.State = &state
		sum := buildSummary(*order)
		summary = &sum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *service) List(ctx context.Context, actorType enums.UserType, actorAccountID *uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error) {
	switch actorType {
	case enums.UserTypeInternal:
		// internal callers may filter by any account
	case enums.UserTypeAccount:
		if actorAccountID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account context missing")
		}
		filters.AccountID = actorAccountID
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted")
	}

	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) Detail(ctx context.Context, orderID uuid.UUID, actorType enums.UserType, actorAccountID *uuid.UUID) (*OrderDetail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindOrderDetail(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order detail")
	}

	switch actorType {
	case enums.UserTypeInternal:
	case enums.UserTypeAccount:
		if actorAccountID == nil || *actorAccountID != order.AccountID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to account")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted")
	}

	return buildDetail(order), nil
}

func transitionAllowed(actorType enums.UserType, from, to enums.OrderStatus) bool {
	var table map[enums.OrderStatus][]enums.OrderStatus
	switch actorType {
	case enums.UserTypeAccount:
		table = accountTransitions
	case enums.UserTypeInternal:
		table = internalTransitions
	default:
		return false
	}
	for _, candidate := range table[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func buildActor(userID uuid.UUID, userType enums.UserType, accountID *uuid.UUID) *outbox.ActorRef {
	return &outbox.ActorRef{
		UserID:    userID,
		UserType:  string(userType),
		AccountID: accountID,
	}
}
