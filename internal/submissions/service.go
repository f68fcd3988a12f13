package submissions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the submission-level operations clients and staff perform.
type Service interface {
	UpdateInclusion(ctx context.Context, input UpdateInclusionInput) (*SubmissionView, error)
	Review(ctx context.Context, input ReviewInput) (*SubmissionView, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a submissions service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("submissions repository required")
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

func (s *service) UpdateInclusion(ctx context.Context, input UpdateInclusionInput) (*SubmissionView, error) {
	if input.SubmissionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.InclusionStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid inclusion status %q", input.InclusionStatus))
	}

	var view *SubmissionView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, submission, err := s.loadScoped(ctx, repo, input.OrderID, input.GroupID, input.SubmissionID, input.ActorUserType, input.ActorAccountID)
		if err != nil {
			return err
		}

		pool := input.InclusionStatus.Pool()
		now := time.Now()
		updates := map[string]any{
			"inclusion_status": input.InclusionStatus,
			"inclusion_order":  input.InclusionOrder,
			"selection_pool":   pool,
			"pool_rank":        input.InclusionOrder,
			"updated_at":       now,
		}

		// exclusion_reason is internal-only bookkeeping on excluded rows.
		// Anything else clears it; external attempts are silently dropped.
		reason := normalizeReason(input.ExclusionReason)
		if input.InclusionStatus == enums.InclusionStatusExcluded && input.ActorUserType == enums.UserTypeInternal && reason != nil {
			updates["exclusion_reason"] = reason
		} else {
			updates["exclusion_reason"] = nil
		}

		if err := repo.UpdateSubmission(ctx, submission.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update submission inclusion")
		}

		status := input.InclusionStatus
		submission.InclusionStatus = &status
		submission.InclusionOrder = input.InclusionOrder
		submission.SelectionPool = pool
		submission.PoolRank = input.InclusionOrder
		submission.UpdatedAt = now
		if v, ok := updates["exclusion_reason"].(*string); ok {
			submission.ExclusionReason = v
		} else {
			submission.ExclusionReason = nil
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventSubmissionInclusionChange,
			AggregateType: enums.AggregateSubmission,
			AggregateID:   submission.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorUserType, input.ActorAccountID),
			Data: InclusionChangedEvent{
				SubmissionID:    submission.ID,
				GroupID:         submission.GroupID,
				OrderID:         order.ID,
				InclusionStatus: input.InclusionStatus,
				SelectionPool:   pool,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		view = buildView(submission)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) Review(ctx context.Context, input ReviewInput) (*SubmissionView, error) {
	if input.SubmissionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid review action %q", input.Action))
	}

	var view *SubmissionView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, submission, err := s.loadScoped(ctx, repo, input.OrderID, input.GroupID, input.SubmissionID, input.ActorUserType, input.ActorAccountID)
		if err != nil {
			return err
		}

		targetStatus := input.Action.SubmissionStatus()
		reviewerType := enums.ReviewerTypeAccount
		var reviewedBy *uuid.UUID
		if input.ActorUserType == enums.UserTypeInternal {
			reviewerType = enums.ReviewerTypeInternal
			actorID := input.ActorUserID
			reviewedBy = &actorID
		}

		now := time.Now()
		updates := map[string]any{
			"submission_status":   targetStatus,
			"client_reviewed_at":  now,
			"client_reviewed_by":  reviewedBy,
			"client_review_notes": input.Notes,
			"updated_at":          now,
		}
		if err := repo.UpdateSubmission(ctx, submission.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update submission status")
		}

		review := &models.SubmissionReview{
			SubmissionID: submission.ID,
			Action:       input.Action,
			ReviewerType: reviewerType,
			ReviewedBy:   reviewedBy,
			Notes:        input.Notes,
		}
		if err := repo.AppendReview(ctx, review); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append submission review")
		}

		submission.SubmissionStatus = targetStatus
		submission.ClientReviewedAt = &now
		submission.ClientReviewedBy = reviewedBy
		submission.ClientReviewNotes = input.Notes
		submission.UpdatedAt = now

		event := outbox.DomainEvent{
			EventType:     enums.EventSubmissionReviewed,
			AggregateType: enums.AggregateSubmission,
			AggregateID:   submission.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorUserType, input.ActorAccountID),
			Data: ReviewedEvent{
				SubmissionID:     submission.ID,
				GroupID:          submission.GroupID,
				OrderID:          order.ID,
				Action:           input.Action,
				SubmissionStatus: targetStatus,
				ReviewerType:     reviewerType,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		view = buildView(submission)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// loadScoped resolves order, group, and submission with the same check
// ordering everywhere: order exists, caller permitted, submission exists,
// hierarchy consistent. Each failure is distinct.
func (s *service) loadScoped(
	ctx context.Context,
	repo Repository,
	orderID, groupID, submissionID uuid.UUID,
	actorType enums.UserType,
	actorAccountID *uuid.UUID,
) (*models.Order, *models.OrderSiteSubmission, error) {
	order, err := repo.FindOrder(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := authorizeOrderAccess(order, actorType, actorAccountID); err != nil {
		return nil, nil, err
	}

	submission, err := repo.FindSubmission(ctx, submissionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
	}

	group, err := repo.FindGroup(ctx, groupID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "order group not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order group")
	}
	if group.OrderID != order.ID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "order group not found")
	}
	if submission.GroupID != group.ID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
	}

	return order, submission, nil
}

func authorizeOrderAccess(order *models.Order, actorType enums.UserType, actorAccountID *uuid.UUID) error {
	switch actorType {
	case enums.UserTypeInternal:
		return nil
	case enums.UserTypeAccount:
		if actorAccountID == nil || *actorAccountID != order.AccountID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to account")
		}
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted")
	}
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func buildActor(userID uuid.UUID, userType enums.UserType, accountID *uuid.UUID) *outbox.ActorRef {
	return &outbox.ActorRef{
		UserID:    userID,
		UserType:  string(userType),
		AccountID: accountID,
	}
}
