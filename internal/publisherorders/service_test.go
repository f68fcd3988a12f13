package publisherorders

import (
	"context"
	"errors"
	"strings"
	"testing"

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

type stubRepo struct {
	item    *models.OrderLineItem
	updates []map[string]any
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) FindLineItem(ctx context.Context, lineItemID uuid.UUID) (*models.OrderLineItem, error) {
	if s.item == nil || s.item.ID != lineItemID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.item
	return &copied, nil
}

func (s *stubRepo) ListAssigned(ctx context.Context, publisherID uuid.UUID, params pagination.Params, filters ListFilters) (*LineItemList, error) {
	return &LineItemList{LineItems: []LineItemView{}}, nil
}

func (s *stubRepo) UpdateLineItem(ctx context.Context, lineItemID uuid.UUID, updates map[string]any) error {
	s.updates = append(s.updates, updates)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type stubOutbox struct {
	emitted []outbox.DomainEvent
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.emitted = append(s.emitted, event)
	return nil
}

type stubEarnings struct {
	inputs []earnings.RecordPendingInput
	err    error
}

func (s *stubEarnings) RecordPending(ctx context.Context, input earnings.RecordPendingInput) (*earnings.EntryView, error) {
	s.inputs = append(s.inputs, input)
	if s.err != nil {
		return nil, s.err
	}
	return &earnings.EntryView{}, nil
}

type fixture struct {
	repo     *stubRepo
	outbox   *stubOutbox
	earnings *stubEarnings
	svc      Service
	item     *models.OrderLineItem
}

func newFixture(t *testing.T, status enums.PublisherOrderStatus) *fixture {
	t.Helper()
	publisherID := uuid.New()
	item := &models.OrderLineItem{
		ID:                  uuid.New(),
		OrderID:             uuid.New(),
		ClientID:            uuid.New(),
		TargetPageURL:       "https://example.com/pricing",
		AnchorText:          "pricing tools",
		PublisherID:         &publisherID,
		PublisherStatus:     status,
		WholesalePriceCents: 18000,
	}
	repo := &stubRepo{item: item}
	ob := &stubOutbox{}
	rec := &stubEarnings{}
	logg := logger.New(logger.Options{ServiceName: "test"})
	svc, err := NewService(repo, stubTx{}, ob, rec, logg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &fixture{repo: repo, outbox: ob, earnings: rec, svc: svc, item: item}
}

func strPtr(s string) *string { return &s }

func TestUpdateStatusUnassignedPublisherForbidden(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusAccepted)
	other := uuid.New()

	_, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusInProgress,
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: &other,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if len(f.repo.updates) != 0 || len(f.outbox.emitted) != 0 {
		t.Fatalf("expected no mutation for unassigned publisher")
	}
}

func TestUpdateStatusNonPublisherForbidden(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusAccepted)

	_, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusInProgress,
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypeInternal,
		ActorPublisher: f.item.PublisherID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestUpdateStatusSubmitRequiresPublishedURL(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusInProgress)

	_, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusSubmitted,
		PublishedURL:   strPtr("   "),
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: f.item.PublisherID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusDisallowedNamesBothStatuses(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusSubmitted)

	_, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusInProgress,
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: f.item.PublisherID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	msg := typed.Message()
	if !strings.Contains(msg, string(enums.PublisherOrderStatusSubmitted)) || !strings.Contains(msg, string(enums.PublisherOrderStatusInProgress)) {
		t.Fatalf("expected message to name both statuses, got %q", msg)
	}
}

func TestUpdateStatusSubmitStampsDeliveryAndRecordsEarnings(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusInProgress)

	view, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusSubmitted,
		PublishedURL:   strPtr("https://blog.example.net/guest-post"),
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: f.item.PublisherID,
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if view.PublisherStatus != enums.PublisherOrderStatusSubmitted {
		t.Fatalf("expected submitted, got %s", view.PublisherStatus)
	}
	if view.DeliveredAt == nil {
		t.Fatalf("expected delivered_at to be stamped")
	}
	if _, ok := f.repo.updates[0]["delivered_at"]; !ok {
		t.Fatalf("expected delivered_at in update map")
	}
	if len(f.outbox.emitted) != 1 || f.outbox.emitted[0].EventType != enums.EventLineItemStatusChanged {
		t.Fatalf("expected status changed event, got %+v", f.outbox.emitted)
	}

	if len(f.earnings.inputs) != 1 {
		t.Fatalf("expected one earnings entry, got %d", len(f.earnings.inputs))
	}
	recorded := f.earnings.inputs[0]
	if recorded.LineItemID != f.item.ID {
		t.Fatalf("earnings entry recorded for wrong line item")
	}
	if recorded.WholesalePriceCents != f.item.WholesalePriceCents {
		t.Fatalf("expected wholesale %d, got %d", f.item.WholesalePriceCents, recorded.WholesalePriceCents)
	}
	if recorded.Type != enums.EarningsTypeOrderCompletion {
		t.Fatalf("expected order completion entry, got %s", recorded.Type)
	}
}

func TestUpdateStatusStartDoesNotRecordEarnings(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusAccepted)

	_, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusInProgress,
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: f.item.PublisherID,
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if len(f.earnings.inputs) != 0 {
		t.Fatalf("expected no earnings entry before submission")
	}
}

func TestUpdateStatusNotifiedItemsOutsideAllowList(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusNotified)

	_, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusAccepted,
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: f.item.PublisherID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateStatusSucceedsWhenEarningsFails(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusInProgress)
	f.earnings.err = errors.New("ledger unavailable")

	view, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusSubmitted,
		PublishedURL:   strPtr("https://blog.example.net/guest-post"),
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: f.item.PublisherID,
	})
	if err != nil {
		t.Fatalf("expected status change to survive earnings failure, got %v", err)
	}
	if view.PublisherStatus != enums.PublisherOrderStatusSubmitted {
		t.Fatalf("expected submitted, got %s", view.PublisherStatus)
	}
	if len(f.earnings.inputs) != 1 {
		t.Fatalf("expected earnings recorder to be invoked")
	}
}

func TestUpdateStatusDuplicateEarningsIgnored(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusInProgress)
	f.earnings.err = pkgerrors.New(pkgerrors.CodeConflict, "earnings entry already recorded for line item")

	_, err := f.svc.UpdateStatus(context.Background(), UpdateStatusInput{
		LineItemID:     f.item.ID,
		TargetStatus:   enums.PublisherOrderStatusSubmitted,
		PublishedURL:   strPtr("https://blog.example.net/guest-post"),
		ActorUserID:    uuid.New(),
		ActorUserType:  enums.UserTypePublisher,
		ActorPublisher: f.item.PublisherID,
	})
	if err != nil {
		t.Fatalf("expected duplicate ledger entry to be ignored, got %v", err)
	}
}

func TestResolveInternalOnly(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusSubmitted)

	_, err := f.svc.Resolve(context.Background(), ResolveInput{
		LineItemID:    f.item.ID,
		TargetStatus:  enums.PublisherOrderStatusCompleted,
		ActorUserID:   uuid.New(),
		ActorUserType: enums.UserTypePublisher,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestResolveCompletesSubmittedItem(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusSubmitted)

	view, err := f.svc.Resolve(context.Background(), ResolveInput{
		LineItemID:    f.item.ID,
		TargetStatus:  enums.PublisherOrderStatusCompleted,
		ActorUserID:   uuid.New(),
		ActorUserType: enums.UserTypeInternal,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.PublisherStatus != enums.PublisherOrderStatusCompleted {
		t.Fatalf("expected completed, got %s", view.PublisherStatus)
	}
	if len(f.outbox.emitted) != 1 {
		t.Fatalf("expected one status changed event, got %d", len(f.outbox.emitted))
	}
}

func TestResolveRejectsUnsubmittedItem(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusInProgress)

	_, err := f.svc.Resolve(context.Background(), ResolveInput{
		LineItemID:    f.item.ID,
		TargetStatus:  enums.PublisherOrderStatusCompleted,
		ActorUserID:   uuid.New(),
		ActorUserType: enums.UserTypeInternal,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestListAssignedRequiresPublisherContext(t *testing.T) {
	f := newFixture(t, enums.PublisherOrderStatusNotified)

	_, err := f.svc.ListAssigned(context.Background(), nil, pagination.Params{Limit: 10}, ListFilters{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
