package earnings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbpkg "github.com/linkquarry/linkquarry-backend/pkg/db"
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

// Service manages the publisher earnings ledger.
type Service interface {
	RecordPending(ctx context.Context, input RecordPendingInput) (*EntryView, error)
	ListForPublisher(ctx context.Context, publisherID uuid.UUID) (*LedgerView, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	outbox     outboxPublisher
	feePercent decimal.Decimal
}

// NewService builds an earnings service. feePercent is the platform cut
// expressed as a percentage, e.g. "30" or "12.5".
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, feePercent string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("earnings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	pct, err := decimal.NewFromString(feePercent)
	if err != nil {
		return nil, fmt.Errorf("parsing platform fee percent %q: %w", feePercent, err)
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("platform fee percent %s out of range", pct)
	}
	return &service{
		repo:       repo,
		tx:         tx,
		outbox:     outbox,
		feePercent: pct,
	}, nil
}

func (s *service) RecordPending(ctx context.Context, input RecordPendingInput) (*EntryView, error) {
	if input.PublisherID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "publisher id required")
	}
	if input.OrderID == uuid.Nil || input.LineItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order and line item ids required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid earnings type %q", input.Type))
	}
	if input.WholesalePriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wholesale price cannot be negative")
	}

	gross, fee, net := s.splitAmounts(input.WholesalePriceCents)

	var view *EntryView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.ExistsForLineItem(ctx, input.LineItemID, input.Type)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing earnings entry")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "earnings entry already recorded for line item")
		}

		entry := &models.EarningsEntry{
			PublisherID:      input.PublisherID,
			OrderID:          input.OrderID,
			LineItemID:       input.LineItemID,
			Type:             input.Type,
			Status:           enums.EarningsStatusPending,
			GrossCents:       gross,
			PlatformFeeCents: fee,
			NetCents:         net,
		}
		if err := repo.Insert(ctx, entry); err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_earnings_line_item_type") {
				return pkgerrors.New(pkgerrors.CodeConflict, "earnings entry already recorded for line item")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert earnings entry")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventEarningsRecorded,
			AggregateType: enums.AggregateEarningsEntry,
			AggregateID:   entry.ID,
			Version:       1,
			Actor: &outbox.ActorRef{
				UserID:   input.ActorUserID,
				UserType: string(input.ActorUserType),
			},
			Data: RecordedEvent{
				EntryID:     entry.ID,
				PublisherID: entry.PublisherID,
				OrderID:     entry.OrderID,
				LineItemID:  entry.LineItemID,
				Type:        entry.Type,
				NetCents:    entry.NetCents,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		v := buildEntryView(*entry)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) ListForPublisher(ctx context.Context, publisherID uuid.UUID) (*LedgerView, error) {
	if publisherID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "publisher context missing")
	}

	entries, err := s.repo.ListForPublisher(ctx, publisherID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list earnings entries")
	}

	ledger := &LedgerView{Entries: make([]EntryView, 0, len(entries))}
	for _, entry := range entries {
		ledger.Entries = append(ledger.Entries, buildEntryView(entry))
		switch entry.Status {
		case enums.EarningsStatusPending:
			ledger.Totals.PendingNetCents += entry.NetCents
		case enums.EarningsStatusConfirmed:
			ledger.Totals.ConfirmedNetCents += entry.NetCents
		case enums.EarningsStatusPaid:
			ledger.Totals.PaidNetCents += entry.NetCents
		}
	}
	return ledger, nil
}

// splitAmounts divides a wholesale price into gross, platform fee, and net.
// The fee is rounded half up to a whole cent; net absorbs the remainder so
// gross always equals fee plus net.
func (s *service) splitAmounts(wholesaleCents int) (gross, fee, net int) {
	gross = wholesaleCents
	grossDec := decimal.NewFromInt(int64(gross))
	feeDec := grossDec.Mul(s.feePercent).Div(decimal.NewFromInt(100)).Round(0)
	fee = int(feeDec.IntPart())
	net = gross - fee
	return gross, fee, net
}
