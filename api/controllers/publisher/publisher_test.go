package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/api/middleware"
	internalearnings "github.com/linkquarry/linkquarry-backend/internal/earnings"
	internalpub "github.com/linkquarry/linkquarry-backend/internal/publisherorders"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/pagination"
)

type stubPublisherService struct {
	updateStatus func(ctx context.Context, input internalpub.UpdateStatusInput) (*internalpub.LineItemView, error)
	resolve      func(ctx context.Context, input internalpub.ResolveInput) (*internalpub.LineItemView, error)
	listAssigned func(ctx context.Context, publisherID *uuid.UUID, params pagination.Params, filters internalpub.ListFilters) (*internalpub.LineItemList, error)
}

func (s *stubPublisherService) UpdateStatus(ctx context.Context, input internalpub.UpdateStatusInput) (*internalpub.LineItemView, error) {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, input)
	}
	return &internalpub.LineItemView{}, nil
}

func (s *stubPublisherService) Resolve(ctx context.Context, input internalpub.ResolveInput) (*internalpub.LineItemView, error) {
	if s.resolve != nil {
		return s.resolve(ctx, input)
	}
	return &internalpub.LineItemView{}, nil
}

func (s *stubPublisherService) ListAssigned(ctx context.Context, publisherID *uuid.UUID, params pagination.Params, filters internalpub.ListFilters) (*internalpub.LineItemList, error) {
	if s.listAssigned != nil {
		return s.listAssigned(ctx, publisherID, params, filters)
	}
	return &internalpub.LineItemList{}, nil
}

type stubEarningsService struct {
	ledger func(ctx context.Context, publisherID uuid.UUID) (*internalearnings.LedgerView, error)
}

func (s *stubEarningsService) RecordPending(ctx context.Context, input internalearnings.RecordPendingInput) (*internalearnings.EntryView, error) {
	return nil, nil
}

func (s *stubEarningsService) ListForPublisher(ctx context.Context, publisherID uuid.UUID) (*internalearnings.LedgerView, error) {
	if s.ledger != nil {
		return s.ledger(ctx, publisherID)
	}
	return &internalearnings.LedgerView{}, nil
}

func seedPublisherContext(req *http.Request, userID, publisherID uuid.UUID) *http.Request {
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = req.WithContext(middleware.WithUserType(req.Context(), string(enums.UserTypePublisher)))
	req = req.WithContext(middleware.WithPublisherID(req.Context(), publisherID.String()))
	return req
}

func seedLineItemParam(req *http.Request, lineItemID uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("lineItemId", lineItemID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateStatusForwardsPublishedURL(t *testing.T) {
	userID := uuid.New()
	publisherID := uuid.New()
	lineItemID := uuid.New()
	svc := &stubPublisherService{
		updateStatus: func(ctx context.Context, input internalpub.UpdateStatusInput) (*internalpub.LineItemView, error) {
			if input.LineItemID != lineItemID {
				t.Fatalf("unexpected line item id %s", input.LineItemID)
			}
			if input.TargetStatus != enums.PublisherOrderStatusSubmitted {
				t.Fatalf("status not parsed, got %s", input.TargetStatus)
			}
			if input.PublishedURL == nil || *input.PublishedURL != "https://blog.example.net/guest-post" {
				t.Fatalf("published url not forwarded")
			}
			if input.ActorPublisher == nil || *input.ActorPublisher != publisherID {
				t.Fatalf("publisher scope not forwarded")
			}
			return &internalpub.LineItemView{ID: lineItemID, PublisherStatus: input.TargetStatus}, nil
		},
	}

	handler := UpdateStatus(svc, nil)
	body := strings.NewReader(`{"status":"submitted","published_url":"https://blog.example.net/guest-post"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/publisher/orders/"+lineItemID.String()+"/status", body)
	req = seedLineItemParam(req, lineItemID)
	req = seedPublisherContext(req, userID, publisherID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data internalpub.LineItemView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PublisherStatus != enums.PublisherOrderStatusSubmitted {
		t.Fatalf("unexpected status in response: %s", envelope.Data.PublisherStatus)
	}
}

func TestUpdateStatusMalformedURLRejected(t *testing.T) {
	lineItemID := uuid.New()
	handler := UpdateStatus(&stubPublisherService{}, nil)
	body := strings.NewReader(`{"status":"submitted","published_url":"not a url"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/publisher/orders/"+lineItemID.String()+"/status", body)
	req = seedLineItemParam(req, lineItemID)
	req = seedPublisherContext(req, uuid.New(), uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateStatusStateConflictMapsTo422(t *testing.T) {
	lineItemID := uuid.New()
	svc := &stubPublisherService{
		updateStatus: func(ctx context.Context, input internalpub.UpdateStatusInput) (*internalpub.LineItemView, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot transition line item from submitted to in_progress")
		},
	}

	handler := UpdateStatus(svc, nil)
	body := strings.NewReader(`{"status":"in_progress"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/publisher/orders/"+lineItemID.String()+"/status", body)
	req = seedLineItemParam(req, lineItemID)
	req = seedPublisherContext(req, uuid.New(), uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestListOrdersParsesStatusFilter(t *testing.T) {
	publisherID := uuid.New()
	svc := &stubPublisherService{
		listAssigned: func(ctx context.Context, incoming *uuid.UUID, params pagination.Params, filters internalpub.ListFilters) (*internalpub.LineItemList, error) {
			if incoming == nil || *incoming != publisherID {
				t.Fatalf("publisher scope not forwarded")
			}
			if filters.Status == nil || *filters.Status != enums.PublisherOrderStatusAccepted {
				t.Fatalf("status filter not parsed")
			}
			return &internalpub.LineItemList{LineItems: []internalpub.LineItemView{{ID: uuid.New()}}}, nil
		},
	}

	handler := ListOrders(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/publisher/orders?status=accepted", nil)
	req = seedPublisherContext(req, uuid.New(), publisherID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestEarningsRequiresPublisherScope(t *testing.T) {
	handler := Earnings(&stubEarningsService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/publisher/earnings", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New().String()))
	req = req.WithContext(middleware.WithUserType(req.Context(), string(enums.UserTypePublisher)))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestEarningsReturnsLedger(t *testing.T) {
	publisherID := uuid.New()
	svc := &stubEarningsService{
		ledger: func(ctx context.Context, incoming uuid.UUID) (*internalearnings.LedgerView, error) {
			if incoming != publisherID {
				t.Fatalf("unexpected publisher id %s", incoming)
			}
			return &internalearnings.LedgerView{
				Entries: []internalearnings.EntryView{{ID: uuid.New(), NetCents: 7000, Status: enums.EarningsStatusPending}},
				Totals:  internalearnings.Totals{PendingNetCents: 7000},
			}, nil
		},
	}

	handler := Earnings(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/publisher/earnings", nil)
	req = seedPublisherContext(req, uuid.New(), publisherID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data internalearnings.LedgerView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Totals.PendingNetCents != 7000 {
		t.Fatalf("unexpected pending total %d", envelope.Data.Totals.PendingNetCents)
	}
}
