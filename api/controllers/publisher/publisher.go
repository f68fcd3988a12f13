package publisher

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/api/middleware"
	"github.com/linkquarry/linkquarry-backend/api/responses"
	"github.com/linkquarry/linkquarry-backend/api/validators"
	internalearnings "github.com/linkquarry/linkquarry-backend/internal/earnings"
	internalpub "github.com/linkquarry/linkquarry-backend/internal/publisherorders"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/logger"
	"github.com/linkquarry/linkquarry-backend/pkg/pagination"
)

type statusRequest struct {
	Status       string  `json:"status" validate:"required"`
	PublishedURL *string `json:"published_url,omitempty" validate:"omitempty,url"`
	Notes        *string `json:"notes,omitempty"`
}

type resolveRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

type actor struct {
	userID      uuid.UUID
	userType    enums.UserType
	publisherID *uuid.UUID
}

func actorFromRequest(r *http.Request) (actor, error) {
	ctx := r.Context()

	userID, err := uuid.Parse(middleware.UserIDFromContext(ctx))
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	userType, err := enums.ParseUserType(middleware.UserTypeFromContext(ctx))
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user type missing")
	}

	var publisherID *uuid.UUID
	if raw := middleware.PublisherIDFromContext(ctx); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid publisher scope")
		}
		publisherID = &parsed
	}

	return actor{
		userID:      userID,
		userType:    userType,
		publisherID: publisherID,
	}, nil
}

// ListOrders returns the line items assigned to the calling publisher.
func ListOrders(svc internalpub.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "publisher orders service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		var filters internalpub.ListFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParsePublisherOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.ListAssigned(r.Context(), act.publisherID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpdateStatus applies a publisher-driven line item status change.
func UpdateStatus(svc internalpub.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "publisher orders service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineItemID, err := parseLineItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body statusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParsePublisherOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid publisher status"))
			return
		}

		view, err := svc.UpdateStatus(r.Context(), internalpub.UpdateStatusInput{
			LineItemID:     lineItemID,
			TargetStatus:   status,
			PublishedURL:   body.PublishedURL,
			Notes:          body.Notes,
			ActorUserID:    act.userID,
			ActorUserType:  act.userType,
			ActorPublisher: act.publisherID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Resolve lets staff complete or reject submitted line items.
func Resolve(svc internalpub.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "publisher orders service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineItemID, err := parseLineItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body resolveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParsePublisherOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid publisher status"))
			return
		}

		view, err := svc.Resolve(r.Context(), internalpub.ResolveInput{
			LineItemID:    lineItemID,
			TargetStatus:  status,
			Notes:         body.Notes,
			ActorUserID:   act.userID,
			ActorUserType: act.userType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Earnings returns the publisher's ledger with per-status totals.
func Earnings(svc internalearnings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "earnings service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.publisherID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "publisher context missing"))
			return
		}

		ledger, err := svc.ListForPublisher(r.Context(), *act.publisherID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ledger)
	}
}

func parseLineItemID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "lineItemId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "line item id is required")
	}
	lineItemID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line item id")
	}
	return lineItemID, nil
}
