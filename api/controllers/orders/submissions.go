package orders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/api/responses"
	"github.com/linkquarry/linkquarry-backend/api/validators"
	internalsubmissions "github.com/linkquarry/linkquarry-backend/internal/submissions"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/logger"
)

type inclusionRequest struct {
	InclusionStatus string  `json:"inclusion_status" validate:"required"`
	InclusionOrder  *int    `json:"inclusion_order,omitempty"`
	ExclusionReason *string `json:"exclusion_reason,omitempty"`
}

type reviewRequest struct {
	Action string  `json:"action" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateInclusion changes a submission's inclusion status within its group.
func UpdateInclusion(svc internalsubmissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submissions service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, groupID, submissionID, err := parseSubmissionPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body inclusionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseInclusionStatus(body.InclusionStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inclusion status"))
			return
		}

		view, err := svc.UpdateInclusion(r.Context(), internalsubmissions.UpdateInclusionInput{
			OrderID:         orderID,
			GroupID:         groupID,
			SubmissionID:    submissionID,
			InclusionStatus: status,
			InclusionOrder:  body.InclusionOrder,
			ExclusionReason: body.ExclusionReason,
			ActorUserID:     act.userID,
			ActorUserType:   act.userType,
			ActorAccountID:  act.accountID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Review records a client decision on a proposed submission.
func Review(svc internalsubmissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submissions service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, groupID, submissionID, err := parseSubmissionPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		action, err := enums.ParseReviewAction(body.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid review action"))
			return
		}

		view, err := svc.Review(r.Context(), internalsubmissions.ReviewInput{
			OrderID:        orderID,
			GroupID:        groupID,
			SubmissionID:   submissionID,
			Action:         action,
			Notes:          body.Notes,
			ActorUserID:    act.userID,
			ActorUserType:  act.userType,
			ActorAccountID: act.accountID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func parseSubmissionPath(r *http.Request) (orderID, groupID, submissionID uuid.UUID, err error) {
	orderID, err = parseOrderID(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, err
	}

	rawGroupID := strings.TrimSpace(chi.URLParam(r, "groupId"))
	if rawGroupID == "" {
		return uuid.Nil, uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "group id is required")
	}
	groupID, err = uuid.Parse(rawGroupID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid group id")
	}

	rawSubmissionID := strings.TrimSpace(chi.URLParam(r, "submissionId"))
	if rawSubmissionID == "" {
		return uuid.Nil, uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "submission id is required")
	}
	submissionID, err = uuid.Parse(rawSubmissionID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid submission id")
	}

	return orderID, groupID, submissionID, nil
}
