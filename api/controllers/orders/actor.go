package orders

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/api/middleware"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
)

type actor struct {
	userID    uuid.UUID
	userType  enums.UserType
	accountID *uuid.UUID
}

// actorFromRequest rebuilds the authenticated caller from the context the
// auth middleware seeded.
func actorFromRequest(r *http.Request) (actor, error) {
	ctx := r.Context()

	rawUserID := middleware.UserIDFromContext(ctx)
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	userType, err := enums.ParseUserType(middleware.UserTypeFromContext(ctx))
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user type missing")
	}

	var accountID *uuid.UUID
	if raw := middleware.AccountIDFromContext(ctx); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid account scope")
		}
		accountID = &parsed
	}

	return actor{
		userID:    userID,
		userType:  userType,
		accountID: accountID,
	}, nil
}
