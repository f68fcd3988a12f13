package middleware

import (
	"net/http"

	"github.com/linkquarry/linkquarry-backend/api/responses"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/logger"
)

// RequireUserType rejects callers whose user type is not in the allow list.
func RequireUserType(logg *logger.Logger, allowed ...enums.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := UserTypeFromContext(r.Context())
			for _, t := range allowed {
				if current == string(t) {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "user type not permitted"))
		})
	}
}
