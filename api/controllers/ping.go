package controllers

import (
	"net/http"

	"github.com/linkquarry/linkquarry-backend/api/middleware"
	"github.com/linkquarry/linkquarry-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if userType := middleware.UserTypeFromContext(r.Context()); userType != "" {
			payload["user_type"] = userType
		}
		responses.WriteSuccess(w, payload)
	}
}
