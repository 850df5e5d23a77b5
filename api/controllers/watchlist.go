package controllers

import (
	"net/http"

	"github.com/campusbooks/campusbooks-backend/api/responses"
	"github.com/campusbooks/campusbooks-backend/api/validators"
	watchsvc "github.com/campusbooks/campusbooks-backend/internal/watchlist"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
	"github.com/campusbooks/campusbooks-backend/pkg/logger"
)

// UpdateWatchlist handles the add/remove mutation on the user's watchlist.
// The legacy path carries the user id; it must match the session.
func UpdateWatchlist(svc watchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "watchlist service unavailable"))
			return
		}

		actor, err := requirePathActor(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload watchsvc.UpdateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Update(r.Context(), actor, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
