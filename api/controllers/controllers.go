package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusbooks/campusbooks-backend/api/middleware"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
)

// actorID resolves the authenticated user from the request context. Auth
// middleware guarantees it for protected routes.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context")
	}
	return id, nil
}

// pathUUID parses a uuid path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// requirePathActor resolves the actor and enforces that the legacy user id
// path parameter matches the session. The token decides who acts; the path
// parameter is only checked for agreement.
func requirePathActor(r *http.Request, name string) (uuid.UUID, error) {
	actor, err := actorID(r)
	if err != nil {
		return uuid.Nil, err
	}
	target, err := pathUUID(r, name)
	if err != nil {
		return uuid.Nil, err
	}
	if target != actor {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot act on behalf of another user")
	}
	return actor, nil
}
