package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/pizzaria-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
)

// currentUserID pulls the authenticated user out of the request context.
// Handlers behind the auth middleware should always find one; anything else
// is a misconfigured route.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return userID, nil
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier")
	}
	return id, nil
}
