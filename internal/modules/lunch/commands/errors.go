package commands

import (
	"net/http"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"

	"github.com/google/uuid"
)

// The handlers wrap domain errors in core.CommandError so the HTTP layer can
// resolve the status code while tests keep matching the domain kind through
// errors.As.

func errNotFound(entity string, id uuid.UUID) error {
	return core.NewCommandError(
		http.StatusNotFound,
		domain.NotFoundError{Entity: entity, ID: id.String()},
	)
}

func errForbidden(reason string) error {
	return core.NewCommandError(http.StatusForbidden, domain.ForbiddenError{Reason: reason})
}

func errInvalidState(err error) error {
	return core.NewCommandError(http.StatusConflict, err)
}

func errUnavailable(err error) error {
	return core.NewCommandError(http.StatusServiceUnavailable, domain.UnavailableError{Cause: err})
}
