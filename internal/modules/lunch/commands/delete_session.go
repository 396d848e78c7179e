package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch"
	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type DeleteSessionCommand struct {
	SessionID   uuid.UUID
	RequesterID uuid.UUID
}

func (c DeleteSessionCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.RequesterID == uuid.Nil {
		return fmt.Errorf("invalid RequesterID - '%s'", c.RequesterID)
	}

	return nil
}

func HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[DeleteSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'sessionID'"))
		return
	}
	command.SessionID = sessionID

	_, err = mediator.Send[DeleteSessionCommand, core.Unit](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

// DeleteSessionCommandHandler removes the tombstone an ended session leaves
// behind, together with any remaining restaurant rows and the coordination
// lock for the id.
type DeleteSessionCommandHandler struct {
	sessions    lunch.SessionStore
	restaurants lunch.RestaurantStore
	locks       *core.KeyedMutex
}

func NewDeleteSessionCommandHandler(
	sessions lunch.SessionStore,
	restaurants lunch.RestaurantStore,
	locks *core.KeyedMutex,
) *DeleteSessionCommandHandler {
	return &DeleteSessionCommandHandler{sessions, restaurants, locks}
}

func (h *DeleteSessionCommandHandler) Handle(
	ctx context.Context,
	request DeleteSessionCommand,
) (core.Unit, error) {
	unlock := h.locks.Lock(request.SessionID.String())
	defer unlock()

	session, err := h.sessions.FindByID(ctx, request.SessionID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.Unit{}, errNotFound("session", request.SessionID)
	case err != nil:
		return core.Unit{}, errUnavailable(err)
	}

	if session.Creator.ID != request.RequesterID {
		return core.Unit{}, errForbidden("only the creator of the session can delete the session")
	}

	if session.Active {
		return core.Unit{}, errInvalidState(domain.InvalidStateError{
			Reason: "cannot delete a session that has not ended",
		})
	}

	if err := h.restaurants.DeleteBySession(ctx, session.ID); err != nil {
		return core.Unit{}, errUnavailable(err)
	}

	if err := h.sessions.Delete(ctx, session.ID); err != nil {
		return core.Unit{}, errUnavailable(err)
	}

	h.locks.Forget(request.SessionID.String())

	return core.Unit{}, nil
}
