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

type EndSessionCommand struct {
	SessionID   uuid.UUID
	RequesterID uuid.UUID
}

func (c EndSessionCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.RequesterID == uuid.Nil {
		return fmt.Errorf("invalid RequesterID - '%s'", c.RequesterID)
	}

	return nil
}

type EndSessionResponse struct {
	PickedRestaurant string `json:"picked_restaurant"`
}

func HandleEndSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[EndSessionCommand](r)
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

	response, err := mediator.Send[EndSessionCommand, EndSessionResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

// EndSessionCommandHandler drives the one-way transition into the terminal
// state: persist the ended aggregate, then delete its restaurant rows as the
// cleanup side effect. The session row stays behind as a tombstone so later
// mutations fail with InvalidState instead of NotFound; DeleteSessionCommand
// removes it. The keyed mutex guarantees a proposal racing the termination
// either lands before the draw or fails with InvalidState.
type EndSessionCommandHandler struct {
	sessions    lunch.SessionStore
	restaurants lunch.RestaurantStore
	locks       *core.KeyedMutex
	rand        domain.Rand
}

func NewEndSessionCommandHandler(
	sessions lunch.SessionStore,
	restaurants lunch.RestaurantStore,
	locks *core.KeyedMutex,
	rand domain.Rand,
) *EndSessionCommandHandler {
	return &EndSessionCommandHandler{sessions, restaurants, locks, rand}
}

func (h *EndSessionCommandHandler) Handle(
	ctx context.Context,
	request EndSessionCommand,
) (EndSessionResponse, error) {
	unlock := h.locks.Lock(request.SessionID.String())
	defer unlock()

	session, err := h.sessions.FindByID(ctx, request.SessionID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return EndSessionResponse{}, errNotFound("session", request.SessionID)
	case err != nil:
		return EndSessionResponse{}, errUnavailable(err)
	}

	if session.Creator.ID != request.RequesterID {
		return EndSessionResponse{}, errForbidden("only the creator of the session can end the session")
	}

	picked, err := session.End(h.rand)
	if err != nil {
		return EndSessionResponse{}, errInvalidState(err)
	}

	if err := h.sessions.Save(ctx, session); err != nil {
		return EndSessionResponse{}, errUnavailable(err)
	}

	if err := h.restaurants.DeleteBySession(ctx, session.ID); err != nil {
		return EndSessionResponse{}, errUnavailable(err)
	}

	return EndSessionResponse{PickedRestaurant: picked.Name}, nil
}
