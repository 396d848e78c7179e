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

type ProposeRestaurantCommand struct {
	SessionID      uuid.UUID
	UserID         uuid.UUID
	RestaurantName string
}

func (c ProposeRestaurantCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	if c.RestaurantName == "" {
		return fmt.Errorf("invalid RestaurantName - '%s'", c.RestaurantName)
	}

	return nil
}

func HandleProposeRestaurant(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[ProposeRestaurantCommand](r)
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

	_, err = mediator.Send[ProposeRestaurantCommand, core.Unit](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

// ProposeRestaurantCommandHandler is safe to invoke concurrently for the
// same session: the keyed mutex serializes the load-mutate-persist window so
// overlapping proposals neither lose updates nor mint duplicate entities for
// one name.
type ProposeRestaurantCommandHandler struct {
	sessions    lunch.SessionStore
	restaurants lunch.RestaurantStore
	users       lunch.UserDirectory
	locks       *core.KeyedMutex
}

func NewProposeRestaurantCommandHandler(
	sessions lunch.SessionStore,
	restaurants lunch.RestaurantStore,
	users lunch.UserDirectory,
	locks *core.KeyedMutex,
) *ProposeRestaurantCommandHandler {
	return &ProposeRestaurantCommandHandler{sessions, restaurants, users, locks}
}

func (h *ProposeRestaurantCommandHandler) Handle(
	ctx context.Context,
	request ProposeRestaurantCommand,
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

	if !session.Active {
		return core.Unit{}, errInvalidState(domain.InvalidStateError{
			Reason: "session already ended",
		})
	}

	proposer, err := h.users.FindByID(ctx, request.UserID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.Unit{}, errNotFound("user", request.UserID)
	case err != nil:
		return core.Unit{}, errUnavailable(err)
	}

	if !session.HasParticipant(proposer.ID) {
		return core.Unit{}, errForbidden("only participants of the session can propose restaurants")
	}

	existing, err := h.restaurants.FindByName(ctx, request.RestaurantName)
	switch {
	case err == nil:
		// The name already has an entity. A repeat proposal within this
		// session is a no-op; a name owned by another session never spawns
		// a duplicate either.
		if existing.SessionID != session.ID {
			return core.Unit{}, nil
		}
		if err := session.AddRestaurant(existing); err != nil {
			return core.Unit{}, errInvalidState(err)
		}
	case errors.Is(err, core.ErrNotFound):
		restaurant := domain.Restaurant{
			ID:        uuid.New(),
			Name:      request.RestaurantName,
			SessionID: session.ID,
		}

		if err := session.AddRestaurant(restaurant); err != nil {
			return core.Unit{}, errInvalidState(err)
		}

		if err := h.restaurants.Save(ctx, restaurant); err != nil {
			return core.Unit{}, errUnavailable(err)
		}
	default:
		return core.Unit{}, errUnavailable(err)
	}

	if err := h.sessions.Save(ctx, session); err != nil {
		return core.Unit{}, errUnavailable(err)
	}

	return core.Unit{}, nil
}
