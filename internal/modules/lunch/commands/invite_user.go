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

type InviteUserCommand struct {
	SessionID uuid.UUID
	InviterID uuid.UUID
	InviteeID uuid.UUID
}

func (c InviteUserCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.InviterID == uuid.Nil {
		return fmt.Errorf("invalid InviterID - '%s'", c.InviterID)
	}

	if c.InviteeID == uuid.Nil {
		return fmt.Errorf("invalid InviteeID - '%s'", c.InviteeID)
	}

	return nil
}

func HandleInviteUser(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[InviteUserCommand](r)
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

	_, err = mediator.Send[InviteUserCommand, core.Unit](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

type InviteUserCommandHandler struct {
	sessions lunch.SessionStore
	users    lunch.UserDirectory
	locks    *core.KeyedMutex
}

func NewInviteUserCommandHandler(
	sessions lunch.SessionStore,
	users lunch.UserDirectory,
	locks *core.KeyedMutex,
) *InviteUserCommandHandler {
	return &InviteUserCommandHandler{sessions, users, locks}
}

func (h *InviteUserCommandHandler) Handle(
	ctx context.Context,
	request InviteUserCommand,
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
			Reason: "cannot invite a user to a session that has already ended",
		})
	}

	inviter, err := h.users.FindByID(ctx, request.InviterID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.Unit{}, errNotFound("user", request.InviterID)
	case err != nil:
		return core.Unit{}, errUnavailable(err)
	}

	if session.Creator.ID != inviter.ID {
		return core.Unit{}, errForbidden("only the session creator can invite users")
	}

	invitee, err := h.users.FindByID(ctx, request.InviteeID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.Unit{}, errNotFound("user", request.InviteeID)
	case err != nil:
		return core.Unit{}, errUnavailable(err)
	}

	if err := session.AddParticipant(invitee); err != nil {
		return core.Unit{}, errInvalidState(err)
	}

	if err := h.sessions.Save(ctx, session); err != nil {
		return core.Unit{}, errUnavailable(err)
	}

	return core.Unit{}, nil
}
