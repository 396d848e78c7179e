package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch"
	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type CreateSessionCommand struct {
	CreatorID uuid.UUID
}

func (c CreateSessionCommand) Validate() error {
	if c.CreatorID == uuid.Nil {
		return fmt.Errorf("invalid CreatorID - '%s'", c.CreatorID)
	}

	return nil
}

type CreateSessionResponse struct {
	SessionID uuid.UUID
}

func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[CreateSessionCommand, CreateSessionResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "sessions", response.SessionID.String())
	core.WriteCreated(w, r, location)
}

type CreateSessionCommandHandler struct {
	sessions lunch.SessionStore
	users    lunch.UserDirectory
}

func NewCreateSessionCommandHandler(
	sessions lunch.SessionStore,
	users lunch.UserDirectory,
) *CreateSessionCommandHandler {
	return &CreateSessionCommandHandler{sessions, users}
}

func (h *CreateSessionCommandHandler) Handle(
	ctx context.Context,
	request CreateSessionCommand,
) (CreateSessionResponse, error) {
	creator, err := h.users.FindByID(ctx, request.CreatorID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return CreateSessionResponse{}, errNotFound("user", request.CreatorID)
	case err != nil:
		return CreateSessionResponse{}, errUnavailable(err)
	}

	session := domain.NewSession(creator)

	if err := h.sessions.Save(ctx, session); err != nil {
		return CreateSessionResponse{}, errUnavailable(err)
	}

	return CreateSessionResponse{SessionID: session.ID}, nil
}
