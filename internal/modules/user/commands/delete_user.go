package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/user"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type DeleteUserCommand struct {
	UserID uuid.UUID
}

func (c DeleteUserCommand) Validate() error {
	if c.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	_, err = mediator.Send[DeleteUserCommand, core.Unit](
		r.Context(),
		DeleteUserCommand{UserID: userID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

type DeleteUserCommandHandler struct {
	users user.Store
}

func NewDeleteUserCommandHandler(users user.Store) *DeleteUserCommandHandler {
	return &DeleteUserCommandHandler{users}
}

func (h *DeleteUserCommandHandler) Handle(
	ctx context.Context,
	request DeleteUserCommand,
) (core.Unit, error) {
	err := h.users.Delete(ctx, request.UserID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.Unit{}, core.NewCommandError(http.StatusNotFound, fmt.Errorf("user not found"))
	case err != nil:
		return core.Unit{}, err
	}

	return core.Unit{}, nil
}
