package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/user"
	"github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type RegisterUserCommand struct {
	Name  string
	Email string
}

func (c RegisterUserCommand) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", c.Name)
	}

	return nil
}

type RegisterUserResponse struct {
	UserID uuid.UUID
}

func HandleRegisterUser(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RegisterUserCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[RegisterUserCommand, RegisterUserResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "users", response.UserID.String())
	core.WriteCreated(w, r, location)
}

type RegisterUserCommandHandler struct {
	users user.Store
}

func NewRegisterUserCommandHandler(users user.Store) *RegisterUserCommandHandler {
	return &RegisterUserCommandHandler{users}
}

func (h *RegisterUserCommandHandler) Handle(
	ctx context.Context,
	request RegisterUserCommand,
) (RegisterUserResponse, error) {
	_, err := h.users.FindByName(ctx, request.Name)
	switch {
	case err == nil:
		return RegisterUserResponse{}, core.NewCommandError(
			http.StatusConflict,
			fmt.Errorf("user name '%s' is already taken", request.Name),
		)
	case !errors.Is(err, core.ErrNotFound):
		return RegisterUserResponse{}, err
	}

	u := domain.User{
		ID:    uuid.New(),
		Name:  request.Name,
		Email: request.Email,
	}

	if err := h.users.Save(ctx, u); err != nil {
		return RegisterUserResponse{}, err
	}

	return RegisterUserResponse{UserID: u.ID}, nil
}
