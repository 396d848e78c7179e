package queries

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/user"
	"github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

type GetUserByNameQuery struct {
	Name string
}

func (q GetUserByNameQuery) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", q.Name)
	}

	return nil
}

func HandleGetUserByName(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[GetUserByNameQuery, domain.User](
		r.Context(),
		GetUserByNameQuery{Name: chi.URLParam(r, "name")},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetUserByNameQueryHandler struct {
	users user.Store
}

func NewGetUserByNameQueryHandler(users user.Store) *GetUserByNameQueryHandler {
	return &GetUserByNameQueryHandler{users}
}

func (h *GetUserByNameQueryHandler) Handle(ctx context.Context, request GetUserByNameQuery) (domain.User, error) {
	u, err := h.users.FindByName(ctx, request.Name)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.User{}, core.NewCommandError(http.StatusNotFound, fmt.Errorf("user not found"))
	case err != nil:
		return domain.User{}, err
	}

	return u, nil
}
