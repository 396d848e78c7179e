package queries

import (
	"context"
	"net/http"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/user"
	"github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/eskrenkovic/mediator-go"
)

type GetUsersQuery struct{}

func HandleGetUsers(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[GetUsersQuery, []domain.User](r.Context(), GetUsersQuery{})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetUsersQueryHandler struct {
	users user.Store
}

func NewGetUsersQueryHandler(users user.Store) *GetUsersQueryHandler {
	return &GetUsersQueryHandler{users}
}

func (h *GetUsersQueryHandler) Handle(ctx context.Context, _ GetUsersQuery) ([]domain.User, error) {
	return h.users.FindAll(ctx)
}
