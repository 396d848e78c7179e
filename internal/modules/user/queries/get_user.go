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
	"github.com/google/uuid"
)

type GetUserQuery struct {
	UserID uuid.UUID
}

func (q GetUserQuery) Validate() error {
	if q.UserID == uuid.Nil {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	response, err := mediator.Send[GetUserQuery, domain.User](
		r.Context(),
		GetUserQuery{UserID: userID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetUserQueryHandler struct {
	users user.Store
}

func NewGetUserQueryHandler(users user.Store) *GetUserQueryHandler {
	return &GetUserQueryHandler{users}
}

func (h *GetUserQueryHandler) Handle(ctx context.Context, request GetUserQuery) (domain.User, error) {
	u, err := h.users.FindByID(ctx, request.UserID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.User{}, core.NewCommandError(http.StatusNotFound, fmt.Errorf("user not found"))
	case err != nil:
		return domain.User{}, err
	}

	return u, nil
}
