package queries

import (
	"context"
	"net/http"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch"
	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"

	"github.com/eskrenkovic/mediator-go"
)

type GetSessionsQuery struct{}

func HandleGetSessions(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[GetSessionsQuery, []domain.Session](r.Context(), GetSessionsQuery{})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionsQueryHandler struct {
	sessions lunch.SessionStore
}

func NewGetSessionsQueryHandler(sessions lunch.SessionStore) *GetSessionsQueryHandler {
	return &GetSessionsQueryHandler{sessions}
}

func (h *GetSessionsQueryHandler) Handle(
	ctx context.Context,
	_ GetSessionsQuery,
) ([]domain.Session, error) {
	sessions, err := h.sessions.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return core.Map(sessions, func(s *domain.Session) domain.Session {
		return *s
	}), nil
}
