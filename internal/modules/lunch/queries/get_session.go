package queries

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

type GetSessionQuery struct {
	SessionID uuid.UUID
}

func (q GetSessionQuery) Validate() error {
	if q.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", q.SessionID)
	}

	return nil
}

func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'sessionID'"))
		return
	}

	response, err := mediator.Send[GetSessionQuery, domain.Session](
		r.Context(),
		GetSessionQuery{SessionID: sessionID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionQueryHandler struct {
	sessions lunch.SessionStore
}

func NewGetSessionQueryHandler(sessions lunch.SessionStore) *GetSessionQueryHandler {
	return &GetSessionQueryHandler{sessions}
}

func (h *GetSessionQueryHandler) Handle(
	ctx context.Context,
	request GetSessionQuery,
) (domain.Session, error) {
	session, err := h.sessions.FindByID(ctx, request.SessionID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return domain.Session{}, core.NewCommandError(
			http.StatusNotFound,
			domain.NotFoundError{Entity: "session", ID: request.SessionID.String()},
		)
	case err != nil:
		return domain.Session{}, err
	}

	return *session, nil
}
