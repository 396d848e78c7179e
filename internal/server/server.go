package server

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"strconv"

	"github.com/lunchpick/lunchpick/internal/config"
	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch"
	lunchcommands "github.com/lunchpick/lunchpick/internal/modules/lunch/commands"
	lunchdomain "github.com/lunchpick/lunchpick/internal/modules/lunch/domain"
	lunchqueries "github.com/lunchpick/lunchpick/internal/modules/lunch/queries"
	"github.com/lunchpick/lunchpick/internal/modules/user"
	usercommands "github.com/lunchpick/lunchpick/internal/modules/user/commands"
	userdomain "github.com/lunchpick/lunchpick/internal/modules/user/domain"
	userqueries "github.com/lunchpick/lunchpick/internal/modules/user/queries"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = (*HTTPServer)(nil)

// HTTPServer is the composition root. It owns the database handle, wires
// every command and query handler into the mediator, and exposes the routes.
type HTTPServer struct {
	server *http.Server
	db     *sql.DB
}

func NewHTTPServer(conf config.Config) (*HTTPServer, error) {
	baseCtx := context.Background()

	core.SetLogger(conf.Logger)

	db, err := sql.Open("postgres", conf.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, conf.MigrationsPath); err != nil {
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: conf.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: conf.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	users := user.NewPostgresStore(db)
	sessions := lunch.NewPostgresSessionStore(db)
	restaurants := lunch.NewPostgresRestaurantStore(db)
	locks := core.NewKeyedMutex()

	// handler registration

	// user

	registerUserHandler := usercommands.NewRegisterUserCommandHandler(users)
	err = mediator.RegisterRequestHandler[usercommands.RegisterUserCommand, usercommands.RegisterUserResponse](
		registerUserHandler,
	)
	if err != nil {
		return nil, err
	}

	deleteUserHandler := usercommands.NewDeleteUserCommandHandler(users)
	err = mediator.RegisterRequestHandler[usercommands.DeleteUserCommand, core.Unit](
		deleteUserHandler,
	)
	if err != nil {
		return nil, err
	}

	getUsersHandler := userqueries.NewGetUsersQueryHandler(users)
	err = mediator.RegisterRequestHandler[userqueries.GetUsersQuery, []userdomain.User](
		getUsersHandler,
	)
	if err != nil {
		return nil, err
	}

	getUserHandler := userqueries.NewGetUserQueryHandler(users)
	err = mediator.RegisterRequestHandler[userqueries.GetUserQuery, userdomain.User](
		getUserHandler,
	)
	if err != nil {
		return nil, err
	}

	getUserByNameHandler := userqueries.NewGetUserByNameQueryHandler(users)
	err = mediator.RegisterRequestHandler[userqueries.GetUserByNameQuery, userdomain.User](
		getUserByNameHandler,
	)
	if err != nil {
		return nil, err
	}

	// lunch

	createSessionHandler := lunchcommands.NewCreateSessionCommandHandler(sessions, users)
	err = mediator.RegisterRequestHandler[lunchcommands.CreateSessionCommand, lunchcommands.CreateSessionResponse](
		createSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	inviteUserHandler := lunchcommands.NewInviteUserCommandHandler(sessions, users, locks)
	err = mediator.RegisterRequestHandler[lunchcommands.InviteUserCommand, core.Unit](
		inviteUserHandler,
	)
	if err != nil {
		return nil, err
	}

	proposeRestaurantHandler := lunchcommands.NewProposeRestaurantCommandHandler(
		sessions,
		restaurants,
		users,
		locks,
	)
	err = mediator.RegisterRequestHandler[lunchcommands.ProposeRestaurantCommand, core.Unit](
		proposeRestaurantHandler,
	)
	if err != nil {
		return nil, err
	}

	endSessionHandler := lunchcommands.NewEndSessionCommandHandler(
		sessions,
		restaurants,
		locks,
		lunchdomain.DefaultRand(),
	)
	err = mediator.RegisterRequestHandler[lunchcommands.EndSessionCommand, lunchcommands.EndSessionResponse](
		endSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	deleteSessionHandler := lunchcommands.NewDeleteSessionCommandHandler(sessions, restaurants, locks)
	err = mediator.RegisterRequestHandler[lunchcommands.DeleteSessionCommand, core.Unit](
		deleteSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	getSessionHandler := lunchqueries.NewGetSessionQueryHandler(sessions)
	err = mediator.RegisterRequestHandler[lunchqueries.GetSessionQuery, lunchdomain.Session](
		getSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	getSessionsHandler := lunchqueries.NewGetSessionsQueryHandler(sessions)
	err = mediator.RegisterRequestHandler[lunchqueries.GetSessionsQuery, []lunchdomain.Session](
		getSessionsHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	r := chi.NewRouter()
	r.Use(core.CorrelationIDMiddleware)

	r.Get("/users", userqueries.HandleGetUsers)
	r.Get("/users/{id}", userqueries.HandleGetUser)
	r.Get("/users/name/{name}", userqueries.HandleGetUserByName)
	r.Post("/users", usercommands.HandleRegisterUser)
	r.Delete("/users/{id}", usercommands.HandleDeleteUser)

	r.Get("/sessions", lunchqueries.HandleGetSessions)
	r.Get("/sessions/{sessionID}", lunchqueries.HandleGetSession)
	r.Post("/sessions", lunchcommands.HandleCreateSession)
	r.Post("/sessions/{sessionID}/invitations", lunchcommands.HandleInviteUser)
	r.Post("/sessions/{sessionID}/restaurants", lunchcommands.HandleProposeRestaurant)
	r.Put("/sessions/{sessionID}/actions/end", lunchcommands.HandleEndSession)
	r.Delete("/sessions/{sessionID}", lunchcommands.HandleDeleteSession)

	server := http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(conf.Port)),
		Handler: r,
	}

	return &HTTPServer{server: &server, db: db}, nil
}

func (s *HTTPServer) Start() error {
	return s.server.ListenAndServe()
}

func (s *HTTPServer) Stop() error {
	if err := s.server.Close(); err != nil {
		return err
	}
	return s.db.Close()
}
