// Package http wires the transport layer: the shared middleware chain, the
// public auth routes and the authenticated board surface.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	actionloghandler "github.com/L968/trecco-api/internal/actionlog/handler"
	boardhandler "github.com/L968/trecco-api/internal/board/handler"
	"github.com/L968/trecco-api/internal/platform/middleware"
	usershandler "github.com/L968/trecco-api/internal/users/handler"
)

// Dependencies carries the wired handlers into the router.
type Dependencies struct {
	Logger         *slog.Logger
	TokenValidator middleware.TokenValidator
	Users          *usershandler.Handler
	Boards         *boardhandler.Handler
	Logs           *actionloghandler.Handler
}

// NewRouter assembles the full route tree.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	deps.Users.Register(r)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth(deps.TokenValidator, deps.Logger))
		deps.Boards.Register(authed)
		deps.Logs.Register(authed)
	})

	return r
}
