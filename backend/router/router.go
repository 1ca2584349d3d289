package router

import (
	"io/fs"
	"net/http"

	"wine-cellar/backend/app/controllers"
	"wine-cellar/backend/app/metrics"
	"wine-cellar/backend/app/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Options struct {
	Log     zerolog.Logger
	Metrics bool
	Static  fs.FS
}

func NewRouter(httpCtrl *controllers.HTTPController, authCtrl *controllers.AuthController, invCtrl *controllers.InventoryController, mw *middleware.Auth, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(opts.Log))
	r.Use(middleware.Recover(opts.Log))
	if opts.Metrics {
		r.Use(middleware.Metrics)
	}

	// public
	r.Get("/", authCtrl.Root)
	r.Get("/login", authCtrl.LoginForm)
	r.Post("/login", authCtrl.Login)
	r.Get("/logout", authCtrl.Logout)
	r.Get("/healthz", httpCtrl.Health)
	if opts.Metrics {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}
	if opts.Static != nil {
		r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.FS(opts.Static))))
	}

	// inventory, login required
	r.Route("/inventory", func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Get("/", invCtrl.Index)
		r.Post("/", invCtrl.Create)
		r.Get("/results", invCtrl.Search)
		r.Get("/add", invCtrl.New)
		r.Get("/{id}", invCtrl.Show)
		r.Get("/{id}/edit", invCtrl.Edit)
		r.Put("/{id}", invCtrl.Update)
		r.Delete("/{id}", invCtrl.Delete)
	})

	// PUT and DELETE arrive as POST from HTML forms, so the override has to
	// run before chi picks a route.
	return middleware.MethodOverride(r)
}
