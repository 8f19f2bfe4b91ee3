// Package rest assembles the HTTP router.
package rest

import (
	"net/http"

	"jobtrack/interfaces/http/rest/handlers"
	"jobtrack/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	auth          *handlers.AuthHandler
	campaigns     *handlers.CampaignHandler
	applications  *handlers.ApplicationHandler
	tasks         *handlers.TaskHandler
	authenticator *middleware.Authenticator
	logger        *zap.Logger
	enableCORS    bool
}

// NewRouter creates a new Router
func NewRouter(
	auth *handlers.AuthHandler,
	campaigns *handlers.CampaignHandler,
	applications *handlers.ApplicationHandler,
	tasks *handlers.TaskHandler,
	authenticator *middleware.Authenticator,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		auth:          auth,
		campaigns:     campaigns,
		applications:  applications,
		tasks:         tasks,
		authenticator: authenticator,
		logger:        logger,
		enableCORS:    enableCORS,
	}
}

// Setup builds the route tree. Auth routes are public; everything under
// /api/campaigns requires a valid session.
func (rt *Router) Setup() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(rt.logger))
	r.Use(chimiddleware.Recoverer)

	if rt.enableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.auth.Register)
			r.Post("/login", rt.auth.Login)
			r.Post("/logout", rt.auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(rt.authenticator.Middleware)
				r.Get("/me", rt.auth.Me)
			})
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Use(rt.authenticator.Middleware)

			r.Post("/", rt.campaigns.CreateCampaign)
			r.Get("/", rt.campaigns.ListCampaigns)
			r.Get("/default", rt.campaigns.GetDefaultCampaign)

			r.Route("/{campaignID}/applications", func(r chi.Router) {
				r.Post("/", rt.applications.CreateApplication)
				r.Get("/", rt.applications.ListApplications)
				r.Post("/bulk-delete", rt.applications.BulkDeleteApplications)

				r.Route("/{applicationID}", func(r chi.Router) {
					r.Get("/", rt.applications.GetApplication)
					r.Put("/", rt.applications.UpdateApplication)
					r.Delete("/", rt.applications.DeleteApplication)

					r.Post("/notes", rt.applications.AddNote)
					r.Put("/notes/{noteID}", rt.applications.UpdateNote)
					r.Delete("/notes/{noteID}", rt.applications.DeleteNote)

					r.Route("/tasks", func(r chi.Router) {
						r.Post("/", rt.tasks.CreateTask)

						r.Route("/{taskID}", func(r chi.Router) {
							r.Get("/", rt.tasks.GetTask)
							r.Put("/", rt.tasks.UpdateTask)

							r.Post("/notes", rt.tasks.AddNote)
							r.Put("/notes/{noteID}", rt.tasks.UpdateNote)
							r.Delete("/notes/{noteID}", rt.tasks.DeleteNote)
						})
					})
				})
			})
		})
	})

	return r
}
