package routes

import (
	"jobstream/internal/delivery/http/handler"
	"jobstream/internal/delivery/http/middleware"
	"jobstream/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Jobs          *handler.JobsHandler
	SavedJobs     *handler.SavedJobsHandler
	Applications  *handler.ApplicationsHandler
	Notifications *handler.NotificationsHandler
	Settings      *handler.SettingsHandler
	Profile       *handler.ProfileHandler
	WS            *ws.Handler

	AuthMiddleware *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))

	if r.WS != nil {
		app.Get("/ws/jobs", r.WS.HandleJobsWS)
	}
}

func (r *Registry) registerV1(v1 fiber.Router) {
	r.Auth.RegisterRoutes(v1.Group("/auth"))
	r.Jobs.RegisterRoutes(v1.Group("/jobs"))

	protected := v1.Group("", r.AuthMiddleware.Middleware())
	r.SavedJobs.RegisterRoutes(protected.Group("/saved-jobs"))
	r.Applications.RegisterRoutes(protected.Group("/applications"))
	r.Notifications.RegisterRoutes(protected.Group("/notifications"))
	r.Settings.RegisterRoutes(protected.Group("/settings"))
	r.Profile.RegisterRoutes(protected.Group("/profile"))
}
