package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quikapp/user-service/api/controllers"
	"github.com/quikapp/user-service/api/middleware"
	usersvc "github.com/quikapp/user-service/internal/users"
	"github.com/quikapp/user-service/pkg/config"
	"github.com/quikapp/user-service/pkg/logger"
	"github.com/quikapp/user-service/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	userService usersvc.Service,
	readiness map[string]controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.Authenticate(cfg.JWT, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth(logg))

		r.Post("/", controllers.CreateUser(userService, logg))
		r.Get("/search", controllers.SearchUsers(userService, logg))
		r.Post("/batch", controllers.BatchGetUsers(userService, logg))
		r.Get("/by-email/{email}", controllers.GetUserByEmail(userService, logg))
		r.Get("/by-username/{username}", controllers.GetUserByUsername(userService, logg))

		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", controllers.GetUser(userService, logg))
			r.Patch("/", controllers.UpdateUser(userService, logg))
			r.Post("/deactivate", controllers.DeactivateUser(userService, logg))
			r.Post("/suspend", controllers.SuspendUser(userService, logg))
			r.Get("/profile", controllers.GetProfile(userService, logg))
			r.Patch("/profile", controllers.UpdateProfile(userService, logg))
			r.Get("/preferences", controllers.GetPreferences(userService, logg))
			r.Patch("/preferences", controllers.UpdatePreferences(userService, logg))
		})
	})

	return r
}
