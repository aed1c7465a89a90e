package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/task-tracker/internal/api/middleware"
	"github.com/phrazzld/task-tracker/internal/service"
)

// Services bundles the application services the router exposes.
type Services struct {
	Users        service.UserService
	TaskStatuses service.TaskStatusService
	Labels       service.LabelService
	Tasks        service.TaskService
}

// crudHandler is the set of handlers mounted for each resource.
type crudHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func mountResource(r chi.Router, pattern string, h crudHandler) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// NewRouter creates the application router with all routes and middleware.
// health may be nil to skip the database check.
func NewRouter(services Services, health Pinger, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		mountResource(r, "/users", NewUserHandler(services.Users, logger))
		mountResource(r, "/task_statuses", NewTaskStatusHandler(services.TaskStatuses, logger))
		mountResource(r, "/labels", NewLabelHandler(services.Labels, logger))
		mountResource(r, "/tasks", NewTaskHandler(services.Tasks, logger))
	})

	r.Method(http.MethodGet, "/health", NewHealthHandler(health, logger))

	return r
}
