package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daybreak-tools/triage/internal/events"
	"github.com/daybreak-tools/triage/internal/store"
)

type RouterConfig struct {
	DefaultStrategy    string
	SuggestionLimit    int
	AdminToken         string
	RateLimitPerMinute int
}

func NewRouter(s store.Store, ev events.Client, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	analyze := NewAnalyzeHandler(ev, cfg.DefaultStrategy, cfg.SuggestionLimit, logger)
	tasks := NewTasksHandler(s, ev, cfg.DefaultStrategy, logger)
	deps := NewDependenciesHandler(s)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tasks/analyze", analyze.Analyze)
		r.Post("/tasks/suggest", analyze.Suggest)
		r.Get("/strategies", analyze.Strategies)

		r.Post("/tasks", tasks.Create)
		r.Get("/tasks", tasks.List)
		r.Get("/tasks/ranked", tasks.Ranked)
		r.Get("/tasks/{id}", tasks.Get)
		r.Patch("/tasks/{id}", tasks.Update)
		r.Delete("/tasks/{id}", tasks.Delete)
		r.Get("/tasks/{id}/dependencies", deps.ListForTask)

		r.Post("/dependencies", deps.Create)
		r.Delete("/dependencies/{id}", deps.Delete)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
