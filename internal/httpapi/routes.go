package httpapi

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/DoyleJ11/team-builder-backend/internal/metrics"
)

const metricsPath = "/internal/metrics"

// Deps are the collaborators the router wires into handlers. Metrics may be
// nil, which also hides the metrics endpoint.
type Deps struct {
	Heroes  HeroLister
	Teams   TeamService
	DB      Pinger
	Public  fs.FS
	Views   fs.FS
	Metrics *metrics.Recorder
	Logger  *zap.Logger
}

func SetupRoutes(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(d.Logger, d.Metrics, "/healthz", metricsPath))
	r.Use(middleware.Recoverer)

	// Application shell
	r.Get("/", ServeShell(d.Views))
	r.Get("/team/{id}/{title}", ServeShell(d.Views))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"https://*", "http://*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/heroes", ListHeroes(d.Heroes))
		r.Post("/teams", SaveTeam(d.Teams, d.Logger))
		r.Get("/teams/{id}", LoadTeam(d.Teams, d.Logger))
		r.Get("/stats", TeamStats(d.Teams, d.Logger))
	})

	r.Get("/healthz", Healthz(d.DB))
	if d.Metrics != nil {
		r.Handle(metricsPath, d.Metrics.Handler())
	}

	// Static files, including the hero data tree
	r.Handle("/*", http.FileServerFS(d.Public))

	return r
}
