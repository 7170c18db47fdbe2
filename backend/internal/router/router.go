package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fourchess/fourchess/backend/internal/setup"
	"github.com/fourchess/fourchess/shared/domain"
	mw "github.com/fourchess/fourchess/shared/middleware"
	"github.com/fourchess/fourchess/shared/middleware/metrics"
)

// New creates and configures a chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	httpCfg := deps.Config.Public.Http

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(httpCfg.HSTS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: httpCfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/media/image/*", mediaFiles("/media/image/", deps.Media.Root(domain.Image)))
	r.Handle("/media/video/*", mediaFiles("/media/video/", deps.Media.Root(domain.Video)))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/boards", h.GetBoards)
		r.Get("/boards/{board}", h.GetBoard)
		r.Post("/boards/{board}/threads", h.CreateThread)

		r.Get("/threads/{thread}", h.GetThread)
		r.Post("/threads/{thread}/replies", h.CreateReply)

		r.Get("/replies/{reply}", h.GetReply)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/threads/{thread}/delete", h.DeleteThread)
			r.Post("/replies/{reply}/delete", h.DeleteReply)
			r.Post("/boards/{board}/delete", h.DeleteBoard)
			r.Post("/boards/{board}/rename", h.RenameBoard)
		})
	})

	return r
}

// mediaFiles serves stored files without directory listings.
func mediaFiles(prefix, root string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
