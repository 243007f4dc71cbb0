// Package server assembles the chi router: middleware chain, API routes
// and the catch-all redirect route.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/app/handler"
	"github.com/avasilev/go-shortlinks/internal/app/service"
	"github.com/avasilev/go-shortlinks/internal/middleware"
)

// Init builds the router. Fixed routes are registered before the
// catch-all /{code} so they always win route matching.
func Init(baseURL string, logger *zap.Logger, auth service.AuthIface, linkSvc service.LinkServiceIface, statsSvc service.StatsServiceIface, trustedSubnet string) *chi.Mux {
	post := handler.NewPost(baseURL, linkSvc, logger)
	get := handler.NewGet(linkSvc, statsSvc, logger)
	del := handler.NewDelete(linkSvc, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithVisitorToken(auth))

	r.Post("/", post.HandlePostPlainBody)
	r.Post("/shorten", post.HandleShorten)

	r.Get("/ping", get.PingDB)
	r.Get("/preview/{code}", get.Preview)

	r.Route("/api", func(r chi.Router) {
		r.Get("/user/urls", get.LinksByUser)

		r.Route("/v1/links/{code}", func(r chi.Router) {
			r.Get("/stats", get.Stats)
			r.Delete("/", del.Deactivate)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.WithSubnet(trustedSubnet))
			r.Get("/internal/totals", get.Totals)
		})
	})

	r.Get("/{code}", get.Redirect)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Short code is required", http.StatusBadRequest)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
