package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/info", h.showInfoHandler)
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	if h.config.Metrics.Enabled {
		router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(h.prom.registry, promhttp.HandlerOpts{}))
	}

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.middleware(router)
}

// middleware wraps next in the chain applied to every route. requestID sits
// outside recoverPanic so panic log lines carry the request ID.
func (h *Handler) middleware(next http.Handler) http.Handler {
	return h.metrics(h.requestID(h.recoverPanic(h.enableCORS(h.rateLimit(next)))))
}
