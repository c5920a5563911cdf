package handler

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"

	"github.com/orcka/invoiceapi/config"
	"github.com/orcka/invoiceapi/internal/jsonlog"
	"github.com/orcka/invoiceapi/service"
)

// Handler defines Handler layer.
type Handler struct {
	config   config.Config
	logger   *jsonlog.Logger
	limiters *ttlcache.Cache[string, *rate.Limiter]
	service  service.Service
	prom     *promMetrics
}

// New creates a new instance of Handler. limiters holds the per-client rate
// limiters; its janitor is started and stopped by the caller.
func New(cfg config.Config, logger *jsonlog.Logger, limiters *ttlcache.Cache[string, *rate.Limiter], service service.Service) *Handler {
	h := &Handler{
		config:   cfg,
		logger:   logger,
		limiters: limiters,
		service:  service,
	}
	info := service.BuildInfo()
	h.prom = newPromMetrics(info.GitSHA, info.BuildVersion)
	return h
}

// NewLimiterCache returns the cache used for per-client rate limiters.
// Clients not seen for three minutes are evicted.
func NewLimiterCache() *ttlcache.Cache[string, *rate.Limiter] {
	return ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
}
