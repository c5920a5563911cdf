package service

import (
	"time"

	"github.com/orcka/invoiceapi/config"
)

type Service interface {
	buildInfo
}

// service defines the service layer.
type service struct {
	config config.Config
	now    func() time.Time
}

// New creates a new instance of Service. now is the time source used for
// fallback timestamps; nil means time.Now.
func New(cfg config.Config, now func() time.Time) *service {
	if now == nil {
		now = time.Now
	}
	return &service{
		config: cfg,
		now:    now,
	}
}
