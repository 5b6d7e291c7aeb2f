package launch

import (
	"launcher-agent/core/history"
	"launcher-agent/core/prefs"
	"launcher-agent/core/procs"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Launch feature.
func NewFeature(cfg Config, registry procs.Registry, prefStore *prefs.Store, histStore *history.Store, logger *zap.Logger) *Feature {
	svc := NewService(cfg, registry, prefStore, histStore, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "launch"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the supervisor for the CLI entry points.
func (f *Feature) Service() *Service {
	return f.service
}
