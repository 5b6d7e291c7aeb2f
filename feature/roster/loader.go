package roster

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	client  *Client
	handler *Handler
}

// NewFeature creates a new Roster feature.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	client := NewClient(cfg, logger)
	h := NewHandler(client, logger)
	return &Feature{client: client, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "roster"
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

// Client exposes the roster client for the CLI entry points.
func (f *Feature) Client() *Client {
	return f.client
}
