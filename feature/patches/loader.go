package patches

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	codec   *Codec
	handler *Handler
}

// NewFeature creates a new Patches feature.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	codec := NewCodec(cfg, logger)
	h := NewHandler(codec, logger)
	return &Feature{codec: codec, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "patches"
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
