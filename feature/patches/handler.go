package patches

import (
	"encoding/json"
	"errors"

	"launcher-agent/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the plugin-configuration document.
type Handler struct {
	codec  *Codec
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(codec *Codec, logger *zap.Logger) *Handler {
	return &Handler{codec: codec, logger: logger}
}

// RegisterRoutes registers the patch document routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/patches")
	group.Get("/", h.HandleRead)
	group.Put("/", h.HandleWrite)
}

// HandleRead returns the parsed patch document.
// @Summary Read the plugin-configuration document
// @Description Returns the document with full-line // comments stripped. Edits written back through PUT do not preserve comments.
// @Tags patches
// @Produce json
// @Success 200 {object} any
// @Failure 404 {object} map[string]string "Document missing"
// @Failure 422 {object} map[string]string "Document unparsable"
// @Router /patches [get]
func (h *Handler) HandleRead(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	doc, err := h.codec.Read()
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrParse):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Patch document read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(doc)
}

// HandleWrite replaces the patch document.
// @Summary Write the plugin-configuration document
// @Tags patches
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Acknowledgment"
// @Failure 400 {object} map[string]string "Body is not valid JSON"
// @Failure 500 {object} map[string]string "Write failed"
// @Router /patches [put]
func (h *Handler) HandleWrite(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var doc any
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body is not valid JSON"})
	}

	if err := h.codec.Write(doc); err != nil {
		l.Error("Patch document write failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
