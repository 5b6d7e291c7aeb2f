package roster

import (
	"errors"

	"launcher-agent/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the server roster.
type Handler struct {
	client *Client
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(client *Client, logger *zap.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// RegisterRoutes registers the roster routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/servers", h.HandleServers)
}

// HandleServers fetches and returns the canonical server roster.
// @Summary Server roster
// @Description Fetches the remote roster and normalizes it into canonical server records. A failed fetch means "roster unavailable"; the shell may retry later.
// @Tags roster
// @Produce json
// @Success 200 {array} roster.Server
// @Failure 502 {object} map[string]string "Roster unavailable"
// @Router /servers [get]
func (h *Handler) HandleServers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	servers, err := h.client.Fetch(c.Context())
	if err != nil {
		l.Error("Roster fetch failed", zap.Error(err))

		var statusErr *StatusError
		body := fiber.Map{"error": "roster unavailable"}
		switch {
		case errors.As(err, &statusErr):
			body["reason"] = statusErr.Error()
		case errors.Is(err, ErrTimeout):
			body["reason"] = "timeout"
		case errors.Is(err, ErrConnection):
			body["reason"] = "connection failed"
		case errors.Is(err, ErrMalformedPayload):
			body["reason"] = "malformed payload"
		}
		return c.Status(fiber.StatusBadGateway).JSON(body)
	}

	return c.JSON(servers)
}
