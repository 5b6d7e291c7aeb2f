package launch

import (
	"errors"

	"launcher-agent/core/history"
	"launcher-agent/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// defaultLastServer is reported when no server has been selected yet.
const defaultLastServer = 15

// Handler handles HTTP requests from the desktop shell for launches and
// preferences.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the launch and preferences routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/launch")
	group.Post("/", h.HandleLaunch)
	group.Get("/last", h.HandleLastOutcome)
	group.Get("/history", h.HandleHistory)

	app.Get("/preferences", h.HandlePreferences)
	app.Put("/preferences/nickname", h.HandleUpdateNickname)
}

// HandleLaunch starts a launch attempt in the background.
// @Summary Launch the game client
// @Description Validates the request and starts a background launch attempt. Returns immediately; the terminal outcome is available via /launch/last.
// @Tags launch
// @Accept json
// @Produce json
// @Success 202 {object} map[string]interface{} "Acknowledgment"
// @Failure 400 {object} map[string]string "Invalid nickname"
// @Failure 503 {object} map[string]string "Game client executable missing"
// @Router /launch [post]
func (h *Handler) HandleLaunch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	l.Info("Launch requested", zap.String("nickname", req.Nickname))

	id, err := h.service.Launch(req)
	switch {
	case errors.Is(err, ErrEmptyNickname):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nickname is required"})
	case errors.Is(err, ErrLauncherMissing):
		l.Error("Launch rejected", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Launch failed to start", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":     "processing",
		"attempt_id": id,
	})
}

// HandleLastOutcome returns the most recent terminal launch outcome.
// @Summary Last launch outcome
// @Tags launch
// @Produce json
// @Success 200 {object} launch.Outcome
// @Success 204 "No attempt has finished yet"
// @Router /launch/last [get]
func (h *Handler) HandleLastOutcome(c *fiber.Ctx) error {
	out := h.service.Last()
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// HandleHistory returns recent launch attempts from the optional history DB.
// @Summary Launch history
// @Tags launch
// @Produce json
// @Param limit query int false "Maximum entries (default 20)"
// @Success 200 {array} history.Attempt
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /launch/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	attempts, err := h.service.history.Recent(limit)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if attempts == nil {
		attempts = []history.Attempt{}
	}
	return c.JSON(attempts)
}

// HandlePreferences returns the current preferences document.
// @Summary Current preferences
// @Tags preferences
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /preferences [get]
func (h *Handler) HandlePreferences(c *fiber.Ctx) error {
	p := h.service.prefs.Load()
	lastServer := defaultLastServer
	if p.LastServer != nil {
		lastServer = *p.LastServer
	}
	return c.JSON(fiber.Map{
		"launcher_path": h.service.cfg.Path,
		"last_nickname": p.LastNickname,
		"last_server":   lastServer,
	})
}

// HandleUpdateNickname persists a new nickname without launching.
// @Summary Update nickname
// @Tags preferences
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Acknowledgment"
// @Failure 400 {object} map[string]string "Invalid nickname"
// @Router /preferences/nickname [put]
func (h *Handler) HandleUpdateNickname(c *fiber.Ctx) error {
	var body struct {
		Nickname string `json:"nickname"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	nick, err := sanitizeNickname(body.Nickname)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nickname is required"})
	}

	p := h.service.prefs.Load()
	p.LastNickname = nick
	if err := h.service.prefs.Save(p); err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Failed to save nickname", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
