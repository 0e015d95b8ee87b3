package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/application"
)

type ThemeHandler struct {
	service *application.ThemeService
	logger  *zap.Logger
}

func NewThemeHandler(service *application.ThemeService, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{service: service, logger: logger}
}

func (h *ThemeHandler) GetTheme(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"theme": h.service.Current()})
}

func (h *ThemeHandler) ToggleTheme(c *fiber.Ctx) error {
	theme, err := h.service.Toggle(c.UserContext())
	if err != nil {
		h.logger.Error("toggling theme failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not save theme",
			"theme": theme,
		})
	}
	return c.JSON(fiber.Map{"theme": theme})
}
