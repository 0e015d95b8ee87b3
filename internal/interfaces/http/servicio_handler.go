package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/application"
)

type ServicioHandler struct {
	service *application.ServicioService
	logger  *zap.Logger
}

func NewServicioHandler(service *application.ServicioService, logger *zap.Logger) *ServicioHandler {
	return &ServicioHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ServicioHandler) GetAllServices(c *fiber.Ctx) error {
	servicios, err := h.service.GetAllServices(c.UserContext())
	if err != nil {
		h.logger.Error("listing services failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load services",
		})
	}
	return c.JSON(servicios)
}
