package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/web"
)

// Readiness reports whether the critical images have settled.
type Readiness interface {
	Loaded() bool
}

type PageHandler struct {
	gallery  *application.GalleryService
	services *application.ServicioService
	theme    *application.ThemeService
	ready    Readiness
	logger   *zap.Logger
}

func NewPageHandler(
	gallery *application.GalleryService,
	services *application.ServicioService,
	theme *application.ThemeService,
	ready Readiness,
	logger *zap.Logger,
) *PageHandler {
	return &PageHandler{gallery: gallery, services: services, theme: theme, ready: ready, logger: logger}
}

// Index renders the site, or only the loading indicator until the preload
// gate has opened.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	cat := h.gallery.Catalog()
	theme := h.theme.Current()

	var buf bytes.Buffer
	if !h.ready.Loaded() {
		if err := web.Render(&buf, web.Loading(cat.Studio, theme)); err != nil {
			return err
		}
		return c.Type("html").Send(buf.Bytes())
	}

	services, err := h.services.GetAllServices(c.UserContext())
	if err != nil {
		h.logger.Warn("services unavailable, using catalog prices", zap.Error(err))
		services = cat.Services
	}

	err = web.Render(&buf, web.Site(web.PageData{
		Catalog:    cat,
		Theme:      theme,
		Categories: h.gallery.Categories(),
		Services:   services,
	}))
	if err != nil {
		h.logger.Error("rendering page failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("could not render page")
	}
	return c.Type("html").Send(buf.Bytes())
}

func (h *PageHandler) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *PageHandler) Readyz(c *fiber.Ctx) error {
	if !h.ready.Loaded() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "loading"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
