package http

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every handler mounted by SetupRoutes.
type Handlers struct {
	Page     *PageHandler
	Assets   *AssetHandler
	Gallery  *GalleryHandler
	Servicio *ServicioHandler
	Theme    *ThemeHandler
	Contact  *ContactHandler
	Session  *SessionHandler
}

func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Page.Index)
	app.Get("/healthz", h.Page.Healthz)
	app.Get("/readyz", h.Page.Readyz)
	app.Get("/thumbnails/:id", h.Gallery.GetThumbnail)
	if h.Assets != nil {
		app.Get("/images/*", h.Assets.GetImage)
	}

	api := app.Group("/api")

	api.Get("/categories", h.Gallery.GetCategories)
	api.Get("/gallery", h.Gallery.GetImages)
	api.Get("/services", h.Servicio.GetAllServices)

	theme := api.Group("/theme")
	theme.Get("/", h.Theme.GetTheme)
	theme.Post("/toggle", h.Theme.ToggleTheme)

	api.Post("/contact", h.Contact.Create)

	sessions := api.Group("/sessions")
	sessions.Post("/", h.Session.Create)
	sessions.Get("/:id", h.Session.Get)
	sessions.Delete("/:id", h.Session.Delete)
	sessions.Get("/:id/events", h.Session.Events)
	sessions.Post("/:id/category", h.Session.SelectCategory)
	sessions.Post("/:id/lightbox/open", h.Session.OpenLightbox)
	sessions.Post("/:id/lightbox/key", h.Session.LightboxKey)
	sessions.Post("/:id/lightbox/drag", h.Session.LightboxDrag)
	sessions.Post("/:id/lightbox/:action", h.Session.LightboxAction)
	sessions.Post("/:id/carousels/:name/:action", h.Session.CarouselAction)
}
