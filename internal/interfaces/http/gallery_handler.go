package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/domain"
)

// ThumbnailStore serves thumbnails produced during preload.
type ThumbnailStore interface {
	Thumbnail(ref string) ([]byte, bool)
}

type GalleryHandler struct {
	service *application.GalleryService
	thumbs  ThumbnailStore
}

func NewGalleryHandler(service *application.GalleryService, thumbs ThumbnailStore) *GalleryHandler {
	return &GalleryHandler{service: service, thumbs: thumbs}
}

func (h *GalleryHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.Categories())
}

// GetImages lists the images of ?category=, defaulting to all. An unknown
// category is not an error; it simply has no images.
func (h *GalleryHandler) GetImages(c *fiber.Ctx) error {
	cat := domain.ParseCategory(c.Query("category"))
	return c.JSON(fiber.Map{
		"category": cat,
		"images":   h.service.Images(cat),
	})
}

func (h *GalleryHandler) GetThumbnail(c *fiber.Ctx) error {
	img, ok := h.service.Image(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "image not found"})
	}
	if h.thumbs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "thumbnail not available"})
	}
	data, ok := h.thumbs.Thumbnail(img.URL)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "thumbnail not available"})
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}
