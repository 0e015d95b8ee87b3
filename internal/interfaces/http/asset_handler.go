package http

import (
	"errors"
	"io"
	"mime"
	"path"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/assets"
	"github.com/Maxito7/studio_backend/internal/domain"
)

// AssetHandler serves site images from the configured source, so the page
// works the same whether images live on disk, behind a CDN or in S3.
type AssetHandler struct {
	source assets.Source
	logger *zap.Logger
}

func NewAssetHandler(source assets.Source, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{source: source, logger: logger}
}

func (h *AssetHandler) GetImage(c *fiber.Ctx) error {
	ref := "/images/" + c.Params("*")
	rc, err := h.source.Open(c.UserContext(), ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "image not found"})
		}
		h.logger.Error("opening image failed", zap.String("ref", ref), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "image unavailable"})
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		h.logger.Error("reading image failed", zap.String("ref", ref), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "image unavailable"})
	}

	if ct := mime.TypeByExtension(path.Ext(ref)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}
