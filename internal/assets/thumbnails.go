package assets

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const defaultThumbnailWidth = 480

// Thumbnailer decodes images from a Source and keeps a downscaled JPEG of
// each in memory. It satisfies viewer.Loader, so the preload gate drives it.
type Thumbnailer struct {
	src    Source
	width  int
	logger *zap.Logger

	mu     sync.RWMutex
	thumbs map[string][]byte
}

func NewThumbnailer(src Source, width int, logger *zap.Logger) *Thumbnailer {
	if width <= 0 {
		width = defaultThumbnailWidth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Thumbnailer{
		src:    src,
		width:  width,
		logger: logger,
		thumbs: make(map[string][]byte),
	}
}

// Load fetches ref, decodes it and stores the thumbnail.
func (t *Thumbnailer) Load(ctx context.Context, ref string) error {
	rc, err := t.src.Open(ctx, ref)
	if err != nil {
		return err
	}
	defer rc.Close()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", ref, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if img.Bounds().Dx() > t.width {
		img = imaging.Resize(img, t.width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return fmt.Errorf("encoding thumbnail for %s: %w", ref, err)
	}

	t.mu.Lock()
	t.thumbs[ref] = buf.Bytes()
	t.mu.Unlock()

	t.logger.Debug("thumbnail ready", zap.String("ref", ref), zap.Int("bytes", buf.Len()))
	return nil
}

// Thumbnail returns the JPEG bytes for ref if it has been loaded.
func (t *Thumbnailer) Thumbnail(ref string) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	b, ok := t.thumbs[ref]
	return b, ok
}

func (t *Thumbnailer) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.thumbs)
}
