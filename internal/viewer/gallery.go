package viewer

import (
	"sync"

	"github.com/Maxito7/studio_backend/internal/domain"
)

// Gallery couples the category filter with the lightbox and, optionally, a
// carousel bound to the same image list (the film strip). Changing category
// closes the lightbox and rebinds every dependent index, so nothing can
// point past the end of a shorter list.
type Gallery struct {
	mu       sync.Mutex
	filter   *Filter
	lightbox *Lightbox
	images   []domain.GalleryImage
	strip    *Carousel
}

type GallerySnapshot struct {
	Category domain.Category       `json:"category"`
	Images   []domain.GalleryImage `json:"images"`
	Lightbox LightboxState         `json:"lightbox"`
	Current  *domain.GalleryImage  `json:"current,omitempty"`
}

func NewGallery(set domain.ImageSet) *Gallery {
	f := NewFilter(set)
	imgs := f.Images()
	return &Gallery{
		filter:   f,
		lightbox: NewLightbox(len(imgs)),
		images:   imgs,
	}
}

// Bind attaches a carousel that follows the filtered image list.
func (g *Gallery) Bind(strip *Carousel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.strip = strip
	strip.SetLength(len(g.images))
}

// SelectCategory switches the filter, closes the lightbox and rebinds the
// strip, all under the gallery lock.
func (g *Gallery) SelectCategory(cat domain.Category) GallerySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filter.Select(cat)
	g.images = g.filter.Images()
	g.lightbox.Close()
	g.lightbox.SetLength(len(g.images))
	if g.strip != nil {
		g.strip.SetLength(len(g.images))
	}
	return g.snapshotLocked()
}

func (g *Gallery) Categories() []domain.Category {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.filter.Categories()
}

func (g *Gallery) Images() []domain.GalleryImage {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.GalleryImage, len(g.images))
	copy(out, g.images)
	return out
}

func (g *Gallery) OpenImage(index int) (GallerySnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.lightbox.Open(index); err != nil {
		return GallerySnapshot{}, err
	}
	return g.snapshotLocked(), nil
}

// Lightbox runs fn against the lightbox under the gallery lock and returns
// the resulting snapshot.
func (g *Gallery) Lightbox(fn func(*Lightbox)) GallerySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.lightbox)
	return g.snapshotLocked()
}

// HandleKey forwards a keyboard event; handled is false while the lightbox
// is closed.
func (g *Gallery) HandleKey(key Key) (snap GallerySnapshot, handled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	handled = g.lightbox.HandleKey(key)
	return g.snapshotLocked(), handled
}

func (g *Gallery) Snapshot() GallerySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Gallery) snapshotLocked() GallerySnapshot {
	snap := GallerySnapshot{
		Category: g.filter.Active(),
		Images:   make([]domain.GalleryImage, len(g.images)),
		Lightbox: g.lightbox.State(),
	}
	copy(snap.Images, g.images)
	if snap.Lightbox.Open && snap.Lightbox.ImageIndex < len(g.images) {
		cur := g.images[snap.Lightbox.ImageIndex]
		snap.Current = &cur
	}
	return snap
}
