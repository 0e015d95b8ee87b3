package application

import (
	"github.com/Maxito7/studio_backend/internal/catalog"
	"github.com/Maxito7/studio_backend/internal/domain"
)

// CategoryView is one portfolio filter button.
type CategoryView struct {
	Key   domain.Category `json:"key"`
	Label string          `json:"label"`
	Count int             `json:"count"`
}

// GalleryService answers read-only portfolio queries over the catalog.
type GalleryService struct {
	catalog *catalog.Catalog
}

func NewGalleryService(c *catalog.Catalog) *GalleryService {
	return &GalleryService{catalog: c}
}

func (s *GalleryService) Catalog() *catalog.Catalog { return s.catalog }

// Categories lists "all" followed by the catalog categories in order.
func (s *GalleryService) Categories() []CategoryView {
	set := s.catalog.ImageSet()
	cats := append([]domain.Category{domain.CategoryAll}, set.Categories()...)
	out := make([]CategoryView, len(cats))
	for i, cat := range cats {
		out[i] = CategoryView{Key: cat, Label: s.catalog.Label(cat), Count: len(set.Images(cat))}
	}
	return out
}

// Images returns the images of cat; unknown categories yield an empty list.
func (s *GalleryService) Images(cat domain.Category) []domain.GalleryImage {
	return s.catalog.ImageSet().Images(cat)
}

func (s *GalleryService) Image(id string) (domain.GalleryImage, bool) {
	return s.catalog.Image(id)
}
