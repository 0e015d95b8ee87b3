package viewer

import "github.com/Maxito7/studio_backend/internal/domain"

// Filter holds the active portfolio category and derives the visible
// images from a static ImageSet.
type Filter struct {
	set    domain.ImageSet
	active domain.Category
}

func NewFilter(set domain.ImageSet) *Filter {
	return &Filter{set: set, active: domain.CategoryAll}
}

// Select makes cat the active category. Unknown categories are accepted
// and produce an empty image list.
func (f *Filter) Select(cat domain.Category) {
	f.active = cat
}

func (f *Filter) Active() domain.Category { return f.active }

func (f *Filter) Images() []domain.GalleryImage {
	return f.set.Images(f.active)
}

// Categories lists CategoryAll followed by the catalog order.
func (f *Filter) Categories() []domain.Category {
	return append([]domain.Category{domain.CategoryAll}, f.set.Categories()...)
}
