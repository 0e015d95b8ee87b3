package domain

import "strings"

// Category tags a group of portfolio images.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryEvent      Category = "event"
	CategoryEngagement Category = "engagement"
	CategoryWedding    Category = "wedding"
	CategoryMaternity  Category = "maternity"
	CategoryPortrait   Category = "portrait"
)

// ParseCategory normalizes user input. It never fails: unknown names are
// returned as-is and simply match no images.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll
	}
	return Category(s)
}

type GalleryImage struct {
	ID       string   `json:"id" yaml:"id"`
	URL      string   `json:"url" yaml:"url"`
	AltText  string   `json:"alt_text" yaml:"alt"`
	Category Category `json:"category" yaml:"-"`
}

// ImageSet maps each category to its ordered images. It is built once and
// never mutated afterwards.
type ImageSet struct {
	order  []Category
	images map[Category][]GalleryImage
}

func NewImageSet(order []Category, images map[Category][]GalleryImage) ImageSet {
	set := ImageSet{
		order:  make([]Category, 0, len(order)),
		images: make(map[Category][]GalleryImage, len(order)),
	}
	for _, cat := range order {
		if _, dup := set.images[cat]; dup || cat == CategoryAll {
			continue
		}
		src := images[cat]
		imgs := make([]GalleryImage, len(src))
		for i, img := range src {
			img.Category = cat
			imgs[i] = img
		}
		set.order = append(set.order, cat)
		set.images[cat] = imgs
	}
	return set
}

// Categories returns the fixed category order, without CategoryAll.
func (s ImageSet) Categories() []Category {
	out := make([]Category, len(s.order))
	copy(out, s.order)
	return out
}

func (s ImageSet) Has(cat Category) bool {
	if cat == CategoryAll {
		return true
	}
	_, ok := s.images[cat]
	return ok
}

// Images returns a copy of the images for cat. CategoryAll concatenates every
// category in order; an unknown category yields an empty slice.
func (s ImageSet) Images(cat Category) []GalleryImage {
	if cat == CategoryAll {
		var all []GalleryImage
		for _, c := range s.order {
			all = append(all, s.images[c]...)
		}
		if all == nil {
			return []GalleryImage{}
		}
		return all
	}
	src := s.images[cat]
	out := make([]GalleryImage, len(src))
	copy(out, src)
	return out
}

// Lookup finds an image by id across all categories.
func (s ImageSet) Lookup(id string) (GalleryImage, bool) {
	for _, c := range s.order {
		for _, img := range s.images[c] {
			if img.ID == id {
				return img, true
			}
		}
	}
	return GalleryImage{}, false
}

func (s ImageSet) Len() int {
	n := 0
	for _, imgs := range s.images {
		n += len(imgs)
	}
	return n
}
