package viewer_test

import (
	"fmt"

	"github.com/Maxito7/studio_backend/internal/domain"
)

// testImageSet mirrors the production catalog shape: eight event images and
// smaller sets for the other categories.
func testImageSet() domain.ImageSet {
	counts := []struct {
		cat domain.Category
		n   int
	}{
		{domain.CategoryEvent, 8},
		{domain.CategoryEngagement, 3},
		{domain.CategoryWedding, 5},
		{domain.CategoryMaternity, 2},
		{domain.CategoryPortrait, 4},
	}
	order := make([]domain.Category, 0, len(counts))
	images := make(map[domain.Category][]domain.GalleryImage)
	for _, c := range counts {
		order = append(order, c.cat)
		for i := 0; i < c.n; i++ {
			id := fmt.Sprintf("%s-%d", c.cat, i+1)
			images[c.cat] = append(images[c.cat], domain.GalleryImage{
				ID:  id,
				URL: "/images/" + id + ".jpg",
			})
		}
	}
	return domain.NewImageSet(order, images)
}
