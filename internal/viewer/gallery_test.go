package viewer_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/viewer"
	"github.com/Maxito7/studio_backend/internal/viewer/viewertest"
)

func TestFilterAllConcatenatesInOrder(t *testing.T) {
	f := viewer.NewFilter(testImageSet())
	assert.Equal(t, domain.CategoryAll, f.Active())

	imgs := f.Images()
	require.Len(t, imgs, 8+3+5+2+4)
	assert.Equal(t, "event-1", imgs[0].ID)
	assert.Equal(t, "engagement-1", imgs[8].ID)
	assert.Equal(t, "portrait-4", imgs[len(imgs)-1].ID)

	assert.Equal(t, []domain.Category{
		domain.CategoryAll,
		domain.CategoryEvent,
		domain.CategoryEngagement,
		domain.CategoryWedding,
		domain.CategoryMaternity,
		domain.CategoryPortrait,
	}, f.Categories())
}

func TestFilterSpecificAndUnknown(t *testing.T) {
	f := viewer.NewFilter(testImageSet())

	f.Select(domain.CategoryWedding)
	imgs := f.Images()
	require.Len(t, imgs, 5)
	for _, img := range imgs {
		assert.Equal(t, domain.CategoryWedding, img.Category)
	}

	f.Select("landscape")
	assert.NotNil(t, f.Images())
	assert.Empty(t, f.Images())
}

func TestGalleryEndToEnd(t *testing.T) {
	g := viewer.NewGallery(testImageSet())

	snap := g.SelectCategory(domain.CategoryEvent)
	require.Len(t, snap.Images, 8)

	snap, err := g.OpenImage(3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, snap.Lightbox.Scale)
	require.NotNil(t, snap.Current)
	assert.Equal(t, "event-4", snap.Current.ID)

	g.Lightbox((*viewer.Lightbox).ZoomIn)
	snap = g.Lightbox((*viewer.Lightbox).ZoomIn)
	assert.Equal(t, 2.0, snap.Lightbox.Scale)

	snap = g.Lightbox((*viewer.Lightbox).Next)
	assert.Equal(t, 4, snap.Lightbox.ImageIndex)
	assert.Equal(t, 1.0, snap.Lightbox.Scale)
	assert.Equal(t, viewer.Point{}, snap.Lightbox.Pan)
}

func TestGalleryCategorySwitchInvalidatesIndex(t *testing.T) {
	clock := viewertest.NewClock()
	strip := viewer.NewCarousel(viewer.CarouselConfig{
		Name:        "filmstrip",
		Interval:    3 * time.Second,
		ResumeDelay: 6 * time.Second,
		Autoplay:    true,
	}, 0, viewer.WithClock(clock))
	defer strip.Close()

	g := viewer.NewGallery(testImageSet())
	g.Bind(strip)
	g.SelectCategory(domain.CategoryEvent)
	assert.Equal(t, 8, strip.State().Length)

	_, err := g.OpenImage(7)
	require.NoError(t, err)
	strip.GoTo(7)

	snap := g.SelectCategory(domain.CategoryMaternity)
	assert.False(t, snap.Lightbox.Open)
	assert.Less(t, snap.Lightbox.ImageIndex, len(snap.Images))
	assert.Nil(t, snap.Current)

	st := strip.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, 2, st.Length)

	_, err = g.OpenImage(2)
	assert.ErrorIs(t, err, viewer.ErrIndexOutOfRange)
}

func TestGalleryConcurrentCategorySwitchKeepsStripInSync(t *testing.T) {
	strip := viewer.NewCarousel(viewer.CarouselConfig{Name: "filmstrip"}, 0, viewer.WithClock(viewertest.NewClock()))
	defer strip.Close()
	g := viewer.NewGallery(testImageSet())
	g.Bind(strip)

	cats := []domain.Category{domain.CategoryEvent, domain.CategoryMaternity, domain.CategoryAll, domain.CategoryWedding}
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(cat domain.Category) {
			defer wg.Done()
			g.SelectCategory(cat)
		}(cats[i%len(cats)])
	}
	wg.Wait()

	assert.Equal(t, len(g.Images()), strip.State().Length)
}

func TestGalleryKeysInertWhenClosed(t *testing.T) {
	g := viewer.NewGallery(testImageSet())
	_, handled := g.HandleKey(viewer.KeyArrowRight)
	assert.False(t, handled)

	_, err := g.OpenImage(0)
	require.NoError(t, err)
	snap, handled := g.HandleKey(viewer.KeyArrowRight)
	assert.True(t, handled)
	assert.Equal(t, 1, snap.Lightbox.ImageIndex)
}

func TestGalleryUnknownCategoryIsEmpty(t *testing.T) {
	g := viewer.NewGallery(testImageSet())
	snap := g.SelectCategory("astro")
	assert.Empty(t, snap.Images)
	assert.Equal(t, 0, snap.Lightbox.Length)

	_, err := g.OpenImage(0)
	assert.ErrorIs(t, err, viewer.ErrIndexOutOfRange)
}
