package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/studio_backend/internal/catalog"
	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/infrastructure/repository"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestServicioService_SeedOnce(t *testing.T) {
	ctx := context.Background()
	d, err := db.OpenMemory()
	require.NoError(t, err)
	defer d.Close()

	cat := defaultCatalog(t)
	svc := NewServicioService(repository.NewServicioRepository(d))

	n, err := svc.Seed(ctx, cat.Services)
	require.NoError(t, err)
	assert.Equal(t, len(cat.Services), n)

	n, err = svc.Seed(ctx, cat.Services)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := svc.GetAllServices(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(cat.Services))
	for i, s := range all {
		assert.Equal(t, cat.Services[i].Slug, s.Slug)
		assert.Equal(t, cat.Services[i].Price, s.Price)
	}
}

func TestGalleryService(t *testing.T) {
	svc := NewGalleryService(defaultCatalog(t))

	cats := svc.Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, domain.CategoryAll, cats[0].Key)
	assert.Equal(t, "All", cats[0].Label)

	total := 0
	for _, c := range cats[1:] {
		assert.Equal(t, len(svc.Images(c.Key)), c.Count)
		total += c.Count
	}
	assert.Equal(t, total, cats[0].Count)

	assert.Empty(t, svc.Images("landscape"))
	assert.NotNil(t, svc.Images("landscape"))

	img, ok := svc.Image("hero-1")
	require.True(t, ok)
	assert.Equal(t, "/images/hero/hero-01.jpg", img.URL)
}
