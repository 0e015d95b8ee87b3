package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/studio_backend/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	set := c.ImageSet()
	assert.Equal(t, []domain.Category{
		domain.CategoryEvent,
		domain.CategoryEngagement,
		domain.CategoryWedding,
		domain.CategoryMaternity,
		domain.CategoryPortrait,
	}, set.Categories())
	assert.Len(t, set.Images(domain.CategoryEvent), 8)
	assert.Len(t, c.Hero, 4)
	assert.Len(t, c.RollImages(), len(c.Roll))
	assert.NotEmpty(t, c.Services)
	assert.Equal(t, "Weddings", c.Label(domain.CategoryWedding))
	assert.Equal(t, "All", c.Label(domain.CategoryAll))

	// hero slides plus one cover per category
	assert.Len(t, c.CriticalImages(), 4+5)
	assert.Len(t, c.AllImages(), 4+set.Len())
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `
categories:
  - key: event
    images:
      - {id: a, url: /a.jpg}
      - {id: a, url: /b.jpg}
`,
		"reserved key": `
categories:
  - key: all
    images: []
`,
		"unknown roll": `
categories:
  - key: event
    images:
      - {id: a, url: /a.jpg}
roll: [b]
`,
		"missing url": `
hero:
  - {id: h}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - key: portrait
    label: Portraits
    images:
      - {id: p1, url: /p1.jpg, alt: One}
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	imgs := c.ImageSet().Images(domain.CategoryPortrait)
	want := []domain.GalleryImage{
		{ID: "p1", URL: "/p1.jpg", AltText: "One", Category: domain.CategoryPortrait},
	}
	if diff := cmp.Diff(want, imgs); diff != "" {
		t.Errorf("portrait images mismatch (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
