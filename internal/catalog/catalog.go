// Package catalog holds the static site content: the category→images
// mapping, hero and roll selections, about-section copy and the services
// price list. It is bound at build time and never mutated at runtime.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Maxito7/studio_backend/internal/domain"
)

//go:embed site.yaml
var defaultSite []byte

type Studio struct {
	Name     string `yaml:"name" json:"name"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
}

type CategoryEntry struct {
	Key    domain.Category       `yaml:"key" json:"key"`
	Label  string                `yaml:"label" json:"label"`
	Images []domain.GalleryImage `yaml:"images" json:"images"`
}

type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Testimonial struct {
	Name  string `yaml:"name" json:"name"`
	Role  string `yaml:"role" json:"role"`
	Quote string `yaml:"quote" json:"quote"`
}

type ProcessStep struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Catalog struct {
	Studio       Studio                `yaml:"studio"`
	Hero         []domain.GalleryImage `yaml:"hero"`
	Categories   []CategoryEntry       `yaml:"categories"`
	Roll         []string              `yaml:"roll"`
	Stats        []Stat                `yaml:"stats"`
	Testimonials []Testimonial         `yaml:"testimonials"`
	Process      []ProcessStep         `yaml:"process"`
	Services     []domain.Servicio     `yaml:"services"`

	set domain.ImageSet
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultSite)
}

// Load reads a catalog file, falling back to the embedded one when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	order := make([]domain.Category, 0, len(c.Categories))
	images := make(map[domain.Category][]domain.GalleryImage, len(c.Categories))
	for _, entry := range c.Categories {
		order = append(order, entry.Key)
		images[entry.Key] = entry.Images
	}
	c.set = domain.NewImageSet(order, images)
	for i := range c.Services {
		c.Services[i].SortOrder = i
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	check := func(img domain.GalleryImage) error {
		if img.ID == "" || img.URL == "" {
			return fmt.Errorf("catalog image needs id and url (got %q)", img.ID)
		}
		if seen[img.ID] {
			return fmt.Errorf("duplicate catalog image id %q", img.ID)
		}
		seen[img.ID] = true
		return nil
	}
	for _, img := range c.Hero {
		if err := check(img); err != nil {
			return err
		}
	}
	cats := make(map[domain.Category]bool)
	for _, entry := range c.Categories {
		if entry.Key == "" || entry.Key == domain.CategoryAll {
			return fmt.Errorf("invalid category key %q", entry.Key)
		}
		if cats[entry.Key] {
			return fmt.Errorf("duplicate category %q", entry.Key)
		}
		cats[entry.Key] = true
		for _, img := range entry.Images {
			if err := check(img); err != nil {
				return err
			}
		}
	}
	for _, id := range c.Roll {
		if !seen[id] {
			return fmt.Errorf("roll references unknown image %q", id)
		}
	}
	return nil
}

// ImageSet returns the portfolio mapping used by the category filter.
func (c *Catalog) ImageSet() domain.ImageSet { return c.set }

// Label returns the display label for a category.
func (c *Catalog) Label(cat domain.Category) string {
	if cat == domain.CategoryAll {
		return "All"
	}
	for _, entry := range c.Categories {
		if entry.Key == cat {
			return entry.Label
		}
	}
	return string(cat)
}

// RollImages resolves the vertical roll selection.
func (c *Catalog) RollImages() []domain.GalleryImage {
	out := make([]domain.GalleryImage, 0, len(c.Roll))
	for _, id := range c.Roll {
		if img, ok := c.set.Lookup(id); ok {
			out = append(out, img)
		}
	}
	return out
}

// Image finds a hero or portfolio image by id.
func (c *Catalog) Image(id string) (domain.GalleryImage, bool) {
	for _, img := range c.Hero {
		if img.ID == id {
			return img, true
		}
	}
	return c.set.Lookup(id)
}

// CriticalImages lists the image URLs that must be loaded before the page
// is shown: the hero slides and the first image of every category.
func (c *Catalog) CriticalImages() []string {
	refs := make([]string, 0, len(c.Hero)+len(c.Categories))
	for _, img := range c.Hero {
		refs = append(refs, img.URL)
	}
	for _, cat := range c.set.Categories() {
		if imgs := c.set.Images(cat); len(imgs) > 0 {
			refs = append(refs, imgs[0].URL)
		}
	}
	return refs
}

// AllImages lists every hero and portfolio image, used by asset sync.
func (c *Catalog) AllImages() []domain.GalleryImage {
	out := append([]domain.GalleryImage{}, c.Hero...)
	return append(out, c.set.Images(domain.CategoryAll)...)
}
