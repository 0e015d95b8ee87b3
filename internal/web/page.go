// Package web renders the studio site as server-side HTML.
package web

import (
	"fmt"
	"io"
	"math"
	"strconv"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/catalog"
	"github.com/Maxito7/studio_backend/internal/domain"
)

// PageData is everything the full page needs.
type PageData struct {
	Catalog    *catalog.Catalog
	Theme      domain.Theme
	Categories []application.CategoryView
	Services   []domain.Servicio
}

func Render(w io.Writer, node g.Node) error {
	return node.Render(w)
}

// Loading is shown until the critical images have settled.
func Loading(studio catalog.Studio, theme domain.Theme) g.Node {
	return layout(studio.Name, theme,
		h.Div(h.Class("loading"), h.ID("loading"),
			h.Div(h.Class("spinner")),
			h.P(g.Text("Loading "+studio.Name+"…")),
		),
		h.Script(g.Raw(reloadWhenReady)),
	)
}

// Site is the full single-page site.
func Site(d PageData) g.Node {
	cat := d.Catalog
	return layout(cat.Studio.Name, d.Theme,
		navigation(cat.Studio, d.Theme),
		h.Main(
			hero(cat.Hero),
			about(cat),
			portfolio(d.Categories, cat.ImageSet().Images(domain.CategoryAll)),
			roll(cat.RollImages()),
			services(d.Services),
			process(cat.Process),
			contact(cat.Studio, d.Services),
		),
		h.Footer(h.Class("footer"),
			h.P(g.Textf("© %s · %s", cat.Studio.Name, cat.Studio.Location)),
		),
		h.Script(g.Raw(viewerScript)),
	)
}

func layout(title string, theme domain.Theme, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
		},
		Body: []g.Node{
			h.Div(
				c.Classes{"app": true, "dark": theme.IsDark()},
				h.ID("app"),
				g.Group(body),
			),
		},
	})
}

func navigation(studio catalog.Studio, theme domain.Theme) g.Node {
	links := []struct{ href, label string }{
		{"#home", "Home"},
		{"#about", "About"},
		{"#portfolio", "Portfolio"},
		{"#services", "Services"},
		{"#contact", "Contact"},
	}
	toggleLabel := "Dark mode"
	if theme.IsDark() {
		toggleLabel = "Light mode"
	}
	return h.Nav(h.Class("nav"),
		h.A(h.Class("brand"), h.Href("#home"), g.Text(studio.Name)),
		h.Ul(
			g.Map(links, func(l struct{ href, label string }) g.Node {
				return h.Li(h.A(h.Href(l.href), g.Text(l.label)))
			}),
		),
		h.Button(h.ID("theme-toggle"), h.Type("button"), g.Text(toggleLabel)),
	)
}

func hero(images []domain.GalleryImage) g.Node {
	return h.Section(h.ID("home"), h.Class("hero"), g.Attr("data-carousel", application.CarouselHero),
		g.Map(indexed(images), func(it indexedImage) g.Node {
			return h.Img(
				c.Classes{"slide": true, "active": it.i == 0},
				h.Src(it.img.URL), h.Alt(it.img.AltText),
				g.Attr("data-index", strconv.Itoa(it.i)),
			)
		}),
		h.Button(h.Class("prev"), h.Type("button"), g.Attr("data-action", "prev"), g.Text("‹")),
		h.Button(h.Class("next"), h.Type("button"), g.Attr("data-action", "next"), g.Text("›")),
	)
}

func about(cat *catalog.Catalog) g.Node {
	return h.Section(h.ID("about"), h.Class("about"),
		h.H2(g.Text("About "+cat.Studio.Name)),
		h.P(g.Text(cat.Studio.Tagline)),
		h.Ul(h.Class("stats"),
			g.Map(cat.Stats, func(s catalog.Stat) g.Node {
				return h.Li(h.Strong(g.Text(s.Value)), h.Span(g.Text(s.Label)))
			}),
		),
		h.Div(h.Class("testimonials"),
			g.Map(cat.Testimonials, func(t catalog.Testimonial) g.Node {
				return h.BlockQuote(
					h.P(g.Text(t.Quote)),
					h.Footer(g.Text(t.Name+", "+t.Role)),
				)
			}),
		),
	)
}

func portfolio(categories []application.CategoryView, images []domain.GalleryImage) g.Node {
	return h.Section(h.ID("portfolio"), h.Class("portfolio"),
		h.H2(g.Text("Portfolio")),
		h.Div(h.Class("filters"),
			g.Map(categories, func(cv application.CategoryView) g.Node {
				return h.Button(
					c.Classes{"filter": true, "active": cv.Key == domain.CategoryAll},
					h.Type("button"),
					g.Attr("data-category", string(cv.Key)),
					g.Textf("%s (%d)", cv.Label, cv.Count),
				)
			}),
		),
		h.Div(h.Class("grid"), h.ID("gallery-grid"),
			g.Map(indexed(images), func(it indexedImage) g.Node {
				return h.Img(
					h.Src(it.img.URL), h.Alt(it.img.AltText),
					g.Attr("loading", "lazy"),
					g.Attr("data-index", strconv.Itoa(it.i)),
				)
			}),
		),
		filmstrip(images),
		lightbox(),
	)
}

func filmstrip(images []domain.GalleryImage) g.Node {
	return h.Div(h.Class("filmstrip"), g.Attr("data-carousel", application.CarouselFilmstrip),
		h.Button(h.Class("prev"), h.Type("button"), g.Attr("data-action", "prev"), g.Text("‹")),
		h.Div(h.Class("track"), h.ID("filmstrip-track"),
			g.Map(indexed(images), func(it indexedImage) g.Node {
				return h.Img(
					c.Classes{"slide": true, "active": it.i == 0},
					h.Src(it.img.URL), h.Alt(it.img.AltText),
					g.Attr("loading", "lazy"),
					g.Attr("data-index", strconv.Itoa(it.i)),
				)
			}),
		),
		h.Button(h.Class("next"), h.Type("button"), g.Attr("data-action", "next"), g.Text("›")),
	)
}

// lightbox is filled in by the viewer script from the session's gallery
// snapshot.
func lightbox() g.Node {
	button := func(action, label, text string) g.Node {
		return h.Button(h.Type("button"), g.Attr("data-lightbox", action), g.Attr("aria-label", label), g.Text(text))
	}
	return h.Div(h.Class("lightbox"), h.ID("lightbox"), g.Attr("hidden", ""),
		g.Attr("role", "dialog"), g.Attr("aria-modal", "true"),
		button("close", "Close", "×"),
		button("prev", "Previous image", "‹"),
		h.Div(h.Class("stage"), h.ID("lightbox-stage"), h.Style("touch-action: none"),
			h.Img(h.ID("lightbox-image"), h.Alt(""), g.Attr("draggable", "false")),
		),
		button("next", "Next image", "›"),
		h.Div(h.Class("controls"),
			button("zoom-out", "Zoom out", "−"),
			button("reset-zoom", "Reset zoom", "1:1"),
			button("zoom-in", "Zoom in", "+"),
			h.Span(h.ID("lightbox-counter")),
		),
		h.P(h.ID("lightbox-caption")),
	)
}

func roll(images []domain.GalleryImage) g.Node {
	return h.Section(h.Class("roll"), g.Attr("data-carousel", application.CarouselRoll),
		g.Map(images, func(img domain.GalleryImage) g.Node {
			return h.Img(h.Src(img.URL), h.Alt(img.AltText))
		}),
	)
}

func services(list []domain.Servicio) g.Node {
	return h.Section(h.ID("services"), h.Class("services"), g.Attr("data-carousel", application.CarouselServices),
		h.H2(g.Text("Services")),
		h.Div(h.Class("cards"),
			g.Map(list, func(s domain.Servicio) g.Node {
				return h.Div(h.Class("card"), g.Attr("data-icon", s.IconKey),
					h.H3(g.Text(s.Name)),
					h.P(h.Class("price"), g.Text(FormatPrice(s.Price))),
					h.P(g.Text(s.Description)),
					h.Ul(g.Map(s.Features, func(f string) g.Node { return h.Li(g.Text(f)) })),
				)
			}),
		),
	)
}

func process(steps []catalog.ProcessStep) g.Node {
	return h.Section(h.Class("process"),
		h.H2(g.Text("How we work")),
		h.Ol(
			g.Map(steps, func(s catalog.ProcessStep) g.Node {
				return h.Li(h.H3(g.Text(s.Title)), h.P(g.Text(s.Description)))
			}),
		),
	)
}

func contact(studio catalog.Studio, list []domain.Servicio) g.Node {
	return h.Section(h.ID("contact"), h.Class("contact"),
		h.H2(g.Text("Get in touch")),
		h.P(g.Textf("%s · %s", studio.Email, studio.Phone)),
		h.Form(h.ID("contact-form"), h.Method("post"), h.Action("/api/contact"),
			field("Name", h.Input(h.Name("name"), h.Type("text"), h.Required())),
			field("Email", h.Input(h.Name("email"), h.Type("email"), h.Required())),
			field("Phone", h.Input(h.Name("phone"), h.Type("tel"))),
			field("Service", h.Select(h.Name("service"),
				h.Option(h.Value(""), g.Text("Select a service")),
				g.Map(list, func(s domain.Servicio) g.Node {
					return h.Option(h.Value(s.Slug), g.Text(s.Name))
				}),
			)),
			field("Message", h.Textarea(h.Name("message"), h.Rows("5"), h.Required())),
			h.Label(h.Class("agree"),
				h.Input(h.Name("agree"), h.Type("checkbox"), h.Value("true"), h.Required()),
				g.Text(" I agree to be contacted about my inquiry"),
			),
			h.Button(h.Type("submit"), h.ID("contact-submit"), g.Text("Send message")),
			h.P(h.ID("contact-status"), g.Attr("role", "status")),
		),
	)
}

func field(label string, input g.Node) g.Node {
	return h.Label(h.Class("field"), h.Span(g.Text(label)), input)
}

// FormatPrice renders a price in dollars with thousands separators. Cents
// are shown only when the rounded amount has them.
func FormatPrice(p float64) string {
	cents := int64(math.Round(p * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if rem := cents % 100; rem != 0 {
		return fmt.Sprintf("%s$%s.%02d", sign, s, rem)
	}
	return sign + "$" + s
}

type indexedImage struct {
	i   int
	img domain.GalleryImage
}

func indexed(images []domain.GalleryImage) []indexedImage {
	out := make([]indexedImage, len(images))
	for i, img := range images {
		out[i] = indexedImage{i: i, img: img}
	}
	return out
}
