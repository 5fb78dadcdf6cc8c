// Package views renders the storefront's HTML pages.
//
// Templates and static assets are embedded in the binary. Every page is
// parsed together with the shared layout and partials, and handlers pass
// a Page whose Data field holds the page specific model built by the
// constructors in models.go.
package views

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dreammattress/storefront/internal/icons"
	"github.com/dreammattress/storefront/internal/messaging"
	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render.
const (
	HomePage        = "home"
	ProductsPage    = "products"
	DetailPage      = "detail"
	NotFoundPage    = "notfound"
	AboutPage       = "about"
	ContactPage     = "contact"
	LoginPage       = "admin_login"
	DashboardPage   = "admin_dashboard"
	ProductFormPage = "admin_form"
	DeletePage      = "admin_delete"
)

var pages = []string{
	HomePage, ProductsPage, DetailPage, NotFoundPage, AboutPage, ContactPage,
	LoginPage, DashboardPage, ProductFormPage, DeletePage,
}

var shared = []string{"templates/layout.html", "templates/partials.html"}

// Site holds values every page needs.
type Site struct {
	Brand          string
	WhatsAppNumber string
	Year           int
}

// DemoLink is the generic WhatsApp demo request link.
func (s Site) DemoLink() string {
	return messaging.DemoLink(s.WhatsAppNumber, "")
}

// Page is what a template executes against.
type Page struct {
	Site   Site
	Title  string
	Active string // navbar path to highlight
	Admin  bool

	// Live makes the page reload when the catalog changes.
	Live bool

	Data any
}

// Renderer executes the page templates.
type Renderer struct {
	templates map[string]*template.Template
	site      Site
	now       func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWhatsAppNumber sets the number demo links open.
func WithWhatsAppNumber(number string) Option {
	return func(r *Renderer) {
		if number != "" {
			r.site.WhatsAppNumber = number
		}
	}
}

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New parses the embedded templates.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template, len(pages)),
		site: Site{
			Brand:          constants.BrandName,
			WhatsAppNumber: constants.DefaultWhatsAppNumber,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	base, err := template.New("layout").Funcs(funcs()).ParseFS(templateFS, shared...)
	if err != nil {
		return nil, errors.WrapParse("template", "layout", err)
	}
	for _, name := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, errors.WrapParse("template", name, err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, errors.WrapParse("template", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Site returns the site values pages are rendered with.
func (r *Renderer) Site() Site {
	s := r.site
	s.Year = r.now().Year()
	return s
}

// Render writes page name with status. The page is executed into a buffer
// first so a template failure never leaves a half written response.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, page Page) {
	t, ok := r.templates[name]
	if !ok {
		logging.FromContext(req.Context()).Error().Str("template", name).Msg("Unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page.Site = r.Site()
	if page.Title == "" {
		page.Title = page.Site.Brand
	} else {
		page.Title = page.Title + " | " + page.Site.Brand
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		logging.FromContext(req.Context()).Error().Err(err).Str("template", name).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(req.Context()).Warn().Err(err).Msg("Failed to write page")
	}
}

// Static returns the embedded static assets rooted at their directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var titleCaser = cases.Title(language.English)

// Title title-cases s, treating dashes and underscores as spaces.
func Title(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return titleCaser.String(s)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"icon":  icons.SVG,
		"title": Title,
		"add":   func(a, b int) int { return a + b },
		"demoLink": func(number, product string) string {
			return messaging.DemoLink(number, product)
		},
		"active": func(current, path string) string {
			if current == path {
				return "active"
			}
			return ""
		},
	}
}
