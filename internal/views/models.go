package views

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dreammattress/storefront/internal/admin"
	"github.com/dreammattress/storefront/internal/icons"
	"github.com/dreammattress/storefront/internal/lightbox"
	"github.com/dreammattress/storefront/internal/messaging"
	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/products"
)

// FeaturedCount is how many products the home page previews.
const FeaturedCount = 3

// Detail tabs.
const (
	SpecsTab   = "specs"
	ReviewsTab = "reviews"
	FAQTab     = "faq"
)

// SafeImage marks src as safe for an img element. http(s), relative and
// inline image data are allowed; anything else yields the placeholder.
func SafeImage(src string) template.URL {
	src = strings.TrimSpace(src)
	if src == "" {
		return constants.PlaceholderImage
	}
	lower := strings.ToLower(src)
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "/"):
		return template.URL(src) //nolint:gosec // scheme checked above
	}
	if u, err := url.Parse(src); err == nil && u.Scheme == "" {
		return template.URL(src) //nolint:gosec // relative reference
	}
	return constants.PlaceholderImage
}

// DetailURL is the detail page path for id.
func DetailURL(id string) string {
	return "/product/" + url.PathEscape(id)
}

// ProductCard is one entry of the listing grid.
type ProductCard struct {
	ID          string
	Name        string
	Description string
	Image       template.URL
	Price       string
	DemoLink    string
	DetailURL   string
}

// NewProductCard projects p for the listing.
func NewProductCard(p products.Product, whatsapp string) ProductCard {
	return ProductCard{
		ID:          p.ID(),
		Name:        p.Name,
		Description: p.Description,
		Image:       SafeImage(p.MainImage),
		Price:       "$" + p.PriceLabel(),
		DemoLink:    messaging.DemoLink(whatsapp, p.Name),
		DetailURL:   DetailURL(p.ID()),
	}
}

// NewProductCards projects list in order.
func NewProductCards(list []products.Product, whatsapp string) []ProductCard {
	cards := make([]ProductCard, 0, len(list))
	for _, p := range list {
		cards = append(cards, NewProductCard(p, whatsapp))
	}
	return cards
}

// HomeView is the home page model.
type HomeView struct {
	Featured []ProductCard
}

// NewHome previews the first products of the catalog.
func NewHome(list []products.Product, whatsapp string) HomeView {
	if len(list) > FeaturedCount {
		list = list[:FeaturedCount]
	}
	return HomeView{Featured: NewProductCards(list, whatsapp)}
}

// ProductsView is the listing page model.
type ProductsView struct {
	Cards []ProductCard
}

// DetailQuery holds the detail page's query parameters. Negative indexes
// mean unset.
type DetailQuery struct {
	Image    int
	Lightbox int
	Tab      string
}

// ParseDetailQuery reads image, lightbox and tab. Malformed values are
// treated as absent.
func ParseDetailQuery(q url.Values) DetailQuery {
	out := DetailQuery{Image: -1, Lightbox: -1, Tab: SpecsTab}
	if n, err := strconv.Atoi(q.Get("image")); err == nil && n >= 0 {
		out.Image = n
	}
	if n, err := strconv.Atoi(q.Get("lightbox")); err == nil && n >= 0 {
		out.Lightbox = n
	}
	switch tab := q.Get("tab"); tab {
	case ReviewsTab, FAQTab:
		out.Tab = tab
	}
	return out
}

// GalleryItem is one thumbnail.
type GalleryItem struct {
	Index    int
	Image    template.URL
	Selected bool
	URL      string
}

// FeatureView is a feature with its icon resolved. Unknown icons leave
// Icon empty so only the label renders.
type FeatureView struct {
	Icon  template.HTML
	Label string
}

// SpecRow is one specification line.
type SpecRow struct {
	Label string
	Value string
}

// LightboxView is the overlay on the detail page.
type LightboxView struct {
	Image    template.URL
	Counter  string
	ShowNav  bool
	PrevURL  string
	NextURL  string
	CloseURL string
}

// DetailView is the detail page model.
type DetailView struct {
	Product      products.Product
	DisplayImage template.URL
	OpenURL      string
	Gallery      []GalleryItem
	Highlights   []string
	Features     []FeatureView
	Specs        []SpecRow
	DemoLink     string
	Tab          string
	TabURLs      map[string]string
	Lightbox     *LightboxView
}

// NotAvailable stands in for missing specification values.
const NotAvailable = "N/A"

// NewDetail builds the detail page for p. The displayed image falls back
// from the selected gallery image to the main image to the placeholder.
// Without an image query the first gallery image is selected.
func NewDetail(p products.Product, q DetailQuery, whatsapp string) DetailView {
	p = p.WithDefaults()
	base := DetailURL(p.ID())

	want := q.Image
	if want < 0 {
		want = 0
	}
	selected := -1
	display := p.MainImage
	if want < len(p.Images) && strings.TrimSpace(p.Images[want]) != "" {
		selected = want
		display = p.Images[want]
	}

	v := DetailView{
		Product:      p,
		DisplayImage: SafeImage(display),
		Highlights:   p.Highlights,
		DemoLink:     messaging.DemoLink(whatsapp, p.Name),
		Tab:          q.Tab,
		TabURLs:      map[string]string{},
	}

	if len(p.Images) > 0 {
		start := selected
		if start < 0 {
			start = 0
		}
		v.OpenURL = detailURL(base, selected, start, "")
	}
	for i, img := range p.Images {
		v.Gallery = append(v.Gallery, GalleryItem{
			Index:    i,
			Image:    SafeImage(img),
			Selected: i == selected,
			URL:      detailURL(base, i, -1, q.Tab),
		})
	}

	for _, f := range p.Features {
		v.Features = append(v.Features, FeatureView{Icon: icons.SVG(f.Icon, "feature-icon"), Label: f.Label})
	}

	s := p.Specifications
	for _, row := range []SpecRow{
		{"Size Options", s.Size},
		{"Material", s.Material},
		{"Firmness Level", s.Firmness},
		{"Warranty", s.Warranty},
		{"Dimensions", s.Dimensions},
	} {
		if strings.TrimSpace(row.Value) == "" {
			row.Value = NotAvailable
		}
		v.Specs = append(v.Specs, row)
	}

	for _, tab := range []string{SpecsTab, ReviewsTab, FAQTab} {
		v.TabURLs[tab] = detailURL(base, selected, -1, tab)
	}

	if q.Lightbox >= 0 && len(p.Images) > 0 {
		lb := lightbox.New(p.Images, q.Lightbox)
		v.Lightbox = &LightboxView{
			Image:    SafeImage(lb.Current()),
			Counter:  lb.Counter(),
			ShowNav:  lb.ShowNavigation(),
			PrevURL:  detailURL(base, selected, lb.PreviousIndex(), q.Tab),
			NextURL:  detailURL(base, selected, lb.NextIndex(), q.Tab),
			CloseURL: detailURL(base, selected, -1, q.Tab),
		}
	}
	return v
}

func detailURL(base string, image, lightboxIndex int, tab string) string {
	q := url.Values{}
	if image >= 0 {
		q.Set("image", strconv.Itoa(image))
	}
	if lightboxIndex >= 0 {
		q.Set("lightbox", strconv.Itoa(lightboxIndex))
	}
	if tab != "" && tab != SpecsTab {
		q.Set("tab", tab)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// NoticeView is a notice ready for display.
type NoticeView struct {
	Message     string
	Blocking    bool
	RemainingMS int64
}

// NewNotice projects n at now. It returns nil when nothing should show.
func NewNotice(n admin.Notice, now time.Time) *NoticeView {
	if !n.Active(now) {
		return nil
	}
	return &NoticeView{
		Message:     n.Message,
		Blocking:    n.Blocking(),
		RemainingMS: n.Remaining(now).Milliseconds(),
	}
}

// LoginView is the admin login page model.
type LoginView struct {
	Error string
}

// AdminRow is one dashboard table row.
type AdminRow struct {
	ID          string
	Name        string
	Image       template.URL
	Price       string
	Description string
	EditURL     string
	DeleteURL   string
}

// DashboardView is the admin dashboard model.
type DashboardView struct {
	Rows   []AdminRow
	Notice *NoticeView
}

// NewDashboard lists the catalog for management.
func NewDashboard(list []products.Product, notice *NoticeView) DashboardView {
	rows := make([]AdminRow, 0, len(list))
	for _, p := range list {
		id := url.PathEscape(p.ID())
		rows = append(rows, AdminRow{
			ID:          p.ID(),
			Name:        p.Name,
			Image:       SafeImage(p.MainImage),
			Price:       "$" + p.PriceLabel(),
			Description: p.Description,
			EditURL:     "/admin/products/" + id + "/edit",
			DeleteURL:   "/admin/products/" + id + "/delete",
		})
	}
	return DashboardView{Rows: rows, Notice: notice}
}

// SpecField is one specification input.
type SpecField struct {
	Name  string
	Label string
	Value string
}

// ImageSlot is one gallery input on the form.
type ImageSlot struct {
	Index   int
	Value   string
	Preview template.URL
	File    string
	Error   string
}

// FeatureRow is one editable feature. Icon is the canonical icon name
// when the stored value is known; Custom keeps an unknown value selectable.
type FeatureRow struct {
	Index  int
	Icon   string
	Custom string
	Label  string
}

// FormView is the create/edit form model.
type FormView struct {
	Draft      *admin.Draft
	Heading    string
	Action     string
	MainImage  template.URL
	Slots      []ImageSlot
	Features   []FeatureRow
	Specs      []SpecField
	IconNames  []icons.Name
	Highlights string
	Errors     map[string]string
	Notice     *NoticeView
}

// NewForm builds the form for d. notice is shown as a blocking dialog
// over the form when a save failed.
func NewForm(d *admin.Draft, notice *NoticeView) FormView {
	v := FormView{
		Draft:      d,
		Heading:    "Add New Product",
		Action:     "/admin/products",
		Highlights: d.HighlightsText(),
		IconNames:  icons.Names(),
		Errors:     d.Errors,
		Notice:     notice,
	}
	if !d.Creating() {
		v.Heading = "Edit Product"
		v.Action = "/admin/products/" + url.PathEscape(d.TargetID)
	}
	if strings.TrimSpace(d.Product.MainImage) != "" {
		v.MainImage = SafeImage(d.Product.MainImage)
	}

	for i, img := range d.Product.Images {
		slot := ImageSlot{
			Index: i,
			Value: img,
			File:  admin.FieldImageFilePrefix + strconv.Itoa(i),
		}
		if strings.TrimSpace(img) != "" {
			slot.Preview = SafeImage(img)
		}
		slot.Error = d.Errors[slot.File]
		v.Slots = append(v.Slots, slot)
	}

	for i, f := range d.Product.Features {
		row := FeatureRow{Index: i, Label: f.Label}
		if name, ok := icons.Lookup(f.Icon); ok {
			row.Icon = string(name)
		} else if strings.TrimSpace(f.Icon) != "" {
			row.Icon = f.Icon
			row.Custom = f.Icon
		}
		v.Features = append(v.Features, row)
	}

	s := d.Product.Specifications
	values := map[string]string{
		"size":       s.Size,
		"material":   s.Material,
		"firmness":   s.Firmness,
		"warranty":   s.Warranty,
		"dimensions": s.Dimensions,
	}
	for _, key := range admin.SpecFields {
		v.Specs = append(v.Specs, SpecField{
			Name:  admin.FieldSpecPrefix + key,
			Label: Title(key),
			Value: values[key],
		})
	}
	return v
}

// DeleteView is the delete confirmation model.
type DeleteView struct {
	Product   products.Product
	ActionURL string
}

// ConfirmDeleteMessage is the question asked before a delete.
const ConfirmDeleteMessage = "Are you sure you want to delete this product?"

// NewDelete builds the confirmation step for p.
func NewDelete(p products.Product) DeleteView {
	return DeleteView{
		Product:   p,
		ActionURL: "/admin/products/" + url.PathEscape(p.ID()) + "/delete",
	}
}
