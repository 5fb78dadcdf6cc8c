package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/dreammattress/storefront/pkg/products"
)

// Mode says whether a draft creates a record or edits one.
type Mode int

// Draft modes.
const (
	CreateMode Mode = iota
	EditMode
)

// Draft is the in-progress form state for one product. Editing the draft
// never touches the catalog or the API until it is submitted.
type Draft struct {
	Mode Mode

	// TempID is a time-derived placeholder used only to key form state
	// while creating. It is never sent to the API.
	TempID string

	// TargetID is the identifier the edit will be sent to.
	TargetID string

	Product   products.Product
	PriceText string

	// Errors maps form field names to validation messages.
	Errors map[string]string
}

// NewDraft returns an empty create-mode draft: one empty gallery slot and
// five empty specification fields.
func NewDraft(now time.Time) *Draft {
	tempID := strconv.FormatInt(now.UnixMilli(), 10)
	return &Draft{
		Mode:   CreateMode,
		TempID: tempID,
		Product: products.Product{
			LocalID:    tempID,
			Images:     []string{""},
			Highlights: []string{},
			Features:   []products.Feature{},
		},
		PriceText: "0",
		Errors:    map[string]string{},
	}
}

// EditDraft returns a draft seeded with p, missing substructures backfilled.
// An empty gallery gets one empty slot so the form always shows an input.
func EditDraft(p products.Product) *Draft {
	d := &Draft{
		Mode:      EditMode,
		TargetID:  p.ID(),
		Product:   p.WithDefaults(),
		PriceText: p.PriceLabel(),
		Errors:    map[string]string{},
	}
	if len(d.Product.Images) == 0 {
		d.Product.Images = []string{""}
	}
	return d
}

// Creating reports whether the draft is in create mode.
func (d *Draft) Creating() bool {
	return d.Mode == CreateMode
}

// HighlightsText renders highlights as the comma-separated form value.
func (d *Draft) HighlightsText() string {
	return strings.Join(d.Product.Highlights, ", ")
}

// SetHighlights splits a comma-separated value into trimmed entries.
// Blank entries are dropped, so an empty value yields no highlights.
func (d *Draft) SetHighlights(text string) {
	d.Product.Highlights = SplitHighlights(text)
}

// SplitHighlights splits on commas and trims each entry, dropping blanks.
func SplitHighlights(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if h := strings.TrimSpace(part); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// AddImageSlot appends an empty gallery slot.
func (d *Draft) AddImageSlot() {
	d.Product.Images = append(d.Product.Images, "")
}

// RemoveImageSlot drops the gallery slot at i. Out of range is a no-op.
func (d *Draft) RemoveImageSlot(i int) {
	if i < 0 || i >= len(d.Product.Images) {
		return
	}
	d.Product.Images = append(d.Product.Images[:i:i], d.Product.Images[i+1:]...)
}

// AddFeature appends an empty feature row.
func (d *Draft) AddFeature() {
	d.Product.Features = append(d.Product.Features, products.Feature{})
}

// RemoveFeature drops the feature row at i. Out of range is a no-op.
func (d *Draft) RemoveFeature(i int) {
	if i < 0 || i >= len(d.Product.Features) {
		return
	}
	d.Product.Features = append(d.Product.Features[:i:i], d.Product.Features[i+1:]...)
}

// SetPrice parses the price field. Invalid or negative input is recorded
// in Errors and leaves the previous price in place.
func (d *Draft) SetPrice(text string) {
	d.PriceText = text
	text = strings.TrimSpace(text)
	if text == "" {
		d.Product.Price = 0
		return
	}
	price, err := strconv.ParseFloat(text, 64)
	if err != nil {
		d.Errors["price"] = "Price must be a number"
		return
	}
	if price < 0 {
		d.Errors["price"] = "Price must not be negative"
		return
	}
	d.Product.Price = price
}

// Valid reports whether the draft can be submitted, recording any
// problems in Errors.
func (d *Draft) Valid() bool {
	if strings.TrimSpace(d.Product.Name) == "" {
		d.Errors["name"] = "Product name is required"
	}
	return len(d.Errors) == 0
}

// Record returns the product to submit: identifiers stripped for create,
// blank gallery slots removed, and features without a label dropped.
func (d *Draft) Record() products.Product {
	p := d.Product.Clone().WithDefaults()
	if d.Creating() {
		p.LocalID = ""
		p.StoreID = ""
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			images = append(images, strings.TrimSpace(img))
		}
	}
	p.Images = images

	features := make([]products.Feature, 0, len(p.Features))
	for _, f := range p.Features {
		if strings.TrimSpace(f.Label) != "" {
			features = append(features, products.Feature{Icon: strings.TrimSpace(f.Icon), Label: strings.TrimSpace(f.Label)})
		}
	}
	p.Features = features
	return p
}
