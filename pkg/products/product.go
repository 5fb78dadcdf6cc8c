// Package products defines the Product record exchanged with the product API
// and the list helpers the catalog and admin workflow build on.
package products

import (
	"strconv"
	"strings"

	"github.com/dreammattress/storefront/pkg/errors"
)

// Product is one mattress listing.
//
// The product API identifies records either by a store-assigned key (`_id`)
// or by a legacy local key (`id`). Both are kept and treated as one logical
// identifier; ID resolves it with the store key taking precedence.
type Product struct {
	StoreID             string         `json:"_id,omitempty" yaml:"_id,omitempty"`
	LocalID             string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name                string         `json:"name" yaml:"name"`
	Description         string         `json:"description" yaml:"description"`
	DetailedDescription string         `json:"detailedDescription" yaml:"detailedDescription"`
	Price               float64        `json:"price" yaml:"price"`
	MainImage           string         `json:"mainImage" yaml:"mainImage"`
	Images              []string       `json:"images" yaml:"images"`
	Highlights          []string       `json:"highlights" yaml:"highlights"`
	Specifications      Specifications `json:"specifications" yaml:"specifications"`
	Features            []Feature      `json:"features" yaml:"features"`
}

// Specifications are the five optional spec sheet fields. All five keys
// are always encoded so a write can clear a field with "".
type Specifications struct {
	Size       string `json:"size" yaml:"size,omitempty"`
	Material   string `json:"material" yaml:"material,omitempty"`
	Firmness   string `json:"firmness" yaml:"firmness,omitempty"`
	Warranty   string `json:"warranty" yaml:"warranty,omitempty"`
	Dimensions string `json:"dimensions" yaml:"dimensions,omitempty"`
}

// Feature is an icon name paired with a short label.
type Feature struct {
	Icon  string `json:"icon" yaml:"icon"`
	Label string `json:"label" yaml:"label"`
}

// ID returns the resolved identifier, preferring the store key.
func (p Product) ID() string {
	if p.StoreID != "" {
		return p.StoreID
	}
	return p.LocalID
}

// Matches reports whether id equals either identifier field.
func (p Product) Matches(id string) bool {
	if id == "" {
		return false
	}
	return p.StoreID == id || p.LocalID == id
}

// SameRecord reports whether p and other share an identifier.
func (p Product) SameRecord(other Product) bool {
	return p.Matches(other.StoreID) || p.Matches(other.LocalID)
}

// PriceLabel renders the price as a plain number, e.g. "499" or "1299.5".
func (p Product) PriceLabel() string {
	return strconv.FormatFloat(p.Price, 'f', -1, 64)
}

// WithDefaults returns a copy with nil sequences replaced by empty ones.
func (p Product) WithDefaults() Product {
	out := p.Clone()
	if out.Images == nil {
		out.Images = []string{}
	}
	if out.Highlights == nil {
		out.Highlights = []string{}
	}
	if out.Features == nil {
		out.Features = []Feature{}
	}
	return out
}

// Clone returns a deep copy whose sequences do not alias p's.
func (p Product) Clone() Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string{}, p.Images...)
	}
	if p.Highlights != nil {
		out.Highlights = append([]string{}, p.Highlights...)
	}
	if p.Features != nil {
		out.Features = append([]Feature{}, p.Features...)
	}
	return out
}

// GalleryImages returns the non-blank entries of Images in order.
func (p Product) GalleryImages() []string {
	out := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			out = append(out, img)
		}
	}
	return out
}

// Validate checks the fields the storefront relies on.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewValidationError("name", p.Name, "is required")
	}
	if p.Price < 0 {
		return errors.NewValidationError("price", p.Price, "must not be negative")
	}
	return nil
}
