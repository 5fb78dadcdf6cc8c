package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/products"
)

// Form field names shared with the product form template.
const (
	FieldAction              = "action"
	FieldTempID              = "tempId"
	FieldName                = "name"
	FieldPrice               = "price"
	FieldDescription         = "description"
	FieldDetailedDescription = "detailedDescription"
	FieldMainImage           = "mainImage"
	FieldMainImageFile       = "mainImageFile"
	FieldImages              = "images"
	FieldImageFilePrefix     = "imageFile-"
	FieldHighlights          = "highlights"
	FieldFeatureIcon         = "featureIcon"
	FieldFeatureLabel        = "featureLabel"
	FieldSpecPrefix          = "spec."
)

// SpecFields lists the specification keys in form order.
var SpecFields = []string{"size", "material", "firmness", "warranty", "dimensions"}

// ActionKind is what a product form submission asks for.
type ActionKind int

// Form actions. Only ActionSave reaches the API; the rest re-render the draft.
const (
	ActionSave ActionKind = iota
	ActionAddImage
	ActionRemoveImage
	ActionAddFeature
	ActionRemoveFeature
)

// Action is a parsed form action. Index is set for removals.
type Action struct {
	Kind  ActionKind
	Index int
}

// ParseAction decodes values like "save", "add-image" or "remove-image:2".
func ParseAction(value string) Action {
	name, arg, _ := strings.Cut(value, ":")
	index, err := strconv.Atoi(arg)
	if err != nil {
		index = -1
	}
	switch name {
	case "add-image":
		return Action{Kind: ActionAddImage}
	case "remove-image":
		return Action{Kind: ActionRemoveImage, Index: index}
	case "add-feature":
		return Action{Kind: ActionAddFeature}
	case "remove-feature":
		return Action{Kind: ActionRemoveFeature, Index: index}
	}
	return Action{Kind: ActionSave}
}

// Apply performs a non-save action on the draft.
func (a Action) Apply(d *Draft) {
	switch a.Kind {
	case ActionAddImage:
		d.AddImageSlot()
	case ActionRemoveImage:
		d.RemoveImageSlot(a.Index)
	case ActionAddFeature:
		d.AddFeature()
	case ActionRemoveFeature:
		d.RemoveFeature(a.Index)
	}
}

// ParseDraft reads a product form submission into d, which carries the
// mode and identifiers. Uploaded files replace the URL typed into their
// slot. Upload problems are recorded in d.Errors; only an unreadable
// request is returned as an error.
func ParseDraft(r *http.Request, d *Draft) (Action, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
			return Action{}, errors.WrapParse("multipart", "product form", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return Action{}, errors.WrapParse("form", "product form", err)
	}

	if d.Creating() {
		if temp := r.PostFormValue(FieldTempID); temp != "" {
			d.TempID = temp
			d.Product.LocalID = temp
		}
	}

	p := &d.Product
	p.Name = strings.TrimSpace(r.PostFormValue(FieldName))
	p.Description = r.PostFormValue(FieldDescription)
	p.DetailedDescription = r.PostFormValue(FieldDetailedDescription)
	p.MainImage = strings.TrimSpace(r.PostFormValue(FieldMainImage))
	d.SetPrice(r.PostFormValue(FieldPrice))
	d.SetHighlights(r.PostFormValue(FieldHighlights))

	p.Specifications = products.Specifications{
		Size:       r.PostFormValue(FieldSpecPrefix + "size"),
		Material:   r.PostFormValue(FieldSpecPrefix + "material"),
		Firmness:   r.PostFormValue(FieldSpecPrefix + "firmness"),
		Warranty:   r.PostFormValue(FieldSpecPrefix + "warranty"),
		Dimensions: r.PostFormValue(FieldSpecPrefix + "dimensions"),
	}

	p.Images = append([]string{}, r.PostForm[FieldImages]...)

	iconsIn := r.PostForm[FieldFeatureIcon]
	labels := r.PostForm[FieldFeatureLabel]
	p.Features = make([]products.Feature, 0, len(labels))
	for i, label := range labels {
		f := products.Feature{Label: label}
		if i < len(iconsIn) {
			f.Icon = iconsIn[i]
		}
		p.Features = append(p.Features, f)
	}

	if data, err := inlineFormFile(r.MultipartForm, FieldMainImageFile); err != nil {
		d.Errors[FieldMainImage] = err.Error()
	} else if data != "" {
		p.MainImage = data
	}
	for i := range p.Images {
		key := FieldImageFilePrefix + strconv.Itoa(i)
		if data, err := inlineFormFile(r.MultipartForm, key); err != nil {
			d.Errors[key] = err.Error()
		} else if data != "" {
			p.Images[i] = data
		}
	}

	return ParseAction(r.PostFormValue(FieldAction)), nil
}
