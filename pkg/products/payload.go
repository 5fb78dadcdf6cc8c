package products

// Payload is the write body sent on create and update. It carries every
// mutable field and never an identifier.
type Payload struct {
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	DetailedDescription string         `json:"detailedDescription"`
	Price               float64        `json:"price"`
	MainImage           string         `json:"mainImage"`
	Images              []string       `json:"images"`
	Highlights          []string       `json:"highlights"`
	Specifications      Specifications `json:"specifications"`
	Features            []Feature      `json:"features"`
}

// Payload strips the identifiers from p.
func (p Product) Payload() Payload {
	d := p.WithDefaults()
	return Payload{
		Name:                d.Name,
		Description:         d.Description,
		DetailedDescription: d.DetailedDescription,
		Price:               d.Price,
		MainImage:           d.MainImage,
		Images:              d.Images,
		Highlights:          d.Highlights,
		Specifications:      d.Specifications,
		Features:            d.Features,
	}
}
