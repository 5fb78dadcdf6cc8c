package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/dreammattress/storefront/pkg/products"
)

// ProductsData lays out list as a table. Wide adds the gallery, feature
// and specification columns.
func ProductsData(list []products.Product, wide bool) Data {
	d := Data{
		Headers: []string{"id", "name", "price", "description"},
		Align:   []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	if wide {
		d.Headers = append(d.Headers, "images", "features", "size", "firmness")
		d.Align = append(d.Align, AlignRight, AlignLeft, AlignLeft, AlignLeft)
	}

	for _, p := range list {
		row := []string{p.ID(), p.Name, "$" + p.PriceLabel(), truncate(p.Description, 48)}
		if wide {
			labels := make([]string, 0, len(p.Features))
			for _, f := range p.Features {
				labels = append(labels, f.Label)
			}
			row = append(row,
				strconv.Itoa(len(p.GalleryImages())),
				strings.Join(labels, ", "),
				orNA(p.Specifications.Size),
				orNA(p.Specifications.Firmness),
			)
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

// WriteProducts writes list to w in format.
func WriteProducts(w io.Writer, list []products.Product, format Format) error {
	var data any = list
	switch format {
	case FormatTable, FormatWide, "":
		data = ProductsData(list, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
