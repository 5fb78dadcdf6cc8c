package devapi

import "github.com/dreammattress/storefront/pkg/products"

// SampleProducts is the catalog a fresh development database starts with.
func SampleProducts() []products.Product {
	return []products.Product{
		{
			Name:                "Cloud Comfort Plush",
			Description:         "Pillow-top softness with pocketed coil support.",
			DetailedDescription: "Seven layers of pressure-relieving foam over individually wrapped coils keep you cool and supported all night.",
			Price:               499,
			MainImage:           "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?w=800",
			Images: []string{
				"https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?w=800",
				"https://images.unsplash.com/photo-1540518614846-7eded433c457?w=800",
			},
			Highlights: []string{"Cooling gel layer", "Edge support", "Motion isolation"},
			Specifications: products.Specifications{
				Size:       "Queen",
				Material:   "Memory foam and pocketed coils",
				Firmness:   "Medium soft",
				Warranty:   "10 years",
				Dimensions: "60 x 80 x 12 in",
			},
			Features: []products.Feature{
				{Icon: "Shield", Label: "10 year warranty"},
				{Icon: "Check", Label: "Free delivery"},
				{Icon: "Moon", Label: "100 night trial"},
			},
		},
		{
			Name:                "Orthopedic Firm",
			Description:         "Firm support for back and stomach sleepers.",
			DetailedDescription: "High-density support foam keeps the spine aligned while a breathable cover wicks away heat.",
			Price:               649,
			MainImage:           "https://images.unsplash.com/photo-1631049307264-da0ec9d70304?w=800",
			Images: []string{
				"https://images.unsplash.com/photo-1631049307264-da0ec9d70304?w=800",
			},
			Highlights: []string{"Spinal alignment", "Breathable cover"},
			Specifications: products.Specifications{
				Size:     "King",
				Material: "High-density foam",
				Firmness: "Firm",
				Warranty: "12 years",
			},
			Features: []products.Feature{
				{Icon: "Award", Label: "Chiropractor approved"},
			},
		},
	}
}
