package products

// Find returns the first product matching id on either identifier field.
func Find(list []Product, id string) (Product, bool) {
	for _, p := range list {
		if p.Matches(id) {
			return p, true
		}
	}
	return Product{}, false
}

// Clone deep-copies a product list.
func Clone(list []Product) []Product {
	if list == nil {
		return nil
	}
	out := make([]Product, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out
}

// Append returns a new list with p at the end.
func Append(list []Product, p Product) []Product {
	out := make([]Product, 0, len(list)+1)
	out = append(out, list...)
	return append(out, p)
}

// ReplaceMatching returns a new list where every record sharing an
// identifier with saved is replaced by saved. Records whose identifiers
// match none are left as they are.
func ReplaceMatching(list []Product, saved Product) []Product {
	out := make([]Product, len(list))
	for i, p := range list {
		if p.SameRecord(saved) {
			out[i] = saved
			continue
		}
		out[i] = p
	}
	return out
}

// Unique drops later records whose resolved identifier was already seen.
// Records without any identifier are kept.
func Unique(list []Product) []Product {
	seen := make(map[string]struct{}, len(list))
	out := make([]Product, 0, len(list))
	for _, p := range list {
		id := p.ID()
		if id != "" {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}
