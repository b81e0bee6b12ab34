package domain

import "strings"

// ProductFilter is the structured form of the catalog list query. Zero
// values mean "no constraint on that attribute"; all supplied constraints
// combine with logical AND. Soft-deleted products are always excluded and
// results are ordered by ascending price.
type ProductFilter struct {
	// Sizes matches products whose availableSizes intersects this set.
	Sizes []string
	// Name is a case-insensitive substring match against the title.
	Name string
	// PriceLessThan is an exclusive upper bound on price when positive.
	PriceLessThan float64
}

// ParseProductFilter translates the raw query parameters into a
// ProductFilter. An unknown size token fails the whole query rather than
// producing a partial filter.
func ParseProductFilter(size, name, priceLessThan string) (ProductFilter, error) {
	var f ProductFilter

	if size != "" {
		seen := make(map[string]struct{})
		for _, raw := range strings.Split(size, ",") {
			token := strings.ReplaceAll(raw, " ", "")
			if token == "" {
				continue
			}
			if !IsValidSize(token) {
				return ProductFilter{}, Invalidf("size",
					"enter a valid size, like %s", strings.Join(SizeTokens, " or "))
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			f.Sizes = append(f.Sizes, token)
		}
	}

	f.Name = strings.TrimSpace(name)

	if priceLessThan != "" {
		bound, ok := ParsePrice(priceLessThan)
		if !ok {
			return ProductFilter{}, Invalidf("priceLessThan", "must be a positive number")
		}
		f.PriceLessThan = bound
	}

	return f, nil
}

// Matches reports whether p satisfies every constraint of the filter.
// Storage backends with native query support translate the filter instead
// of calling this; the in-memory repository uses it directly.
func (f ProductFilter) Matches(p *Product) bool {
	if p.IsDeleted {
		return false
	}
	if len(f.Sizes) > 0 {
		intersects := false
		for _, s := range f.Sizes {
			if p.HasSize(s) {
				intersects = true
				break
			}
		}
		if !intersects {
			return false
		}
	}
	if f.Name != "" &&
		!strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Name)) {
		return false
	}
	if f.PriceLessThan > 0 && p.Price >= f.PriceLessThan {
		return false
	}
	return true
}
