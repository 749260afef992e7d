package products

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the products matching term, in source order. An empty term
// returns products unchanged. Matching is a case-insensitive substring scan over
// the English and Arabic name, the product code, the English and Arabic
// description and the category.
func Filter(list []Product, term string) []Product {
	if term == "" {
		return list
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]Product, 0, len(list))
	for _, p := range list {
		if matches(fold, p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matches(fold cases.Caser, p Product, needle string) bool {
	fields := [...]string{
		p.NameTranslations["en"],
		p.NameTranslations["ar"],
		p.ProductCode,
		p.DescriptionTranslations["en"],
		p.DescriptionTranslations["ar"],
		p.ProductCategory,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}
