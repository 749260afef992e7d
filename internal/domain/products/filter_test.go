package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func product(id int64, code, nameEN string) Product {
	return Product{
		ID:                      id,
		ProductCode:             code,
		NameTranslations:        Translations{"en": nameEN},
		DescriptionTranslations: Translations{"en": ""},
	}
}

func ids(list []Product) []int64 {
	out := make([]int64, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func TestFilter_ByCodePreservesOrder(t *testing.T) {
	list := []Product{product(1, "X1", "Alpha"), product(2, "Y2", "Beta"), product(3, "X3", "Gamma")}

	got := Filter(list, "x")

	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestFilter_EmptyTermReturnsInput(t *testing.T) {
	list := []Product{product(1, "X1", "Alpha"), product(2, "Y2", "Beta")}

	got := Filter(list, "")

	assert.Equal(t, list, got)
}

func TestFilter_WhitespaceTermIsUsedAsTyped(t *testing.T) {
	list := []Product{product(1, "X1", "Olive Oil"), product(2, "Y2", "Dates")}

	got := Filter(list, " ")

	assert.Equal(t, []int64{1}, ids(got))
}

func TestFilter_MatchesAllSearchedFields(t *testing.T) {
	p := Product{
		ID:                      9,
		ProductCode:             "CODE-9",
		NameTranslations:        Translations{"en": "Green Tea", "ar": "شاي أخضر"},
		DescriptionTranslations: Translations{"en": "Loose leaf", "ar": "أوراق سائبة"},
		ProductCategory:         "Beverages",
	}
	list := []Product{p}

	for _, term := range []string{"green", "شاي", "code-9", "LEAF", "سائبة", "bever"} {
		assert.Len(t, Filter(list, term), 1, "term %q", term)
	}
	assert.Empty(t, Filter(list, "coffee"))
}

func TestFilter_IgnoresOtherLanguagesAndFields(t *testing.T) {
	p := Product{
		ID:                      1,
		NameTranslations:        Translations{"en": "Rice", "fr": "Riz basmati"},
		DescriptionTranslations: Translations{"en": ""},
		Barcode:                 "basmati",
	}

	assert.Empty(t, Filter([]Product{p}, "basmati"))
}

func TestFilter_CaseFolding(t *testing.T) {
	list := []Product{product(1, "", "STRASSE"), product(2, "", "Straße")}

	got := Filter(list, "straße")

	// full case folding maps ß to ss, so both match
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	list := []Product{product(1, "X1", "Alpha"), product(2, "Y2", "Max"), product(3, "Z3", "Gamma")}

	once := Filter(list, "x")
	twice := Filter(once, "x")

	assert.Equal(t, ids(once), ids(twice))
}

func TestFilter_MissingTranslationsDoNotMatch(t *testing.T) {
	p := Product{ID: 1, ProductCode: "A1"}

	assert.Empty(t, Filter([]Product{p}, "en"))
	assert.Len(t, Filter([]Product{p}, "a1"), 1)
}
