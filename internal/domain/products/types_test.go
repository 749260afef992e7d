package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func sampleProduct() Product {
	return Product{
		ID:                      3,
		NameTranslations:        Translations{"en": "Honey", "ar": "عسل"},
		DescriptionTranslations: Translations{"en": "Raw honey"},
		Image:                   ptr("storage/products/old.jpg"),
		Variants: []Variant{
			{ID: 30, ProductID: 3, Size: "250g", Image: ptr("storage/variants/30.jpg")},
			{ID: 31, ProductID: 3, Size: "500g"},
		},
	}
}

func TestTranslations_FallBackToEnglish(t *testing.T) {
	p := sampleProduct()

	assert.Equal(t, "عسل", p.Name("ar"))
	assert.Equal(t, "Honey", p.Name("fr"))
	assert.Equal(t, "Raw honey", p.Description("ar"))
}

func TestClone_DoesNotAlias(t *testing.T) {
	p := sampleProduct()
	c := p.Clone()

	c.NameTranslations["en"] = "Changed"
	*c.Image = "changed.jpg"
	c.Variants[0].Size = "1kg"
	*c.Variants[0].Image = "changed.jpg"

	assert.Equal(t, "Honey", p.NameTranslations["en"])
	assert.Equal(t, "storage/products/old.jpg", *p.Image)
	assert.Equal(t, "250g", p.Variants[0].Size)
	assert.Equal(t, "storage/variants/30.jpg", *p.Variants[0].Image)
}

func TestWithImage(t *testing.T) {
	p := sampleProduct()

	got := p.WithImage("storage/products/new.jpg")

	require.NotNil(t, got.Image)
	assert.Equal(t, "storage/products/new.jpg", *got.Image)
	assert.Equal(t, "storage/products/old.jpg", *p.Image)
}

func TestWithVariantImage(t *testing.T) {
	p := sampleProduct()

	got, ok := p.WithVariantImage(31, "storage/variants/31.jpg")

	require.True(t, ok)
	require.NotNil(t, got.Variants[1].Image)
	assert.Equal(t, "storage/variants/31.jpg", *got.Variants[1].Image)
	assert.Nil(t, p.Variants[1].Image)
}

func TestWithVariant_UnknownVariant(t *testing.T) {
	p := sampleProduct()

	_, ok := p.WithVariantHidden(99, true)
	assert.False(t, ok)

	_, ok = p.WithVariantPackaging(99, "Box")
	assert.False(t, ok)
}

func TestWithVariantHiddenAndPackaging(t *testing.T) {
	p := sampleProduct()

	got, ok := p.WithVariantHidden(30, true)
	require.True(t, ok)
	got, ok = got.WithVariantPackaging(30, "Glass jar")
	require.True(t, ok)

	v, ok := got.Variant(30)
	require.True(t, ok)
	assert.True(t, v.IsHidden)
	assert.Equal(t, "Glass jar", v.Packaging)
	assert.False(t, p.Variants[0].IsHidden)
}
