package products

// DefaultLanguage is the translation every product is expected to carry.
const DefaultLanguage = "en"

// Translations maps a language tag (en, ar, fr, ...) to a localized string.
type Translations map[string]string

type Product struct {
	ID                      int64        `json:"id"`
	ProductCode             string       `json:"product_code"`
	NameTranslations        Translations `json:"name_translations"`
	DescriptionTranslations Translations `json:"description_translations"`
	MaterialProperty        string       `json:"material_property"`
	ProductCategory         string       `json:"product_category"`
	WeightUnit              string       `json:"weight_unit"`
	Barcode                 string       `json:"barcode"`
	CountryOriginName       string       `json:"country_origin_name"`
	Image                   *string      `json:"image"`
	InStock                 bool         `json:"in_stock"`
	IsHidden                bool         `json:"is_hidden"`
	IsNew                   bool         `json:"is_new"`
	Variants                []Variant    `json:"variants"`
}

// Variant is a sized/packaged instance of a product. ProductID is a
// back-reference only; the owning product holds the variant list.
type Variant struct {
	ID             int64   `json:"id"`
	ProductID      int64   `json:"product_id"`
	Size           string  `json:"size"`
	BoxDimensions  string  `json:"box_dimensions"`
	StandardWeight string  `json:"standard_weight"`
	Packaging      string  `json:"packaging,omitempty"`
	Image          *string `json:"image"`
	IsHidden       bool    `json:"is_hidden"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// Name returns the product name in lang, falling back to English.
func (p Product) Name(lang string) string {
	return p.NameTranslations.Get(lang)
}

// Description returns the product description in lang, falling back to English.
func (p Product) Description(lang string) string {
	return p.DescriptionTranslations.Get(lang)
}

func (t Translations) Get(lang string) string {
	if v := t[lang]; v != "" {
		return v
	}
	return t[DefaultLanguage]
}

// Variant returns the variant with the given id.
func (p Product) Variant(id int64) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Clone returns a deep copy so callers never alias store-owned maps or slices.
func (p Product) Clone() Product {
	out := p
	out.NameTranslations = cloneTranslations(p.NameTranslations)
	out.DescriptionTranslations = cloneTranslations(p.DescriptionTranslations)
	out.Image = cloneString(p.Image)
	if p.Variants != nil {
		out.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			v.Image = cloneString(v.Image)
			out.Variants[i] = v
		}
	}
	return out
}

// WithImage returns a copy of p with its image path replaced.
func (p Product) WithImage(path string) Product {
	out := p.Clone()
	out.Image = &path
	return out
}

// WithVariantImage returns a copy of p where the matching variant's image path
// is replaced. ok is false when p has no such variant.
func (p Product) WithVariantImage(variantID int64, path string) (Product, bool) {
	return p.withVariant(variantID, func(v *Variant) {
		v.Image = &path
	})
}

// WithVariantHidden returns a copy of p with the matching variant's hidden flag set.
func (p Product) WithVariantHidden(variantID int64, hidden bool) (Product, bool) {
	return p.withVariant(variantID, func(v *Variant) {
		v.IsHidden = hidden
	})
}

// WithVariantPackaging returns a copy of p with the matching variant's packaging set.
func (p Product) WithVariantPackaging(variantID int64, packaging string) (Product, bool) {
	return p.withVariant(variantID, func(v *Variant) {
		v.Packaging = packaging
	})
}

func (p Product) withVariant(variantID int64, fn func(v *Variant)) (Product, bool) {
	out := p.Clone()
	for i := range out.Variants {
		if out.Variants[i].ID == variantID {
			fn(&out.Variants[i])
			return out, true
		}
	}
	return p, false
}

func cloneTranslations(t Translations) Translations {
	if t == nil {
		return nil
	}
	out := make(Translations, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ProductsResponse is the envelope the remote catalog API wraps every payload in.
type ProductsResponse struct {
	Status  bool      `json:"status"`
	Message string    `json:"message"`
	Data    []Product `json:"data"`
}
