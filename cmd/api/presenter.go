package main

import (
	"catalogadmin/internal/domain/products"
)

type variantResponse struct {
	products.Variant
	ImageURL     *string `json:"image_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// productResponse is a product as the UI renders it: localized texts and
// display URLs derived from the stored relative image paths.
type productResponse struct {
	products.Product
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	ImageURL     *string           `json:"image_url"`
	ThumbnailURL *string           `json:"thumbnail_url"`
	Variants     []variantResponse `json:"variants"`
}

func (app *application) presentProduct(p products.Product, lang string) productResponse {
	out := productResponse{
		Product:     p,
		Name:        p.Name(lang),
		Description: p.Description(lang),
		Variants:    make([]variantResponse, len(p.Variants)),
	}
	out.ImageURL, out.ThumbnailURL = app.imageURLs(p.Image)
	for i, v := range p.Variants {
		vr := variantResponse{Variant: v}
		vr.ImageURL, vr.ThumbnailURL = app.imageURLs(v.Image)
		out.Variants[i] = vr
	}
	return out
}

func (app *application) presentProducts(list []products.Product, lang string) []productResponse {
	out := make([]productResponse, len(list))
	for i, p := range list {
		out[i] = app.presentProduct(p, lang)
	}
	return out
}

func (app *application) imageURLs(path *string) (*string, *string) {
	full := app.images.Resolve(path)
	if full == nil {
		return nil, nil
	}
	thumb, err := app.thumbnails.Thumbnail(*full)
	if err != nil {
		app.logger.Warnw("thumbnail url", "image", *full, "error", err)
		return full, full
	}
	return full, &thumb
}
