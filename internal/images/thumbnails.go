package images

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Thumbnailer turns a full-size image URL into a URL for a small preview.
type Thumbnailer interface {
	Thumbnail(sourceURL string) (string, error)
}

// CloudinaryThumbnailer serves previews through Cloudinary "fetch" delivery:
// Cloudinary pulls the full-size image from the catalog's public image base, resizes
// and caches it. Nothing is uploaded.
type CloudinaryThumbnailer struct {
	cld            *cloudinary.Cloudinary
	transformation string
}

func NewCloudinaryThumbnailer(cld *cloudinary.Cloudinary, width, height int) *CloudinaryThumbnailer {
	return &CloudinaryThumbnailer{
		cld:            cld,
		transformation: fmt.Sprintf("c_fill,w_%d,h_%d,q_auto,f_auto", width, height),
	}
}

func (t *CloudinaryThumbnailer) Thumbnail(sourceURL string) (string, error) {
	img, err := t.cld.Image(sourceURL)
	if err != nil {
		return "", fmt.Errorf("cloudinary image: %w", err)
	}
	img.DeliveryType = "fetch"
	img.Transformation = t.transformation

	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary url: %w", err)
	}
	return url, nil
}

// Passthrough is used when no CDN is configured; previews use the full-size image.
type Passthrough struct{}

func (Passthrough) Thumbnail(sourceURL string) (string, error) {
	return sourceURL, nil
}
