package catalogapi

import (
	"net/url"
	"strings"
)

// ImageResolver derives displayable URLs from the relative image paths the
// catalog stores. Absolute URLs are never stored.
type ImageResolver struct {
	publicBase string
}

func NewImageResolver(publicBase string) ImageResolver {
	return ImageResolver{publicBase: strings.TrimRight(publicBase, "/")}
}

// Resolve returns nil for a nil or empty path.
func (r ImageResolver) Resolve(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := r.publicBase + "/" + strings.TrimLeft(*path, "/")
	return &u
}

// ResolveBusted appends a cache-busting token so a replaced image at an
// unchanged path is revalidated.
func (r ImageResolver) ResolveBusted(path *string, token string) *string {
	u := r.Resolve(path)
	if u == nil || token == "" {
		return u
	}
	busted := *u + "?t=" + url.QueryEscape(token)
	return &busted
}
