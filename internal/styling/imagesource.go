package styling

import (
	"strings"

	"github.com/Veraticus/easy-style/internal/model"
)

// ImageState tracks how far a product card has fallen back.
type ImageState int

const (
	// ImagePrimary shows the cropped thumbnail, or the catalog image without one.
	ImagePrimary ImageState = iota
	// ImageFallback shows the catalog image after the thumbnail failed to load.
	ImageFallback
	// ImageExhausted shows the full styled image and never moves again.
	ImageExhausted
)

func (s ImageState) String() string {
	switch s {
	case ImagePrimary:
		return "primary"
	case ImageFallback:
		return "fallback"
	case ImageExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// ImageResolver picks the image source for one product card.
type ImageResolver struct {
	cropped  string
	cropMIME string
	catalog  string
	styled   string
	state    ImageState
}

// NewImageResolver starts a resolver for p. styled is the last-resort source,
// either a data: URL or raw base64 PNG.
func NewImageResolver(p model.Product, styled string) *ImageResolver {
	r := &ImageResolver{styled: styled}
	r.setSources(p)
	return r
}

func (r *ImageResolver) setSources(p model.Product) {
	r.cropped = p.CroppedImageBase64
	r.cropMIME = p.CroppedMIMEType
	r.catalog = p.ImageURL
	r.state = ImagePrimary
}

// State returns the current fallback state.
func (r *ImageResolver) State() ImageState {
	return r.state
}

// Source returns the URL the card should currently load.
func (r *ImageResolver) Source() string {
	switch r.state {
	case ImagePrimary:
		if r.cropped != "" {
			return model.DataURL(r.cropMIME, r.cropped)
		}
		if r.catalog != "" {
			return r.catalog
		}
		return r.styledURL()
	case ImageFallback:
		return r.catalog
	default:
		return r.styledURL()
	}
}

// Failed records that the current source did not load and returns the next one.
func (r *ImageResolver) Failed() string {
	switch r.state {
	case ImagePrimary:
		if r.cropped != "" && r.catalog != "" {
			r.state = ImageFallback
		} else {
			r.state = ImageExhausted
		}
	case ImageFallback:
		r.state = ImageExhausted
	}
	return r.Source()
}

// Sync resets the resolver when the product's image fields changed.
// It reports whether a reset happened.
func (r *ImageResolver) Sync(p model.Product) bool {
	if p.CroppedImageBase64 == r.cropped && p.CroppedMIMEType == r.cropMIME && p.ImageURL == r.catalog {
		return false
	}
	r.setSources(p)
	return true
}

func (r *ImageResolver) styledURL() string {
	if r.styled == "" {
		return ""
	}
	if strings.HasPrefix(r.styled, "data:") {
		return r.styled
	}
	return model.DataURL("", r.styled)
}
