package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidImage is returned when image bytes or a data URL cannot be decoded.
var ErrInvalidImage = errors.New("invalid image")

// SupportedImageTypes are the upload MIME types accepted for the source photo.
var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Image is a raster image held in memory.
type Image struct {
	MIMEType string
	Data     []byte
}

// NewImage validates data and fills in the MIME type when the caller did not declare one.
func NewImage(data []byte, mimeType string) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !SupportedImageTypes[mimeType] {
		return Image{}, fmt.Errorf("%w: unsupported type %q", ErrInvalidImage, mimeType)
	}
	return Image{Data: data, MIMEType: mimeType}, nil
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL.
func (i Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// Encoded returns the base64 form used in persisted records.
func (i Image) Encoded() EncodedImage {
	return EncodedImage{Base64: i.Base64(), MIMEType: i.MIMEType}
}

// EncodedImage is an image carried as base64 text.
type EncodedImage struct {
	Base64   string `json:"base64"`
	MIMEType string `json:"mimeType"`
}

// Decode returns the raw image.
func (e EncodedImage) Decode() (Image, error) {
	data, err := base64.StdEncoding.DecodeString(StripDataURLPrefix(e.Base64))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	return Image{Data: data, MIMEType: e.MIMEType}, nil
}

// StripDataURLPrefix removes a leading "data:<mime>;base64," if present.
func StripDataURLPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}

// DefaultGeneratedMIMEType labels generated images saved before their type was recorded.
const DefaultGeneratedMIMEType = "image/png"

// DataURL wraps raw base64 bytes in a data: URL. An empty type means PNG.
func DataURL(mimeType, b64 string) string {
	if mimeType == "" {
		mimeType = DefaultGeneratedMIMEType
	}
	return "data:" + mimeType + ";base64," + StripDataURLPrefix(b64)
}

// ParseDataURL decodes a base64 data: URL.
func ParseDataURL(url string) (Image, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return Image{}, fmt.Errorf("%w: not a data URL", ErrInvalidImage)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, fmt.Errorf("%w: data URL has no payload", ErrInvalidImage)
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return Image{}, fmt.Errorf("%w: data URL is not base64", ErrInvalidImage)
	}
	return EncodedImage{Base64: payload, MIMEType: mimeType}.Decode()
}
