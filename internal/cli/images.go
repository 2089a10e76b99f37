package cli

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/styling"
)

const maxCardImageBytes = 10 << 20

// ImageFetcher loads the image a card source points at.
type ImageFetcher func(ctx context.Context, url string) (model.Image, error)

// HTTPImageFetcher decodes data: URLs in place and downloads http(s) URLs.
func HTTPImageFetcher(client *http.Client) ImageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return func(ctx context.Context, url string) (model.Image, error) {
		switch {
		case url == "":
			return model.Image{}, fmt.Errorf("%w: no image source", model.ErrInvalidImage)
		case strings.HasPrefix(url, "data:"):
			return model.ParseDataURL(url)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return model.Image{}, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return model.Image{}, fmt.Errorf("failed to download %s: %w", url, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return model.Image{}, fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxCardImageBytes))
		if err != nil {
			return model.Image{}, fmt.Errorf("failed to read %s: %w", url, err)
		}
		if len(data) == 0 {
			return model.Image{}, fmt.Errorf("%w: empty body from %s", model.ErrInvalidImage, url)
		}

		mimeType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
		if err != nil || !strings.HasPrefix(mimeType, "image/") {
			mimeType = http.DetectContentType(data)
		}
		return model.Image{Data: data, MIMEType: mimeType}, nil
	}
}

// ProductImage is the card image exported for one product.
// Path is empty when every source failed.
type ProductImage struct {
	Err     error
	Product model.Product
	Path    string
	State   styling.ImageState
}

// ExportProductImages writes one card image per product into dir.
// Each card starts at the cropped thumbnail and falls back to the catalog
// image, then to the styled image.
func ExportProductImages(ctx context.Context, dir string, result model.StyleResult, fetch ImageFetcher) ([]ProductImage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	styled := result.StyledDataURL()
	exported := make([]ProductImage, 0, len(result.Products))
	for i, p := range result.Products {
		if err := ctx.Err(); err != nil {
			return exported, err
		}

		resolver := styling.NewImageResolver(p, styled)
		img, err := loadCardImage(ctx, resolver, fetch)
		card := ProductImage{Product: p, State: resolver.State(), Err: err}
		if err == nil {
			card.Path = filepath.Join(dir, fmt.Sprintf("product-%02d.%s", i+1, imageExt(img.MIMEType)))
			if err := os.WriteFile(card.Path, img.Data, 0o600); err != nil {
				return exported, fmt.Errorf("failed to write product image: %w", err)
			}
		}
		exported = append(exported, card)
	}
	return exported, nil
}

func loadCardImage(ctx context.Context, r *styling.ImageResolver, fetch ImageFetcher) (model.Image, error) {
	src := r.Source()
	for {
		img, err := fetch(ctx, src)
		if err == nil {
			return img, nil
		}
		if r.State() == styling.ImageExhausted || ctx.Err() != nil {
			return model.Image{}, err
		}
		src = r.Failed()
	}
}

func imageExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/svg+xml":
		return "svg"
	}
	if ext, ok := strings.CutPrefix(mimeType, "image/"); ok && ext != "" {
		return ext
	}
	return "bin"
}

// ImageSourceLabel names the kind of image a card ended up showing.
func ImageSourceLabel(card ProductImage) string {
	switch card.State {
	case styling.ImagePrimary:
		if card.Product.HasCroppedImage() {
			return "상품 썸네일"
		}
		if card.Product.ImageURL != "" {
			return "상품 사진"
		}
		return "스타일 이미지"
	case styling.ImageFallback:
		return "상품 사진"
	default:
		return "스타일 이미지"
	}
}

// RenderProductImages lists exported card images.
func RenderProductImages(cards []ProductImage) string {
	var b strings.Builder
	for _, card := range cards {
		label := fmt.Sprintf("[%s] %s %s", card.Product.Category, card.Product.Brand, card.Product.Name)
		if card.Err != nil {
			b.WriteString(FormatWarning(label + ": 이미지를 불러오지 못했습니다"))
		} else {
			fmt.Fprintf(&b, "%s → %s %s", label, card.Path, SubtleStyle.Render("("+ImageSourceLabel(card)+")"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
