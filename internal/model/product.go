package model

import "strconv"

// Product is a purchasable item resolved for one planned outfit slot.
// ProductURL is the identity key within a result set.
type Product struct {
	Brand              string   `json:"brand"`
	Name               string   `json:"name"`
	ImageURL           string   `json:"imageUrl"`
	RecommendedSize    string   `json:"recommendedSize"`
	ProductURL         string   `json:"productUrl"`
	StoreName          string   `json:"storeName"`
	Category           Category `json:"category"`
	CroppedImageBase64 string   `json:"croppedImageBase64,omitempty"`
	CroppedMIMEType    string   `json:"croppedImageMimeType,omitempty"`
	Price              int64    `json:"price"`
}

// CroppedDataURL returns the thumbnail as a data: URL, or "" without one.
func (p Product) CroppedDataURL() string {
	if p.CroppedImageBase64 == "" {
		return ""
	}
	return DataURL(p.CroppedMIMEType, p.CroppedImageBase64)
}

// HasCroppedImage reports whether the crop stage attached a thumbnail.
func (p Product) HasCroppedImage() bool {
	return p.CroppedImageBase64 != ""
}

// CloneProducts returns an independent copy of products.
func CloneProducts(products []Product) []Product {
	if products == nil {
		return nil
	}
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// FormatPrice renders a won amount with thousands separators, e.g. 129,000.
func FormatPrice(price int64) string {
	digits := strconv.FormatInt(price, 10)
	sign := ""
	if price < 0 {
		sign, digits = "-", digits[1:]
	}
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}
