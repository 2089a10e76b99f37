package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{input: "상의", want: CategoryTop, ok: true},
		{input: " 하의 ", want: CategoryBottom, ok: true},
		{input: "Shoes", want: CategoryShoes, ok: true},
		{input: "accessory", want: CategoryAccessory, ok: true},
		{input: "기타", want: CategoryOther, ok: false},
		{input: "outer", want: Category("outer"), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCategory(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	img, err := NewImage(png, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "data:image/png;base64,"+img.Base64(), img.DataURL())

	img, err = NewImage(png, "IMAGE/JPEG")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)

	_, err = NewImage(nil, "image/png")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = NewImage([]byte("plain text"), "")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestEncodedImageRoundTrip(t *testing.T) {
	img := Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}

	decoded, err := img.Encoded().Decode()
	require.NoError(t, err)
	assert.Equal(t, img, decoded)

	withPrefix := EncodedImage{Base64: img.DataURL(), MIMEType: "image/png"}
	decoded, err = withPrefix.Decode()
	require.NoError(t, err)
	assert.Equal(t, img.Data, decoded.Data)

	_, err = EncodedImage{Base64: "%%%"}.Decode()
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestDataURLs(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,QUJD", DataURL("", "QUJD"))
	assert.Equal(t, "data:image/jpeg;base64,QUJD", DataURL("image/jpeg", "data:image/png;base64,QUJD"))

	result := StyleResult{ImageBase64: "QUJD", ImageMIMEType: "image/webp"}
	assert.Equal(t, "data:image/webp;base64,QUJD", result.StyledDataURL())
	assert.Empty(t, StyleResult{}.StyledDataURL())
	assert.Empty(t, Product{}.CroppedDataURL())

	img, err := ParseDataURL(result.StyledDataURL())
	require.NoError(t, err)
	assert.Equal(t, Image{Data: []byte("ABC"), MIMEType: "image/webp"}, img)

	for _, bad := range []string{"https://img/1.jpg", "data:image/png;base64", "data:image/svg+xml,<svg/>", "data:image/png;base64,%%%"} {
		_, err := ParseDataURL(bad)
		assert.ErrorIs(t, err, ErrInvalidImage, bad)
	}
}

func TestPurchaseRequestComplete(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	req := &PurchaseRequest{Status: PurchaseStatusPending}

	require.NoError(t, req.Complete(now))
	assert.Equal(t, PurchaseStatusCompleted, req.Status)
	require.NotNil(t, req.CompletedAt)
	assert.Equal(t, now, *req.CompletedAt)

	err := req.Complete(now.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, now, *req.CompletedAt)
}

func TestHistoryItemResultCopiesProducts(t *testing.T) {
	item := StyleHistoryItem{
		StyledResult: StyledImage{ImageBase64: "abc", ImageMIMEType: "image/jpeg", Description: "look"},
		Products:     []Product{{ProductURL: "u1", Price: 1000}},
	}

	result := item.Result()
	result.Products[0].Price = 5

	assert.Equal(t, "abc", result.ImageBase64)
	assert.Equal(t, "image/jpeg", result.ImageMIMEType)
	assert.Equal(t, item.StyledResult, result.Styled())
	assert.Equal(t, int64(1000), item.Products[0].Price)
}

func TestFormatPrice(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		89000:   "89,000",
		1234567: "1,234,567",
		-250000: "-250,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPrice(in))
	}
}
