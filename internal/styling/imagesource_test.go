package styling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/easy-style/internal/model"
)

func TestImageResolverFallbackChain(t *testing.T) {
	styled := "U1RZTEVE"
	tests := []struct {
		name    string
		product model.Product
		want    []string
		states  []ImageState
	}{
		{
			name:    "cropped then catalog then styled",
			product: model.Product{CroppedImageBase64: "Q1JPUA==", ImageURL: "https://img/1.jpg"},
			want: []string{
				"data:image/png;base64,Q1JPUA==",
				"https://img/1.jpg",
				"data:image/png;base64," + styled,
				"data:image/png;base64," + styled,
			},
			states: []ImageState{ImagePrimary, ImageFallback, ImageExhausted, ImageExhausted},
		},
		{
			name:    "catalog only skips to styled",
			product: model.Product{ImageURL: "https://img/2.jpg"},
			want: []string{
				"https://img/2.jpg",
				"data:image/png;base64," + styled,
				"data:image/png;base64," + styled,
			},
			states: []ImageState{ImagePrimary, ImageExhausted, ImageExhausted},
		},
		{
			name:    "cropped only skips to styled",
			product: model.Product{CroppedImageBase64: "Q1JPUA=="},
			want: []string{
				"data:image/png;base64,Q1JPUA==",
				"data:image/png;base64," + styled,
			},
			states: []ImageState{ImagePrimary, ImageExhausted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewImageResolver(tt.product, styled)
			assert.Equal(t, tt.want[0], r.Source())
			assert.Equal(t, tt.states[0], r.State())
			for i := 1; i < len(tt.want); i++ {
				assert.Equal(t, tt.want[i], r.Failed())
				assert.Equal(t, tt.states[i], r.State())
			}
		})
	}
}

func TestImageResolverSyncResets(t *testing.T) {
	p := model.Product{ImageURL: "https://img/1.jpg"}
	r := NewImageResolver(p, "data:image/png;base64,U1RZTEVE")

	r.Failed()
	assert.Equal(t, ImageExhausted, r.State())
	assert.Equal(t, "data:image/png;base64,U1RZTEVE", r.Source())

	assert.False(t, r.Sync(p))
	assert.Equal(t, ImageExhausted, r.State())

	p.CroppedImageBase64 = "Q1JPUA=="
	assert.True(t, r.Sync(p))
	assert.Equal(t, ImagePrimary, r.State())
	assert.Equal(t, "data:image/png;base64,Q1JPUA==", r.Source())
	assert.Equal(t, "https://img/1.jpg", r.Failed())
}

func TestImageStateString(t *testing.T) {
	assert.Equal(t, "primary", ImagePrimary.String())
	assert.Equal(t, "fallback", ImageFallback.String())
	assert.Equal(t, "exhausted", ImageExhausted.String())
	assert.Equal(t, "unknown", ImageState(9).String())
}

func TestImageResolverKeepsRecordedMIMETypes(t *testing.T) {
	result := model.StyleResult{ImageBase64: "U1RZTEVE", ImageMIMEType: "image/jpeg"}
	p := model.Product{CroppedImageBase64: "Q1JPUA==", CroppedMIMEType: "image/webp"}

	r := NewImageResolver(p, result.StyledDataURL())
	assert.Equal(t, "data:image/webp;base64,Q1JPUA==", r.Source())
	assert.Equal(t, "data:image/jpeg;base64,U1RZTEVE", r.Failed())

	p.CroppedMIMEType = "image/png"
	assert.True(t, r.Sync(p))
	assert.Equal(t, "data:image/png;base64,Q1JPUA==", r.Source())
}
