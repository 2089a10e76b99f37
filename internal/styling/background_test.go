package styling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContext(t *testing.T) {
	tests := []struct {
		name        string
		prompt      string
		description string
		want        string
	}{
		{name: "business", prompt: "회사 미팅룩", want: "Modern office environment with clean glass windows and city view"},
		{name: "casual date", prompt: "캐주얼 데이트룩", want: "Cozy urban cafe setting with warm wooden interior and plants"},
		{name: "party", prompt: "파티에 입을 옷", want: "Sophisticated urban nightlife setting with city lights"},
		{name: "outdoor", prompt: "공원 산책", want: "Beautiful urban park setting with trees and modern architecture"},
		{name: "street", prompt: "스트리트 패션", want: "Vibrant city street with modern storefronts and urban atmosphere"},
		{name: "travel", prompt: "바다 여행", want: "Scenic travel destination with beautiful natural backdrop"},
		{name: "default", prompt: "깔끔한 스타일", want: DefaultBackground.Description},
		{name: "english is case-insensitive", prompt: "BUSINESS casual", want: "Modern office environment with clean glass windows and city view"},
		{name: "description participates", prompt: "추천해줘", description: "A relaxed beach outfit", want: "Scenic travel destination with beautiful natural backdrop"},
		{name: "earlier rule wins", prompt: "파티 끝나고 카페", want: "Cozy urban cafe setting with warm wooden interior and plants"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveContext(tt.prompt, tt.description)
			assert.Equal(t, tt.want, got.Description)
			assert.NotEmpty(t, got.Setting)
			assert.NotEmpty(t, got.Lighting)
		})
	}
}

func TestResolveContextIsDeterministic(t *testing.T) {
	first := ResolveContext("파티", "블랙 드레스")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveContext("파티", "블랙 드레스"))
	}
	assert.Equal(t, "Upscale rooftop lounge or modern bar with city skyline", first.Setting)
}
