package shopping

import (
	"context"
	"encoding/base64"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/easy-style/internal/common"
)

func newInstantSearcher(seed uint64) *MockSearcher {
	return NewMockSearcher(Options{Seed: seed, Logger: common.DiscardLogger()})
}

func TestSearchBlankQuery(t *testing.T) {
	s := newInstantSearcher(1)

	for _, q := range []string{"", "   ", "\t"} {
		p, err := s.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Nil(t, p)
	}
}

func TestSearchBuildsProduct(t *testing.T) {
	s := newInstantSearcher(42)

	p, err := s.Search(context.Background(), `남자 "오버핏" 옥스포드 셔츠 화이트`)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, `오버핏 옥스포드 셔츠 화이트`, p.Name)
	assert.Contains(t, formalFamily.brands, p.Brand)
	assert.Equal(t, p.Brand+" 공식몰", p.StoreName)
	assert.Contains(t, []string{"S", "M", "L", "XL"}, p.RecommendedSize)
	assert.GreaterOrEqual(t, p.Price, int64(50000))
	assert.LessOrEqual(t, p.Price, int64(300000))
	assert.Zero(t, p.Price%1000)
	assert.True(t, strings.HasPrefix(p.ProductURL, SearchURLBase))
	assert.NotContains(t, p.ProductURL, " ")
	assert.NotContains(t, p.ProductURL, "+")
	assert.True(t, strings.HasPrefix(p.ImageURL, "data:image/svg+xml;base64,"))
	assert.Empty(t, p.Category)
}

func TestSearchFamilies(t *testing.T) {
	tests := []struct {
		query  string
		family brandFamily
	}{
		{query: "남자 블레이저 네이비", family: formalFamily},
		{query: "화이트 스니커즈", family: streetFamily},
		{query: "프리미엄 캐시미어 코트", family: luxuryFamily},
		{query: "국내 디자이너 가방", family: koreanFamily},
		{query: "와이드 데님 팬츠", family: casualFamily},
	}

	s := newInstantSearcher(7)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.family.name, FamilyOf(tt.query))
			for i := 0; i < 20; i++ {
				p, err := s.Search(context.Background(), tt.query)
				require.NoError(t, err)
				assert.True(t, slices.Contains(tt.family.brands, p.Brand), p.Brand)
				assert.GreaterOrEqual(t, p.Price, tt.family.minPrice)
				assert.LessOrEqual(t, p.Price, tt.family.maxPrice)
			}
		})
	}
}

func TestSearchSizes(t *testing.T) {
	tests := []struct {
		query string
		sizes []string
	}{
		{query: "여성 니트", sizes: []string{"S", "M", "L", "XL"}},
		{query: "슬랙스 블랙", sizes: []string{"28", "30", "32", "34", "36"}},
		{query: "첼시 부츠", sizes: []string{"240", "245", "250", "255", "260", "265", "270", "275", "280"}},
		{query: "볼캡", sizes: []string{"Free"}},
	}

	s := newInstantSearcher(9)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p, err := s.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Contains(t, tt.sizes, p.RecommendedSize)
		})
	}
}

func TestSearchIsReproducibleWithSeed(t *testing.T) {
	a, err := newInstantSearcher(99).Search(context.Background(), "니트")
	require.NoError(t, err)
	b, err := newInstantSearcher(99).Search(context.Background(), "니트")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSearchHonoursContext(t *testing.T) {
	s := NewMockSearcher(Options{
		Seed:       1,
		MinLatency: time.Second,
		MaxLatency: 2 * time.Second,
		Logger:     common.DiscardLogger(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Search(ctx, "니트")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "오버핏 셔츠", CleanName(`"남성 오버핏 셔츠"`))
	assert.Equal(t, "와이드 슬랙스", CleanName("여자 와이드 슬랙스"))
}

func TestPlaceholderImageEscapesText(t *testing.T) {
	raw := strings.TrimPrefix(PlaceholderImage("<셔츠>", 400, 500), "data:image/svg+xml;base64,")
	svg, err := base64.StdEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "&lt;셔츠&gt;")
	assert.Contains(t, string(svg), `width="400"`)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 300*time.Millisecond, opts.MinLatency)
	assert.Equal(t, 700*time.Millisecond, opts.MaxLatency)
}
