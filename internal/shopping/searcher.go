// Package shopping provides the product lookup used by the styling pipeline.
// The searcher is a mock: it fabricates a plausible product for any query.
package shopping

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/easy-style/internal/model"
)

// SearchURLBase is the shopping search page a product links to.
const SearchURLBase = "https://search.shopping.naver.com/search/all?query="

type brandFamily struct {
	name     string
	brands   []string
	minPrice int64
	maxPrice int64
}

var (
	formalFamily = brandFamily{
		name:     "formal",
		brands:   []string{"ZARA", "유니클로", "H&M", "COS", "엠포리오 아르마니", "휴고보스"},
		minPrice: 50000,
		maxPrice: 300000,
	}
	casualFamily = brandFamily{
		name:     "casual",
		brands:   []string{"BEAMS", "어반리서치", "나노유니버스", "스피크이지", "마크 곤잘레스", "KENZO"},
		minPrice: 30000,
		maxPrice: 150000,
	}
	streetFamily = brandFamily{
		name:     "street",
		brands:   []string{"나이키", "아디다스", "뉴발란스", "컨버스", "반스", "푸마"},
		minPrice: 80000,
		maxPrice: 250000,
	}
	luxuryFamily = brandFamily{
		name:     "luxury",
		brands:   []string{"구찌", "프라다", "생로랑", "발렌시아가", "셀린느", "A.P.C."},
		minPrice: 200000,
		maxPrice: 800000,
	}
	koreanFamily = brandFamily{
		name:     "korean",
		brands:   []string{"스튜디오톰보이", "젠틀몬스터", "아더에러", "앤더슨벨", "마르디 메크르디", "우영미"},
		minPrice: 30000,
		maxPrice: 150000,
	}
)

type keywordRule[T any] struct {
	value    T
	keywords []string
}

func firstMatch[T any](query string, rules []keywordRule[T], fallback T) T {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(query, kw) {
				return r.value
			}
		}
	}
	return fallback
}

var familyRules = []keywordRule[brandFamily]{
	{value: formalFamily, keywords: []string{"정장", "셔츠", "블레이저"}},
	{value: streetFamily, keywords: []string{"스니커즈", "운동화", "트레이닝"}},
	{value: luxuryFamily, keywords: []string{"명품", "럭셔리", "프리미엄"}},
	{value: koreanFamily, keywords: []string{"국내", "한국"}},
}

var sizeRules = []keywordRule[[]string]{
	{value: []string{"S", "M", "L", "XL"}, keywords: []string{"셔츠", "티셔츠", "니트", "블라우스", "가디건"}},
	{value: []string{"28", "30", "32", "34", "36"}, keywords: []string{"바지", "팬츠", "진", "슬랙스"}},
	{value: []string{"240", "245", "250", "255", "260", "265", "270", "275", "280"}, keywords: []string{"신발", "스니커즈", "부츠", "로퍼"}},
}

var genderWords = regexp.MustCompile(`남성|여성|남자|여자`)

// Options configures a MockSearcher.
type Options struct {
	Logger *slog.Logger
	// MinLatency and MaxLatency bound the simulated network delay.
	MinLatency time.Duration
	MaxLatency time.Duration
	// Seed makes generated products reproducible when non-zero.
	Seed uint64
}

// DefaultOptions returns the latency profile of a real shopping search.
func DefaultOptions() Options {
	return Options{MinLatency: 300 * time.Millisecond, MaxLatency: 700 * time.Millisecond}
}

// MockSearcher fabricates a product for every non-blank query.
type MockSearcher struct {
	rng    *rand.Rand
	logger *slog.Logger
	opts   Options
	mu     sync.Mutex
}

// NewMockSearcher creates a searcher.
func NewMockSearcher(opts Options) *MockSearcher {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxLatency < opts.MinLatency {
		opts.MaxLatency = opts.MinLatency
	}
	return &MockSearcher{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: logger,
		opts:   opts,
	}
}

// Search returns a product for query, or nil for a blank query.
func (s *MockSearcher) Search(ctx context.Context, query string) (*model.Product, error) {
	s.logger.Debug("mock shopping search", "query", query)

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	p := s.generate(query)
	return &p, nil
}

func (s *MockSearcher) wait(ctx context.Context) error {
	delay := s.opts.MinLatency
	if spread := s.opts.MaxLatency - s.opts.MinLatency; spread > 0 {
		s.mu.Lock()
		delay += time.Duration(s.rng.Int64N(int64(spread)))
		s.mu.Unlock()
	}
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("shopping search: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (s *MockSearcher) generate(query string) model.Product {
	lower := strings.ToLower(query)
	family := firstMatch(lower, familyRules, casualFamily)
	sizes := firstMatch(lower, sizeRules, []string{"Free"})

	s.mu.Lock()
	brand := family.brands[s.rng.IntN(len(family.brands))]
	price := roundedPrice(s.rng, family.minPrice, family.maxPrice)
	size := sizes[s.rng.IntN(len(sizes))]
	s.mu.Unlock()

	return model.Product{
		Brand:           brand,
		Name:            CleanName(query),
		Price:           price,
		ImageURL:        PlaceholderImage(query, 400, 500),
		RecommendedSize: size,
		ProductURL:      SearchURLBase + strings.ReplaceAll(url.QueryEscape(query), "+", "%20"),
		StoreName:       brand + " 공식몰",
	}
}

// roundedPrice picks a price in [minPrice, maxPrice] on a 1,000 won grid above minPrice.
func roundedPrice(rng *rand.Rand, minPrice, maxPrice int64) int64 {
	steps := (maxPrice-minPrice)/1000 + 1
	return minPrice + rng.Int64N(steps)*1000
}

// CleanName strips quotes and gendered words from a search query.
func CleanName(query string) string {
	name := strings.ReplaceAll(query, `"`, "")
	name = genderWords.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// PlaceholderImage renders text on a flat background as an SVG data URL.
func PlaceholderImage(text string, width, height int) string {
	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+
		`<rect width="100%%" height="100%%" fill="#64748b"/>`+
		`<text x="50%%" y="50%%" font-family="system-ui, sans-serif" font-size="14" fill="#f8fafc" text-anchor="middle" dominant-baseline="central">%s</text>`+
		`</svg>`, width, height, html.EscapeString(text))
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// FamilyOf reports which brand family a query maps to.
func FamilyOf(query string) string {
	return firstMatch(strings.ToLower(query), familyRules, casualFamily).name
}
