// Package testutil provides shared helpers for tests that need real storage.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/storage"
)

// SetupTestDB creates a migrated in-memory database that is closed when the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return store
}

// SampleProducts returns a small, realistic result set covering several categories.
func SampleProducts() []model.Product {
	return []model.Product{
		{
			Brand:           "COS",
			Name:            "오버핏 옥스포드 셔츠 화이트",
			Price:           89000,
			ImageURL:        "https://img.example/shirt.jpg",
			RecommendedSize: "L",
			ProductURL:      "https://search.shopping.naver.com/search/all?query=shirt",
			StoreName:       "COS 공식몰",
			Category:        model.CategoryTop,
		},
		{
			Brand:           "BEAMS",
			Name:            "와이드핏 슬랙스 블랙",
			Price:           129000,
			ImageURL:        "https://img.example/slacks.jpg",
			RecommendedSize: "32",
			ProductURL:      "https://search.shopping.naver.com/search/all?query=slacks",
			StoreName:       "BEAMS 공식몰",
			Category:        model.CategoryBottom,
		},
		{
			Brand:           "뉴발란스",
			Name:            "530 스니커즈",
			Price:           119000,
			ImageURL:        "https://img.example/shoes.jpg",
			RecommendedSize: "270",
			ProductURL:      "https://search.shopping.naver.com/search/all?query=shoes",
			StoreName:       "뉴발란스 공식몰",
			Category:        model.CategoryShoes,
		},
	}
}

// SampleResult wraps SampleProducts in a StyleResult.
func SampleResult() *model.StyleResult {
	return &model.StyleResult{
		ImageBase64:   "c3R5bGVk",
		ImageMIMEType: "image/png",
		Description:   "깔끔한 오피스 캐주얼",
		Products:      SampleProducts(),
	}
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
