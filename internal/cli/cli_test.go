package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/styling"
)

func products() []model.Product {
	return []model.Product{
		{Brand: "COS", Name: "셔츠", Price: 89000, RecommendedSize: "L", ProductURL: "u1", Category: model.CategoryTop},
		{Brand: "나이키", Name: "스니커즈", Price: 139000, ProductURL: "u2", Category: model.CategoryShoes},
	}
}

func TestRenderGroupsMarksSelection(t *testing.T) {
	sel := styling.NewSelection(products()).Toggle(products()[1])
	out := RenderGroups(styling.Group(products()), &sel)

	assert.Contains(t, out, "상의")
	assert.Contains(t, out, "신발")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "89,000원")
	assert.Less(t, bytes.Index([]byte(out), []byte("상의")), bytes.Index([]byte(out), []byte("신발")))
}

func TestRenderResultShowsTotal(t *testing.T) {
	out := RenderResult(model.StyleResult{Description: "깔끔한 룩", Products: products()})
	assert.Contains(t, out, "깔끔한 룩")
	assert.Contains(t, out, "228,000원")
}

func TestRenderHistoryAndRequests(t *testing.T) {
	assert.Contains(t, RenderHistory(nil), "저장된 스타일이 없습니다.")

	at := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	out := RenderHistory([]model.StyleHistoryItem{{ID: "h1", Prompt: "출근룩", CreatedAt: at, Products: products()}})
	assert.Contains(t, out, "h1")
	assert.Contains(t, out, "2개 상품")

	done := at.Add(time.Hour)
	out = RenderPurchaseRequests("완료", []model.PurchaseRequest{{
		ID: "r1", UserEmail: "kim@example.com", TotalPrice: 228000,
		Status: model.PurchaseStatusCompleted, Products: products(), CreatedAt: at, CompletedAt: &done,
	}})
	assert.Contains(t, out, "완료 (1)")
	assert.Contains(t, out, "kim@example.com")
	assert.Contains(t, out, "완료: ")
	assert.Contains(t, out, "[신발]")
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError(common.ErrNoProductsFound), common.MsgNoProductsFound)
	assert.Contains(t, RenderError(errors.New("boom")), common.MsgGenerationFailed)
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "상품을 찾는 중", StageLabel(styling.StageResolvingProducts))
	assert.Equal(t, "mystery", StageLabel(styling.Stage("mystery")))
}

func TestInterruptHandler(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out, "")
	ctx, stop := h.HandleInterrupts(context.Background())
	defer stop()

	assert.False(t, h.WasInterrupted())
	h.interrupt()
	h.interrupt()

	<-ctx.Done()
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("작업을 취소했습니다.")))
}

func TestInterruptHandlerStop(t *testing.T) {
	h := NewInterruptHandler(&bytes.Buffer{}, "bye")
	ctx, stop := h.HandleInterrupts(context.Background())
	stop()
	stop()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
}

func TestStageProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewStageProgress(&out)

	var progress styling.ProgressFunc = p.Update
	progress(styling.StagePlanning)
	progress(styling.StageResolvingProducts)
	assert.False(t, p.Finished())

	progress(styling.StageSynthesizing)
	progress(styling.StageCropping)
	progress(styling.StageDone)
	assert.True(t, p.Finished())
}
