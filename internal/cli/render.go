package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/styling"
)

const timeLayout = "2006-01-02 15:04"

func formatWon(price int64) string {
	return model.FormatPrice(price) + "원"
}

// RenderProduct renders one product line.
func RenderProduct(p model.Product) string {
	size := ""
	if p.RecommendedSize != "" {
		size = SubtleStyle.Render(" (" + p.RecommendedSize + ")")
	}
	return fmt.Sprintf("%s %s%s  %s", BoldStyle.Render(p.Brand), p.Name, size, FormatPrice(p.Price))
}

// RenderGroups renders products grouped by category, marking selected ones.
// A nil selection renders plain bullets.
func RenderGroups(groups []styling.CategoryGroup, selected *styling.Selection) string {
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(CategoryStyle.Render(string(g.Category)))
		b.WriteByte('\n')
		for _, p := range g.Products {
			marker := "•"
			if selected != nil {
				marker = "[ ]"
				if selected.Contains(p.ProductURL) {
					marker = SuccessStyle.Render("[x]")
				}
			}
			fmt.Fprintf(&b, "  %s %s\n", marker, RenderProduct(p))
		}
	}
	return b.String()
}

// RenderResult renders a full styling result with its grand total.
func RenderResult(result model.StyleResult) string {
	var b strings.Builder
	b.WriteString(FormatTitle("추천 스타일"))
	b.WriteByte('\n')
	b.WriteString(result.Description)
	b.WriteByte('\n')
	b.WriteString(RenderGroups(styling.Group(result.Products), nil))
	fmt.Fprintf(&b, "\n%s %s\n", BoldStyle.Render("합계"), FormatPrice(styling.Total(result.Products)))
	return b.String()
}

// RenderHistory renders a history listing, newest first.
func RenderHistory(items []model.StyleHistoryItem) string {
	if len(items) == 0 {
		return FormatInfo("저장된 스타일이 없습니다.") + "\n"
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			SubtleStyle.Render(item.CreatedAt.Local().Format(timeLayout)),
			BoldStyle.Render(item.ID),
			item.Prompt,
			SubtleStyle.Render(fmt.Sprintf("%d개 상품", len(item.Products))))
	}
	return b.String()
}

// RenderPurchaseRequests renders purchase requests with their status.
func RenderPurchaseRequests(title string, reqs []model.PurchaseRequest) string {
	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("%s (%d)", title, len(reqs))))
	b.WriteByte('\n')
	for _, r := range reqs {
		status := WarningStyle.Render(string(r.Status))
		if r.Status == model.PurchaseStatusCompleted {
			status = SuccessStyle.Render(string(r.Status))
		}
		fmt.Fprintf(&b, "%s %s  %s  %s  %s\n",
			CartIcon,
			BoldStyle.Render(r.ID),
			r.UserEmail,
			FormatPrice(r.TotalPrice),
			status)
		fmt.Fprintf(&b, "   %s\n", SubtleStyle.Render(requestTimes(r)))
		for _, p := range r.Products {
			fmt.Fprintf(&b, "   - [%s] %s\n", p.Category, RenderProduct(p))
		}
	}
	return b.String()
}

func requestTimes(r model.PurchaseRequest) string {
	s := "요청: " + r.CreatedAt.Local().Format(timeLayout)
	if r.CompletedAt != nil {
		s += " / 완료: " + r.CompletedAt.Local().Format(timeLayout)
	}
	return s
}

// RenderError renders err with the message meant for users.
func RenderError(err error) string {
	return FormatError(common.UserMessage(err))
}

// StageLabel returns the Korean label for a pipeline stage.
func StageLabel(stage styling.Stage) string {
	switch stage {
	case styling.StagePlanning:
		return "스타일을 구상하는 중"
	case styling.StageResolvingProducts:
		return "상품을 찾는 중"
	case styling.StageSynthesizing:
		return "새 스타일 이미지를 만드는 중"
	case styling.StageCropping:
		return "상품 이미지를 준비하는 중"
	case styling.StageDone:
		return "완료"
	default:
		return string(stage)
	}
}

// Elapsed renders a duration rounded for display.
func Elapsed(d time.Duration) string {
	return SubtleStyle.Render(d.Round(100 * time.Millisecond).String())
}
