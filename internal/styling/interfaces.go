// Package styling turns a photo and a style prompt into a complete outfit
// proposal, and holds the grouping and selection logic built on top of it.
package styling

import (
	"context"

	"github.com/Veraticus/easy-style/internal/model"
)

// AIGateway is the generative model boundary used by the pipeline.
// Image-returning calls report "no image" as a nil image with a nil error.
type AIGateway interface {
	ProposeFollowUpQuestion(ctx context.Context, prompt string) (model.FollowUpQuestion, error)
	PlanStyle(ctx context.Context, photo model.Image, prompt string) (model.StylePlan, error)
	SynthesizeImage(ctx context.Context, photo model.Image, description string, products []model.Product, background model.BackgroundContext) (*model.Image, error)
	CropProduct(ctx context.Context, styled model.Image, category model.Category, productName string) (*model.Image, error)
}

// ProductSearcher resolves a search keyword to a single product.
// A nil product with a nil error means no match.
type ProductSearcher interface {
	Search(ctx context.Context, keyword string) (*model.Product, error)
}
