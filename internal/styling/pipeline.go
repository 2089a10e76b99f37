package styling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
)

// Stage identifies a step of a styling run.
type Stage string

// Stages reported to a ProgressFunc, in run order.
const (
	StagePlanning          Stage = "planning"
	StageResolvingProducts Stage = "resolving_products"
	StageSynthesizing      Stage = "synthesizing"
	StageCropping          Stage = "cropping"
	StageDone              Stage = "done"
)

// ProgressFunc observes stage transitions of a styling run.
type ProgressFunc func(stage Stage)

// Config holds pipeline settings.
type Config struct {
	Logger *slog.Logger
	// LookupConcurrency caps simultaneous product lookups; zero means no cap.
	LookupConcurrency int
	// CropConcurrency caps simultaneous crop calls; zero means no cap.
	CropConcurrency int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{Logger: slog.Default()}
}

// Pipeline orchestrates planning, product lookup, synthesis and cropping.
// It does not cancel its own work; callers that may abandon a run must guard
// the result with a Session token before applying it.
type Pipeline struct {
	ai     AIGateway
	search ProductSearcher
	logger *slog.Logger
	config Config
}

// New creates a pipeline with the default configuration.
func New(ai AIGateway, search ProductSearcher) *Pipeline {
	return NewWithConfig(ai, search, DefaultConfig())
}

// NewWithConfig creates a pipeline with the given configuration.
func NewWithConfig(ai AIGateway, search ProductSearcher, config Config) *Pipeline {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		ai:     ai,
		search: search,
		logger: logger,
		config: config,
	}
}

// ProposeFollowUpQuestion asks the gateway for one clarifying question with three example answers.
func (p *Pipeline) ProposeFollowUpQuestion(ctx context.Context, prompt string) (model.FollowUpQuestion, error) {
	q, err := p.ai.ProposeFollowUpQuestion(ctx, prompt)
	if err != nil {
		return model.FollowUpQuestion{}, common.NewUserError(common.MsgQuestionFailed,
			fmt.Errorf("%w: follow-up question: %w", common.ErrGeneration, err))
	}
	if strings.TrimSpace(q.Question) == "" || len(q.Examples) != 3 {
		return model.FollowUpQuestion{}, common.NewUserError(common.MsgQuestionFailed,
			fmt.Errorf("%w: follow-up question has %d examples", common.ErrGeneration, len(q.Examples)))
	}
	return q, nil
}

// RunOption customizes a single ExecuteStyleGeneration call.
type RunOption func(*runOptions)

type runOptions struct {
	progress ProgressFunc
}

// WithProgress reports stage transitions to fn.
func WithProgress(fn ProgressFunc) RunOption {
	return func(o *runOptions) {
		o.progress = fn
	}
}

// ExecuteStyleGeneration produces a StyleResult for photo and prompt.
// Planning, lookup and synthesis failures abort the run; crop failures only
// leave the affected product without a thumbnail.
func (p *Pipeline) ExecuteStyleGeneration(ctx context.Context, photo model.Image, prompt string, opts ...RunOption) (*model.StyleResult, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	report := func(s Stage) {
		if o.progress != nil {
			o.progress(s)
		}
	}

	report(StagePlanning)
	plan, err := p.plan(ctx, photo, prompt)
	if err != nil {
		return nil, err
	}
	p.logger.Info("style planned", "items", len(plan.Items))

	report(StageResolvingProducts)
	products, err := p.resolveProducts(ctx, plan.Items)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, common.NewUserError(common.MsgNoProductsFound,
			fmt.Errorf("%w: 0 of %d planned items resolved", common.ErrNoProductsFound, len(plan.Items)))
	}
	p.logger.Info("products resolved", "planned", len(plan.Items), "resolved", len(products))

	report(StageSynthesizing)
	background := ResolveContext(prompt, plan.Description)
	styled, err := p.ai.SynthesizeImage(ctx, photo, plan.Description, products, background)
	if err != nil {
		return nil, common.NewUserError(common.MsgImageSynthesis,
			fmt.Errorf("%w: %w", common.ErrImageSynthesis, err))
	}
	if styled == nil || len(styled.Data) == 0 {
		return nil, common.NewUserError(common.MsgImageSynthesis,
			fmt.Errorf("%w: gateway returned no image", common.ErrImageSynthesis))
	}

	report(StageCropping)
	p.cropProducts(ctx, *styled, products)

	report(StageDone)
	return &model.StyleResult{
		ImageBase64:   styled.Base64(),
		ImageMIMEType: styled.MIMEType,
		Description:   plan.Description,
		Products:      products,
	}, nil
}

func (p *Pipeline) plan(ctx context.Context, photo model.Image, prompt string) (model.StylePlan, error) {
	plan, err := p.ai.PlanStyle(ctx, photo, prompt)
	if err != nil {
		return model.StylePlan{}, common.NewUserError(common.MsgGenerationFailed,
			fmt.Errorf("%w: plan: %w", common.ErrGeneration, err))
	}
	if err := validatePlan(plan); err != nil {
		return model.StylePlan{}, common.NewUserError(common.MsgGenerationFailed, err)
	}
	return plan, nil
}

func validatePlan(plan model.StylePlan) error {
	if strings.TrimSpace(plan.Description) == "" {
		return fmt.Errorf("%w: plan has no description", common.ErrGeneration)
	}
	for i, item := range plan.Items {
		if !item.Category.IsPlannable() {
			return fmt.Errorf("%w: plan item %d has unknown category %q", common.ErrGeneration, i, item.Category)
		}
	}
	return nil
}

// resolveProducts looks every item up concurrently and keeps plan order.
// Items with no match are dropped; any lookup error fails the whole stage.
func (p *Pipeline) resolveProducts(ctx context.Context, items []model.PlannedItem) ([]model.Product, error) {
	found := make([]*model.Product, len(items))

	var g errgroup.Group
	if p.config.LookupConcurrency > 0 {
		g.SetLimit(p.config.LookupConcurrency)
	}
	for i, item := range items {
		g.Go(func() error {
			product, err := p.search.Search(ctx, item.SearchKeyword)
			if err != nil {
				return fmt.Errorf("lookup %q: %w", item.SearchKeyword, err)
			}
			if product == nil {
				p.logger.Debug("no product for keyword", "keyword", item.SearchKeyword)
				return nil
			}
			resolved := *product
			resolved.Category = item.Category
			found[i] = &resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, common.NewUserError(common.MsgGenerationFailed,
			fmt.Errorf("%w: %w", common.ErrGeneration, err))
	}

	products := make([]model.Product, 0, len(items))
	for _, product := range found {
		if product != nil {
			products = append(products, *product)
		}
	}
	uniqueProductURLs(products)
	return products, nil
}

// uniqueProductURLs keeps productUrl a unique key within one result. Two plan
// items that resolve to the same listing stay separate products; later copies
// get a "#2", "#3", ... suffix.
func uniqueProductURLs(products []model.Product) {
	seen := make(map[string]bool, len(products))
	for i := range products {
		base := products[i].ProductURL
		sep := "#"
		if strings.Contains(base, "#") {
			sep = "-"
		}
		url := base
		for n := 2; seen[url]; n++ {
			url = fmt.Sprintf("%s%s%d", base, sep, n)
		}
		seen[url] = true
		products[i].ProductURL = url
	}
}

// cropProducts attaches thumbnails in place. Each product is independent.
func (p *Pipeline) cropProducts(ctx context.Context, styled model.Image, products []model.Product) {
	var g errgroup.Group
	if p.config.CropConcurrency > 0 {
		g.SetLimit(p.config.CropConcurrency)
	}
	for i := range products {
		g.Go(func() error {
			product := &products[i]
			cropped, err := p.ai.CropProduct(ctx, styled, product.Category, product.Name)
			if err == nil && (cropped == nil || len(cropped.Data) == 0) {
				err = errors.New("gateway returned no image")
			}
			if err != nil {
				p.logger.Warn("product crop failed",
					"category", string(product.Category),
					"product", product.Name,
					"error", fmt.Errorf("%w: %w", common.ErrCropFailed, err))
				return nil
			}
			product.CroppedImageBase64 = cropped.Base64()
			product.CroppedMIMEType = cropped.MIMEType
			return nil
		})
	}
	_ = g.Wait()
}
