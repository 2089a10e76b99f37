package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/Veraticus/easy-style/internal/model"
)

var (
	// ErrEmptyResponse is returned when the model produced no usable text.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrMalformedResponse is returned when text output does not match the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed model response")
)

// ProposeFollowUpQuestion asks for one clarifying question and three example answers.
func (c *Client) ProposeFollowUpQuestion(ctx context.Context, prompt string) (model.FollowUpQuestion, error) {
	resp, err := c.call(ctx, "follow-up question", generateRequest{
		model:  c.textModel,
		schema: followUpSchema,
		parts:  []genai.Part{genai.Text(followUpPrompt(prompt))},
	})
	if err != nil {
		return model.FollowUpQuestion{}, err
	}

	var q model.FollowUpQuestion
	if err := decodeJSON(resp, &q); err != nil {
		return model.FollowUpQuestion{}, fmt.Errorf("follow-up question: %w", err)
	}
	return q, nil
}

// PlanStyle asks for a style description and per-category search keywords for photo.
func (c *Client) PlanStyle(ctx context.Context, photo model.Image, prompt string) (model.StylePlan, error) {
	resp, err := c.call(ctx, "plan style", generateRequest{
		model:  c.textModel,
		system: stylistInstruction,
		schema: stylePlanSchema,
		parts: []genai.Part{
			genai.Blob{MIMEType: photo.MIMEType, Data: photo.Data},
			genai.Text(planPrompt(prompt)),
		},
	})
	if err != nil {
		return model.StylePlan{}, err
	}

	var plan model.StylePlan
	if err := decodeJSON(resp, &plan); err != nil {
		return model.StylePlan{}, fmt.Errorf("plan style: %w", err)
	}
	return plan, nil
}

// SynthesizeImage renders the person in photo wearing products.
// It returns a nil image when the response carries no image part.
func (c *Client) SynthesizeImage(ctx context.Context, photo model.Image, description string, products []model.Product, bg model.BackgroundContext) (*model.Image, error) {
	resp, err := c.call(ctx, "synthesize image", generateRequest{
		model: c.imageModel,
		parts: []genai.Part{
			genai.Blob{MIMEType: photo.MIMEType, Data: photo.Data},
			genai.Text(synthesisPrompt(description, products, bg)),
		},
	})
	if err != nil {
		return nil, err
	}
	return firstImage(resp), nil
}

// CropProduct asks for a product-focused crop of the styled image.
// It returns a nil image when the response carries no image part.
func (c *Client) CropProduct(ctx context.Context, styled model.Image, category model.Category, productName string) (*model.Image, error) {
	mimeType := styled.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	resp, err := c.call(ctx, "crop product", generateRequest{
		model: c.imageModel,
		parts: []genai.Part{
			genai.Blob{MIMEType: mimeType, Data: styled.Data},
			genai.Text(cropPrompt(category, productName)),
		},
	})
	if err != nil {
		return nil, err
	}
	return firstImage(resp), nil
}

func responseParts(resp *genai.GenerateContentResponse) []genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil
	}
	return cand.Content.Parts
}

// firstImage returns the first inline part whose MIME type is an image type.
func firstImage(resp *genai.GenerateContentResponse) *model.Image {
	for _, part := range responseParts(resp) {
		blob, ok := part.(genai.Blob)
		if !ok || len(blob.Data) == 0 || !strings.HasPrefix(blob.MIMEType, "image/") {
			continue
		}
		return &model.Image{MIMEType: blob.MIMEType, Data: blob.Data}
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, part := range responseParts(resp) {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func decodeJSON(resp *genai.GenerateContentResponse, v any) error {
	content := cleanMarkdownWrapper(responseText(resp))
	if content == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("%w: failed to parse JSON response: %w", ErrMalformedResponse, err)
	}
	return nil
}

// cleanMarkdownWrapper strips a ```json fence some models wrap around JSON output.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
