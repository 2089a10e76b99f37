package styling

import (
	"strings"

	"github.com/Veraticus/easy-style/internal/model"
)

type backgroundRule struct {
	name     string
	keywords []string
	context  model.BackgroundContext
}

func (r backgroundRule) matches(text string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// backgroundRules are evaluated in order; the first match wins.
var backgroundRules = []backgroundRule{
	{
		name:     "business",
		keywords: []string{"비즈니스", "정장", "회사", "미팅", "오피스", "formal", "business"},
		context: model.BackgroundContext{
			Description: "Modern office environment with clean glass windows and city view",
			Setting:     "Professional office space with minimalist interior design",
			Lighting:    "Natural daylight from large windows with soft indoor lighting",
		},
	},
	{
		name:     "casual",
		keywords: []string{"데이트", "카페", "브런치", "casual", "date", "coffee"},
		context: model.BackgroundContext{
			Description: "Cozy urban cafe setting with warm wooden interior and plants",
			Setting:     "Trendy cafe with exposed brick walls and natural materials",
			Lighting:    "Warm ambient lighting with natural window light",
		},
	},
	{
		name:     "party",
		keywords: []string{"파티", "클럽", "밤", "party", "night", "evening"},
		context: model.BackgroundContext{
			Description: "Sophisticated urban nightlife setting with city lights",
			Setting:     "Upscale rooftop lounge or modern bar with city skyline",
			Lighting:    "Moody evening lighting with warm accent lights and city glow",
		},
	},
	{
		name:     "outdoor",
		keywords: []string{"야외", "공원", "걷기", "outdoor", "park", "활동"},
		context: model.BackgroundContext{
			Description: "Beautiful urban park setting with trees and modern architecture",
			Setting:     "Contemporary city park with walking paths and green spaces",
			Lighting:    "Natural daylight with soft shadows from trees",
		},
	},
	{
		name:     "street",
		keywords: []string{"쇼핑", "거리", "스트리트", "shopping", "street", "urban"},
		context: model.BackgroundContext{
			Description: "Vibrant city street with modern storefronts and urban atmosphere",
			Setting:     "Stylish shopping district with contemporary architecture",
			Lighting:    "Bright daylight with urban ambiance",
		},
	},
	{
		name:     "travel",
		keywords: []string{"여행", "휴가", "바다", "travel", "vacation", "beach"},
		context: model.BackgroundContext{
			Description: "Scenic travel destination with beautiful natural backdrop",
			Setting:     "Picturesque location with natural beauty and architectural elements",
			Lighting:    "Golden hour lighting with natural warm tones",
		},
	},
}

// DefaultBackground is the studio backdrop used when no rule matches.
var DefaultBackground = model.BackgroundContext{
	Description: "Clean, modern studio setting with subtle architectural elements",
	Setting:     "Minimalist contemporary space with neutral tones and geometric elements",
	Lighting:    "Professional studio lighting with soft, even illumination",
}

// ResolveContext picks a backdrop for the synthesized image from the prompt and
// the planner's description.
func ResolveContext(prompt, description string) model.BackgroundContext {
	text := strings.ToLower(prompt + " " + description)
	for _, rule := range backgroundRules {
		if rule.matches(text) {
			return rule.context
		}
	}
	return DefaultBackground
}
