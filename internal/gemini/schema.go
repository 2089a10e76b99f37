package gemini

import "github.com/google/generative-ai-go/genai"

var followUpSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"question": {Type: genai.TypeString},
		"examples": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"question", "examples"},
}

var stylePlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"description": {
			Type:        genai.TypeString,
			Description: "The new style description in Korean.",
		},
		"items": {
			Type:        genai.TypeArray,
			Description: "List of items for the new style.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {
						Type:        genai.TypeString,
						Description: "Category of the item. Must be one of '상의', '하의', '신발', '악세서리'.",
						Format:      "enum",
						Enum:        []string{"상의", "하의", "신발", "악세서리"},
					},
					"searchKeyword": {
						Type:        genai.TypeString,
						Description: "A specific search keyword in Korean for an online shop.",
					},
				},
				Required: []string{"category", "searchKeyword"},
			},
		},
	},
	Required: []string{"description", "items"},
}
