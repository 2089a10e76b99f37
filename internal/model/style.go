package model

// FollowUpQuestion is the clarifying question offered before generation.
type FollowUpQuestion struct {
	Question string   `json:"question"`
	Examples []string `json:"examples"`
}

// PlannedItem is one outfit slot proposed by the planner.
type PlannedItem struct {
	Category      Category `json:"category"`
	SearchKeyword string   `json:"searchKeyword"`
}

// StylePlan is the planner's output: prose description plus ordered items.
type StylePlan struct {
	Description string        `json:"description"`
	Items       []PlannedItem `json:"items"`
}

// BackgroundContext describes the backdrop for a synthesized image.
type BackgroundContext struct {
	Description string `json:"description"`
	Setting     string `json:"setting"`
	Lighting    string `json:"lighting"`
}

// StyledImage is the synthesized look with its description.
type StyledImage struct {
	ImageBase64   string `json:"imageBase64"`
	ImageMIMEType string `json:"imageMimeType,omitempty"`
	Description   string `json:"description"`
}

// StyleResult is the complete output of one successful styling run.
type StyleResult struct {
	ImageBase64   string    `json:"imageBase64"`
	ImageMIMEType string    `json:"imageMimeType,omitempty"`
	Description   string    `json:"description"`
	Products      []Product `json:"products"`
}

// Styled returns the image and description part of the result.
func (r StyleResult) Styled() StyledImage {
	return StyledImage{ImageBase64: r.ImageBase64, ImageMIMEType: r.ImageMIMEType, Description: r.Description}
}

// StyledDataURL returns the synthesized image as a data: URL.
func (r StyleResult) StyledDataURL() string {
	if r.ImageBase64 == "" {
		return ""
	}
	return DataURL(r.ImageMIMEType, r.ImageBase64)
}
