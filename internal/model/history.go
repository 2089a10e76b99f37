package model

import "time"

// StyleHistoryItem is a saved styling result owned by one user.
type StyleHistoryItem struct {
	CreatedAt     time.Time    `json:"createdAt"`
	ID            string       `json:"id"`
	UserEmail     string       `json:"userEmail"`
	Prompt        string       `json:"prompt"`
	OriginalImage EncodedImage `json:"originalImage"`
	StyledResult  StyledImage  `json:"styledResult"`
	Products      []Product    `json:"products"`
}

// Result rebuilds the StyleResult the item was saved from.
func (h StyleHistoryItem) Result() StyleResult {
	return StyleResult{
		ImageBase64:   h.StyledResult.ImageBase64,
		ImageMIMEType: h.StyledResult.ImageMIMEType,
		Description:   h.StyledResult.Description,
		Products:      CloneProducts(h.Products),
	}
}
