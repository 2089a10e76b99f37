// Package model defines the domain types shared across the styling service.
package model

import "strings"

// Category is the display category a product belongs to.
// Values are the Korean labels the planner emits and the UI renders.
type Category string

const (
	// CategoryTop covers shirts, knits and outerwear.
	CategoryTop Category = "상의"
	// CategoryBottom covers trousers, skirts and shorts.
	CategoryBottom Category = "하의"
	// CategoryShoes covers all footwear.
	CategoryShoes Category = "신발"
	// CategoryAccessory covers bags, hats, jewellery and the like.
	CategoryAccessory Category = "악세서리"
	// CategoryOther is the catch-all display bucket for unknown categories.
	CategoryOther Category = "기타"
)

// PlannableCategories lists the categories a style plan may assign, in display order.
var PlannableCategories = []Category{CategoryTop, CategoryBottom, CategoryShoes, CategoryAccessory}

// DisplayOrder is the fixed order in which grouped categories are rendered.
var DisplayOrder = []Category{CategoryTop, CategoryBottom, CategoryShoes, CategoryAccessory, CategoryOther}

// IsPlannable reports whether c is one of the four categories a plan may use.
func (c Category) IsPlannable() bool {
	for _, known := range PlannableCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps a label to a plannable category.
// English names are accepted as aliases so CLI users need not type Hangul.
func ParseCategory(s string) (Category, bool) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "top":
		return CategoryTop, true
	case "bottom":
		return CategoryBottom, true
	case "shoes":
		return CategoryShoes, true
	case "accessory":
		return CategoryAccessory, true
	}
	c := Category(trimmed)
	return c, c.IsPlannable()
}
