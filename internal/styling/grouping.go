package styling

import "github.com/Veraticus/easy-style/internal/model"

// CategoryGroup is one display bucket of products.
type CategoryGroup struct {
	Category model.Category  `json:"category"`
	Products []model.Product `json:"products"`
}

// Group buckets products by category in display order, omitting empty buckets.
// Products with a category outside the plannable set land in the Other bucket.
func Group(products []model.Product) []CategoryGroup {
	buckets := make(map[model.Category][]model.Product, len(model.DisplayOrder))
	for _, p := range products {
		c := p.Category
		if !c.IsPlannable() {
			c = model.CategoryOther
		}
		buckets[c] = append(buckets[c], p)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for _, c := range model.DisplayOrder {
		if items := buckets[c]; len(items) > 0 {
			groups = append(groups, CategoryGroup{Category: c, Products: items})
		}
	}
	return groups
}

// Selection is an immutable set of products keyed by product URL.
type Selection struct {
	members map[string]model.Product
}

// NewSelection returns a selection containing every product.
func NewSelection(products []model.Product) Selection {
	s := Selection{members: make(map[string]model.Product, len(products))}
	for _, p := range products {
		s.members[p.ProductURL] = p
	}
	return s
}

// Toggle returns a copy of s with p removed if present, added otherwise.
func (s Selection) Toggle(p model.Product) Selection {
	next := Selection{members: make(map[string]model.Product, len(s.members)+1)}
	for k, v := range s.members {
		next.members[k] = v
	}
	if _, ok := next.members[p.ProductURL]; ok {
		delete(next.members, p.ProductURL)
	} else {
		next.members[p.ProductURL] = p
	}
	return next
}

// Contains reports whether a product with the given URL is selected.
func (s Selection) Contains(productURL string) bool {
	_, ok := s.members[productURL]
	return ok
}

// Len returns the number of selected products.
func (s Selection) Len() int {
	return len(s.members)
}

// Total returns the summed price of the selection.
func (s Selection) Total() int64 {
	var total int64
	for _, p := range s.members {
		total += p.Price
	}
	return total
}

// Filter returns the selected members of products in their original order.
func (s Selection) Filter(products []model.Product) []model.Product {
	out := make([]model.Product, 0, len(s.members))
	for _, p := range products {
		if s.Contains(p.ProductURL) {
			out = append(out, p)
		}
	}
	return out
}

// Total sums the price of products.
func Total(products []model.Product) int64 {
	var total int64
	for _, p := range products {
		total += p.Price
	}
	return total
}
