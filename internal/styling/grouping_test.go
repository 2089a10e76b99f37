package styling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/easy-style/internal/model"
)

func item(url string, c model.Category, price int64) model.Product {
	return model.Product{ProductURL: url, Category: c, Price: price, Name: url}
}

func TestGroup(t *testing.T) {
	products := []model.Product{
		item("shoes-1", model.CategoryShoes, 1),
		item("top-1", model.CategoryTop, 1),
		item("odd-1", model.Category("아우터"), 1),
		item("top-2", model.CategoryTop, 1),
		item("acc-1", model.CategoryAccessory, 1),
	}

	groups := Group(products)
	require.Len(t, groups, 4)

	assert.Equal(t, model.CategoryTop, groups[0].Category)
	assert.Equal(t, []string{"top-1", "top-2"}, urls(groups[0].Products))
	assert.Equal(t, model.CategoryShoes, groups[1].Category)
	assert.Equal(t, model.CategoryAccessory, groups[2].Category)
	assert.Equal(t, model.CategoryOther, groups[3].Category)
	assert.Equal(t, []string{"odd-1"}, urls(groups[3].Products))
}

func TestGroupOrderProperty(t *testing.T) {
	categories := []model.Category{
		model.CategoryAccessory, model.CategoryShoes, model.CategoryBottom,
		model.CategoryTop, model.Category("unknown"),
	}
	rank := make(map[model.Category]int, len(model.DisplayOrder))
	for i, c := range model.DisplayOrder {
		rank[c] = i
	}

	// Every subset of the categories, fed in reverse display order.
	for mask := 0; mask < 1<<len(categories); mask++ {
		var products []model.Product
		for i, c := range categories {
			if mask&(1<<i) != 0 {
				products = append(products, item(fmt.Sprintf("p-%d-%d", mask, i), c, 1))
			}
		}

		groups := Group(products)
		seen := map[model.Category]bool{}
		for i, g := range groups {
			assert.False(t, seen[g.Category], "duplicate bucket %s", g.Category)
			seen[g.Category] = true
			assert.NotEmpty(t, g.Products)
			if i > 0 {
				assert.Less(t, rank[groups[i-1].Category], rank[g.Category])
			}
		}
		assert.Len(t, groups, len(products))
	}
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil))
}

func TestSelectionToggleIsInverse(t *testing.T) {
	products := []model.Product{
		item("a", model.CategoryTop, 10000),
		item("b", model.CategoryBottom, 20000),
		item("c", model.CategoryShoes, 30000),
	}
	outside := item("z", model.CategoryAccessory, 5000)

	selections := []Selection{
		NewSelection(nil),
		NewSelection(products),
		NewSelection(products[:1]),
		NewSelection(products).Toggle(products[1]),
	}
	for i, s := range selections {
		for _, p := range append(products, outside) {
			t.Run(fmt.Sprintf("%d/%s", i, p.ProductURL), func(t *testing.T) {
				assert.Equal(t, s, s.Toggle(p).Toggle(p))
				assert.NotEqual(t, s.Contains(p.ProductURL), s.Toggle(p).Contains(p.ProductURL))
			})
		}
	}
}

func TestSelectionToggleDoesNotMutate(t *testing.T) {
	p := item("a", model.CategoryTop, 100)
	s := NewSelection([]model.Product{p})

	next := s.Toggle(p)
	assert.True(t, s.Contains("a"))
	assert.False(t, next.Contains("a"))
}

func TestSelectionTotal(t *testing.T) {
	products := []model.Product{
		item("a", model.CategoryTop, 39000),
		item("b", model.CategoryBottom, 59000),
		item("c", model.CategoryShoes, 129000),
	}

	assert.Equal(t, int64(0), NewSelection(nil).Total())
	assert.Equal(t, int64(227000), NewSelection(products).Total())
	assert.Equal(t, int64(168000), NewSelection(products).Toggle(products[1]).Total())
	assert.Equal(t, Total(products), NewSelection(products).Total())
}

func TestSelectionFilterKeepsSourceOrder(t *testing.T) {
	products := []model.Product{
		item("a", model.CategoryTop, 1),
		item("b", model.CategoryBottom, 1),
		item("c", model.CategoryShoes, 1),
	}
	s := NewSelection(nil).Toggle(products[2]).Toggle(products[0])

	assert.Equal(t, []string{"a", "c"}, urls(s.Filter(products)))
	assert.Equal(t, 2, s.Len())
}

func urls(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ProductURL)
	}
	return out
}
