package styling

import (
	"fmt"
	"sync"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
)

// Token identifies one styling run within a Session.
type Token uint64

// Session holds the current result and selection for one user.
// Runs are serialized: Begin refuses to start while another run is in flight,
// and Apply discards results whose token has been superseded.
type Session struct {
	result     *model.StyleResult
	selection  Selection
	mu         sync.Mutex
	generation Token
	running    bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{selection: NewSelection(nil)}
}

// Begin starts a new run and returns its token.
func (s *Session) Begin() (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return 0, common.ErrRunInFlight
	}
	s.generation++
	s.running = true
	return s.generation, nil
}

// Apply installs result if token still identifies the latest run.
// The selection resets to every product of the new result.
func (s *Session) Apply(token Token, result *model.StyleResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.generation {
		return fmt.Errorf("%w: token %d, current %d", common.ErrStaleResult, token, s.generation)
	}
	s.running = false
	s.install(result)
	return nil
}

// Fail ends the run identified by token without changing the current result.
func (s *Session) Fail(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == s.generation {
		s.running = false
	}
}

// Abandon invalidates any in-flight run so its result will be rejected.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.running = false
}

// LoadHistory replaces the current result with a saved one and invalidates
// any in-flight run.
func (s *Session) LoadHistory(item model.StyleHistoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.running = false
	result := item.Result()
	s.install(&result)
}

func (s *Session) install(result *model.StyleResult) {
	s.result = result
	if result == nil {
		s.selection = NewSelection(nil)
		return
	}
	s.selection = NewSelection(result.Products)
}

// Running reports whether a run is in flight.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Result returns a copy of the current result.
func (s *Session) Result() (model.StyleResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return model.StyleResult{}, false
	}
	r := *s.result
	r.Products = model.CloneProducts(r.Products)
	return r, true
}

// Selection returns the current selection.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Toggle flips the selection of the product with the given URL.
// Only products of the current result can be selected.
func (s *Session) Toggle(productURL string) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return s.selection, common.ErrNoResult
	}
	for _, p := range s.result.Products {
		if p.ProductURL == productURL {
			s.selection = s.selection.Toggle(p)
			return s.selection, nil
		}
	}
	return s.selection, fmt.Errorf("product %q: %w", productURL, common.ErrNotFound)
}

// SelectedProducts returns the selected products in result order.
func (s *Session) SelectedProducts() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return nil
	}
	return s.selection.Filter(s.result.Products)
}

// Groups returns the current result's products grouped for display.
func (s *Session) Groups() []CategoryGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return nil
	}
	return Group(s.result.Products)
}
