package rotamenu

import (
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"go.uber.org/atomic"
)

// StateVisibility shows an item when its visibility case equals the current
// controller state. The host updates the state from any goroutine.
type StateVisibility struct {
	state atomic.Uint32
}

func NewStateVisibility(initial constants.Visibility) *StateVisibility {
	v := &StateVisibility{}
	v.state.Store(uint32(initial))
	return v
}

// Set records the live controller state.
func (v *StateVisibility) Set(state constants.Visibility) {
	v.state.Store(uint32(state))
}

func (v *StateVisibility) State() constants.Visibility {
	return constants.Visibility(v.state.Load())
}

func (v *StateVisibility) Visible(tag constants.Visibility) bool {
	return uint32(tag) == v.state.Load()
}

// PredicateVisibility maps visibility cases to predicates, for hosts whose
// cases mean conditions ("printing", "tool 1 present") rather than states.
// Cases without a predicate are hidden.
type PredicateVisibility map[constants.Visibility]func() bool

func (p PredicateVisibility) Visible(tag constants.Visibility) bool {
	fn, ok := p[tag]
	return ok && fn()
}
