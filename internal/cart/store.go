package cart

import (
	"sync"

	"github.com/storefront-core/server/internal/model"
)

// Result describes one applied action.
type Result struct {
	Previous model.CartState
	State    model.CartState
	// Version counts applied actions, starting at 1 for the first one.
	Version uint64
	// Changed is false when the action was a no-op, e.g. removing a product
	// that is not in the cart.
	Changed bool
}

// Store owns one cart. All actions go through Dispatch and are applied one at
// a time, so readers never observe a duplicate product id or a stale total.
type Store struct {
	mu      sync.RWMutex
	state   model.CartState
	version uint64
}

func NewStore() *Store {
	return &Store{state: model.EmptyCart()}
}

// Dispatch applies action and reports the transition.
func (s *Store) Dispatch(action model.Action) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := Reduce(prev, action)
	s.state = next
	s.version++

	return Result{
		Previous: prev.Clone(),
		State:    next.Clone(),
		Version:  s.version,
		Changed:  changed(prev, next),
	}
}

// State returns a copy of the current cart.
func (s *Store) State() model.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Version is the number of actions applied so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) AddItem(p model.Product) Result {
	return s.Dispatch(model.AddItem(p))
}

func (s *Store) UpdateQuantity(productID, quantity int) Result {
	return s.Dispatch(model.UpdateQuantity(productID, quantity))
}

func (s *Store) RemoveItem(productID int) Result {
	return s.Dispatch(model.RemoveItem(productID))
}

func (s *Store) ClearCart() Result {
	return s.Dispatch(model.ClearCart())
}

func changed(prev, next model.CartState) bool {
	if len(prev.Items) != len(next.Items) {
		return true
	}
	for i := range prev.Items {
		if prev.Items[i].ID != next.Items[i].ID || prev.Items[i].Quantity != next.Items[i].Quantity {
			return true
		}
	}
	return false
}
