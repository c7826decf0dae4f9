// Package pages contains the per-page view-state controllers: each owns a
// fetch-then-render cycle with independent loading, empty, and error
// sub-states, and issues mutating calls with either optimistic or
// reload-based reconciliation. Rendering itself is external; controllers
// expose typed state for a presentation layer to read.
package pages

import "github.com/vidtube/client/internal/client/models"

// Phase is the render state of one fetched slice of page state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePopulated
	PhaseEmpty
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePopulated:
		return "populated"
	case PhaseEmpty:
		return "empty"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Collection is the state machine for one fetched list. Begin starts a fetch
// and returns a generation token; Complete applies a result only if it still
// belongs to the latest fetch, so an out-of-order or post-navigation
// completion is discarded rather than clobbering newer state.
//
// Collection is not synchronized; the owning controller guards it.
type Collection[T any] struct {
	phase Phase
	items []T
	err   error
	gen   uint64
}

// Begin transitions to Loading and returns the generation token the matching
// Complete must present.
func (c *Collection[T]) Begin() uint64 {
	c.gen++
	c.phase = PhaseLoading
	return c.gen
}

// Complete applies a fetch result. It reports false, leaving all state
// untouched, when gen is stale.
func (c *Collection[T]) Complete(gen uint64, items []T, err error) bool {
	if gen != c.gen {
		return false
	}
	if err != nil {
		c.phase = PhaseFailed
		c.err = err
		return true
	}
	c.err = nil
	c.items = items
	if len(items) == 0 {
		c.phase = PhaseEmpty
	} else {
		c.phase = PhasePopulated
	}
	return true
}

// Remove drops items matching pred, adjusting the phase if the collection
// becomes empty. Used for local reconciliation after a confirmed delete.
func (c *Collection[T]) Remove(pred func(T) bool) {
	kept := c.items[:0]
	for _, item := range c.items {
		if !pred(item) {
			kept = append(kept, item)
		}
	}
	c.items = kept
	if c.phase == PhasePopulated && len(c.items) == 0 {
		c.phase = PhaseEmpty
	}
}

func (c *Collection[T]) Phase() Phase  { return c.phase }
func (c *Collection[T]) Loading() bool { return c.phase == PhaseLoading }
func (c *Collection[T]) Err() error    { return c.err }
func (c *Collection[T]) Items() []T    { return c.items }

// Value is the single-object counterpart of Collection.
type Value[T any] struct {
	phase Phase
	item  *T
	err   error
	gen   uint64
}

func (v *Value[T]) Begin() uint64 {
	v.gen++
	v.phase = PhaseLoading
	return v.gen
}

func (v *Value[T]) Complete(gen uint64, item *T, err error) bool {
	if gen != v.gen {
		return false
	}
	if err != nil {
		v.phase = PhaseFailed
		v.err = err
		return true
	}
	v.err = nil
	v.item = item
	if item == nil {
		v.phase = PhaseEmpty
	} else {
		v.phase = PhasePopulated
	}
	return true
}

func (v *Value[T]) Phase() Phase  { return v.phase }
func (v *Value[T]) Loading() bool { return v.phase == PhaseLoading }
func (v *Value[T]) Err() error    { return v.err }
func (v *Value[T]) Item() *T      { return v.item }

// Session is the read side of the session controller that page controllers
// consult for gating. *session.Controller satisfies it.
type Session interface {
	IsAuthenticated() bool
	User() *models.User
}
