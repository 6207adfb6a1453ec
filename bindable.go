// Package bindable is a single-value fan-out primitive: one producer
// pushes a value, every live binding applies it to a target property.
// Subscriptions hold their owner weakly, so destroying a target object
// is the only teardown a consumer ever does.
package bindable

import "weak"

// A subscription's notify reports whether the entry is still live.
// Returning false marks it for removal on the current pass.
type subscription[V any] struct {
	notify func(V) bool
}

// Bindable holds the latest value of type V plus its subscriber list.
// Notification order is registration order.
//
// Bindable is not safe for concurrent use. Set and the Bind functions
// must run on the owning goroutine; embedders that need cross-goroutine
// updates add their own serialization.
type Bindable[V any] struct {
	lastValue V
	hasValue  bool
	subs      []subscription[V]
}

// New creates a Bindable with no value yet. Bindings registered before
// the first Set receive nothing until it happens.
func New[V any]() *Bindable[V] {
	return &Bindable[V]{}
}

// Of creates a Bindable seeded with an initial value, which is
// delivered immediately to every subsequent bind.
func Of[V any](initial V) *Bindable[V] {
	return &Bindable[V]{lastValue: initial, hasValue: true}
}

// Value returns the most recently pushed value, if any.
func (b *Bindable[V]) Value() (V, bool) {
	return b.lastValue, b.hasValue
}

// Subscribers returns the live subscription count as of the last
// completed notification pass. Dead entries are removed lazily, so the
// count only drops after a Set observes the owner gone.
func (b *Bindable[V]) Subscribers() int {
	return len(b.subs)
}

// Set stores v as the latest value and synchronously notifies every
// live subscription in registration order, pruning entries whose owner
// has been collected. Every call notifies; equal consecutive values are
// not coalesced.
//
// A panic in a bound handler propagates out of Set. Entries after the
// faulting one are not notified on that pass and no pruning happens;
// the next Set runs a full pass again.
func (b *Bindable[V]) Set(v V) {
	b.lastValue = v
	b.hasValue = true
	b.notifyAndPrune(v)
}

func (b *Bindable[V]) notifyAndPrune(v V) {
	kept := make([]subscription[V], 0, len(b.subs))
	for _, s := range b.subs {
		if s.notify(v) {
			kept = append(kept, s)
		}
	}
	b.subs = kept
}

// subscribe is the primitive under the Bind functions. If a value is
// already present it is handed to handler once, synchronously, before
// the subscription exists; that delivery is never retried. The stored
// entry holds owner weakly, so it never extends owner's lifetime.
func subscribe[V any, O any](b *Bindable[V], owner *O, handler func(*O, V)) {
	if b.hasValue {
		handler(owner, b.lastValue)
	}
	ref := weak.Make(owner)
	b.subs = append(b.subs, subscription[V]{
		notify: func(v V) bool {
			o := ref.Value()
			if o == nil {
				return false
			}
			handler(o, v)
			return true
		},
	})
}
