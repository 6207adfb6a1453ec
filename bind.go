package bindable

// The bind functions are package-level because Go methods cannot add
// type parameters for the owner and slot types. Source fields and
// target slots are plain accessor/setter closures; no reflection.

// Bind applies get over every pushed value and writes the result into
// owner through set. If b already holds a value the slot is written
// before Bind returns; afterwards every Set re-applies it. There is no
// unbind: the subscription is dropped automatically once owner is
// garbage collected.
func Bind[V, O, T any](b *Bindable[V], get func(V) T, owner *O, set func(*O, T)) {
	subscribe(b, owner, func(o *O, v V) {
		set(o, get(v))
	})
}

// BindOptional is Bind for a slot of type *T, where nil means absent.
// Delivered values always arrive wrapped non-nil; the slot only stays
// nil while no value has been pushed.
func BindOptional[V, O, T any](b *Bindable[V], get func(V) T, owner *O, set func(*O, *T)) {
	subscribe(b, owner, func(o *O, v V) {
		t := get(v)
		set(o, &t)
	})
}

// BindTransform runs each extracted value through transform before
// writing it into an optional slot. A nil transform result is written
// as-is, clearing the slot.
func BindTransform[V, O, T, R any](b *Bindable[V], get func(V) T, owner *O, set func(*O, *R), transform func(T) *R) {
	subscribe(b, owner, func(o *O, v V) {
		set(o, transform(get(v)))
	})
}
