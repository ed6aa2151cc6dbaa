package geom

// Dynamic pairs the authored value of an animatable parameter with the value
// produced by the current playback query. Queries write Current only, so a
// pass can always be rerun after Reset.
type Dynamic[T any] struct {
	Original T
	Current  T
}

// NewDynamic returns a Dynamic with both halves set to v.
func NewDynamic[T any](v T) Dynamic[T] {
	return Dynamic[T]{Original: v, Current: v}
}

// Reset copies Original into Current.
func (d *Dynamic[T]) Reset() { d.Current = d.Original }

// Set overwrites both halves.
func (d *Dynamic[T]) Set(v T) {
	d.Original = v
	d.Current = v
}
