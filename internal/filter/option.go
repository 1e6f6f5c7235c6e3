package filter

// Opt is a tagged optional value: present-with-value or absent. It replaces
// truthiness checks so that a present 0 is never mistaken for "unset".
type Opt[T any] struct {
	val T
	ok  bool
}

func Some[T any](v T) Opt[T] { return Opt[T]{val: v, ok: true} }

func None[T any]() Opt[T] { return Opt[T]{} }

func (o Opt[T]) Get() (T, bool) { return o.val, o.ok }

func (o Opt[T]) IsSome() bool { return o.ok }

// Or returns the value or def when absent.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.val
	}
	return def
}
