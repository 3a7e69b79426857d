package loggable

// Option is either absent or holds a value. Archetype slots use it to keep
// "never assigned" distinct from "assigned an empty batch".
type Option[T any] struct {
	value   T
	present bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.present
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// ValueOr returns the value if present, otherwise fallback.
func (o Option[T]) ValueOr(fallback T) T {
	if !o.present {
		return fallback
	}
	return o.value
}
