package models

// Optional distinguishes a field that was not supplied from one supplied
// with a zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// FromPtr maps nil to an absent value.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}
	return Some(*p)
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}
