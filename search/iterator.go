package search

// Iterator is a forward iterator over a sequence of values, in the style of
// bufio.Scanner: Next advances and reports whether a value is available, Value
// returns it and Err reports the error that stopped the iteration, if any.
type Iterator[T any] interface {
	Next() bool
	Value() T
	Err() error
}

// SliceIterator iterates over a slice.
type SliceIterator[T any] struct {
	values []T
	i      int
}

// NewSliceIterator returns an [Iterator] over values.
func NewSliceIterator[T any](values []T) *SliceIterator[T] {
	return &SliceIterator[T]{values: values, i: -1}
}

func (it *SliceIterator[T]) Next() bool {
	if it.i < len(it.values) {
		it.i++
	}
	return it.i < len(it.values)
}

func (it *SliceIterator[T]) Value() T {
	return it.values[it.i]
}

func (it *SliceIterator[T]) Err() error {
	return nil
}

// Len returns the length of the underlying slice.
func (it *SliceIterator[T]) Len() int {
	return len(it.values)
}

type mapIterator[S, T any] struct {
	it    Iterator[S]
	f     func(S) (T, error)
	value T
	err   error
}

// Map returns an [Iterator] yielding f(v) for every v of it. The iteration stops
// at the first error returned by f, which is then reported by Err.
func Map[S, T any](it Iterator[S], f func(S) (T, error)) Iterator[T] {
	return &mapIterator[S, T]{it: it, f: f}
}

func (m *mapIterator[S, T]) Next() bool {
	if m.err != nil || !m.it.Next() {
		return false
	}
	m.value, m.err = m.f(m.it.Value())
	return m.err == nil
}

func (m *mapIterator[S, T]) Value() T {
	return m.value
}

func (m *mapIterator[S, T]) Err() error {
	if m.err != nil {
		return m.err
	}
	return m.it.Err()
}

// Collect drains it into a slice.
func Collect[T any](it Iterator[T]) (values []T, err error) {
	for it.Next() {
		values = append(values, it.Value())
	}
	return values, it.Err()
}
