package sbdbg

import (
	"iter"

	"github.com/slok/sbdbg/internal/native"
)

// Enumerator is a lazy, forward only view over a native collection owned by
// another entity.
//
// Every advance asks the parent for its current size, so elements added or
// removed between advances are observed. It never restarts: once it ends,
// it stays ended and a new enumeration has to be requested from the parent.
// Mutating the parent while enumerating may skip or repeat elements, as the
// native side does.
//
// Elements are owned by the caller, Close them when done.
type Enumerator[T any] struct {
	valid func() bool
	count func() uint32
	at    func(idx uint32) T
	idx   uint32
	done  bool
}

// Next returns the next element, false once the collection is exhausted or
// the parent is no longer valid.
func (e *Enumerator[T]) Next() (T, bool) {
	var zero T
	if e.done {
		return zero, false
	}

	if !e.valid() || e.idx >= e.count() {
		e.done = true
		return zero, false
	}

	v := e.at(e.idx)
	e.idx++
	return v, true
}

// All returns the remaining elements as a sequence. Ranging twice does not
// restart the enumeration.
func (e *Enumerator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := e.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Index returns the position of the next element.
func (e *Enumerator[T]) Index() int { return int(e.idx) }

// enumerate builds the enumerator of a collection owned by the entity behind h.
// The enumerator keeps the parent reachable but never disposes it.
func enumerate[R, C ref, W any](
	h *handle[R],
	k *kind[C],
	count func(native.Backend, R) uint32,
	at func(native.Backend, R, uint32) C,
	wrap func(*handle[C]) W,
) *Enumerator[W] {
	return &Enumerator[W]{
		valid: h.isValid,
		count: func() uint32 { return call(h, count) },
		at: func(idx uint32) W {
			return wrapChild(h, k, func(be native.Backend, raw R) C { return at(be, raw, idx) }, wrap)
		},
	}
}
