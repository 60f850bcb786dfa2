package sequence

// Queue is a FIFO queue. The zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
}

func NewQueue[T any](items ...T) *Queue[T] {
	return &Queue[T]{items: append([]T(nil), items...)}
}

func (q *Queue[T]) PushBack(v T) {
	q.items = append(q.items, v)
}

// PopFront removes and returns the first element.
func (q *Queue[T]) PopFront() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Retain keeps only the elements satisfying keep, preserving their order.
func (q *Queue[T]) Retain(keep func(T) bool) {
	n := 0
	for _, v := range q.items {
		if keep(v) {
			q.items[n] = v
			n++
		}
	}
	var zero T
	for i := n; i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = q.items[:n]
}

// Items returns a copy of the queued elements, front first.
func (q *Queue[T]) Items() []T {
	return append([]T(nil), q.items...)
}

func (q *Queue[T]) Iter() *Iterator[T] {
	return From(q.items)
}

func (q *Queue[T]) Len() int {
	return len(q.items)
}

func (q *Queue[T]) IsEmpty() bool {
	return len(q.items) == 0
}
