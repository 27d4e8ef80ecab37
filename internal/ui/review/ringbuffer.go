package review

// RingBuffer is a generic circular buffer with a fixed capacity. Once full,
// adding an item drops the oldest one.
type RingBuffer[T any] struct {
	items    []T
	head     int
	size     int
	capacity int
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer[T]{
		items:    make([]T, capacity),
		capacity: capacity,
	}
}

// Add adds an item to the ring buffer.
func (r *RingBuffer[T]) Add(item T) {
	r.items[(r.head+r.size)%r.capacity] = item
	if r.size < r.capacity {
		r.size++
		return
	}
	r.head = (r.head + 1) % r.capacity
}

// Pop removes and returns the most recently added item.
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	idx := (r.head + r.size - 1) % r.capacity
	item := r.items[idx]
	r.items[idx] = zero
	r.size--
	return item, true
}

// Latest returns the most recently added item without removing it.
func (r *RingBuffer[T]) Latest() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.items[(r.head+r.size-1)%r.capacity], true
}

// Items returns all items in the buffer in chronological order.
func (r *RingBuffer[T]) Items() []T {
	result := make([]T, r.size)
	for i := range r.size {
		result[i] = r.items[(r.head+i)%r.capacity]
	}
	return result
}

// Len returns the number of items in the buffer.
func (r *RingBuffer[T]) Len() int {
	return r.size
}

// Clear removes all items from the buffer.
func (r *RingBuffer[T]) Clear() {
	clear(r.items)
	r.head = 0
	r.size = 0
}
