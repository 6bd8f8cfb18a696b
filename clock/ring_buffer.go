package clock

// RingBuffer is a fixed-capacity FIFO that evicts its oldest element when full
type RingBuffer[T any] struct {
	buf   []T
	start int
	size  int
}

// NewRingBuffer creates an empty ring buffer; capacity must be positive
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		panic("clock: ring buffer capacity must be positive")
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}
}

func (r *RingBuffer[T]) Len() int    { return r.size }
func (r *RingBuffer[T]) Cap() int    { return len(r.buf) }
func (r *RingBuffer[T]) Empty() bool { return r.size == 0 }
func (r *RingBuffer[T]) Full() bool  { return r.size == len(r.buf) }

// Rotate enqueues in and returns the evicted oldest element when full,
// or the zero value while the buffer is still filling
func (r *RingBuffer[T]) Rotate(in T) T {
	var out T
	if r.Full() {
		out = r.buf[r.start]
		r.buf[r.start] = in
		r.start = (r.start + 1) % len(r.buf)
		return out
	}
	r.buf[(r.start+r.size)%len(r.buf)] = in
	r.size++
	return out
}
