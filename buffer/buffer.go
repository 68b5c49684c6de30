package buffer

// Buffer is a fixed-capacity FIFO with a read cursor and a write cursor.
// Elements between the cursors are pending. Writable compacts pending
// elements to the front, so the full free capacity is always contiguous.
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	data []T
	r, w int
}

// New returns an empty Buffer holding up to capacity elements.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[T]{data: make([]T, capacity)}
}

// FromSlice wraps s as a full buffer without copying.
func FromSlice[T any](s []T) *Buffer[T] {
	return &Buffer[T]{data: s, w: len(s)}
}

// Cap returns the capacity in elements.
func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

// Len returns the number of pending elements.
func (b *Buffer[T]) Len() int {
	return b.w - b.r
}

// Free returns the number of elements that can still be written.
func (b *Buffer[T]) Free() int {
	return len(b.data) - b.Len()
}

// Readable returns the pending elements at the read cursor. The slice is
// valid until the next call to Writable, Write or Reset.
func (b *Buffer[T]) Readable() []T {
	return b.data[b.r:b.w]
}

// Writable returns the free space at the write cursor, Free elements long.
func (b *Buffer[T]) Writable() []T {
	b.compact()
	return b.data[b.w:]
}

// Consume advances the read cursor by n elements.
func (b *Buffer[T]) Consume(n int) {
	if n < 0 || n > b.Len() {
		panic("buffer: consume beyond pending elements")
	}
	b.r += n
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
}

// Commit advances the write cursor by n elements previously written
// through Writable.
func (b *Buffer[T]) Commit(n int) {
	if n < 0 || b.w+n > len(b.data) {
		panic("buffer: commit beyond capacity")
	}
	b.w += n
}

// Write copies as much of src as fits and returns the number of elements
// copied.
func (b *Buffer[T]) Write(src []T) int {
	n := copy(b.Writable(), src)
	b.w += n
	return n
}

// Read copies up to len(dst) pending elements into dst and consumes them.
func (b *Buffer[T]) Read(dst []T) int {
	n := copy(dst, b.Readable())
	b.Consume(n)
	return n
}

// Reset discards pending elements. The backing array is zeroed so stale
// samples never reappear through Writable.
func (b *Buffer[T]) Reset() {
	clear(b.data)
	b.r, b.w = 0, 0
}

// Grow ensures the capacity is at least n, preserving pending elements.
func (b *Buffer[T]) Grow(n int) {
	if n <= len(b.data) {
		return
	}
	grown := make([]T, n)
	b.w = copy(grown, b.Readable())
	b.r = 0
	b.data = grown
}

func (b *Buffer[T]) compact() {
	if b.r == 0 {
		return
	}
	n := copy(b.data, b.data[b.r:b.w])
	b.r, b.w = 0, n
}
