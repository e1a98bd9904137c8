package log

import (
	"fmt"
	"io"
	"sync"
)

// Buffer is a thread-safe ring buffer implementing [io.Writer]. It holds the
// most recent entries so log output produced while an interactive form owns
// the terminal can be replayed afterwards.
type Buffer struct {
	entries  [][]byte
	capacity int
	start    int
	size     int
	mu       sync.Mutex
}

// NewBuffer creates a ring buffer holding at most capacity entries.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 100
	}

	return &Buffer{
		entries:  make([][]byte, capacity),
		capacity: capacity,
	}
}

// Write stores p as one entry, evicting the oldest entry when full.
// The data is copied so callers may reuse p.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entry := make([]byte, len(p))
	copy(entry, p)

	if b.size < b.capacity {
		b.entries[(b.start+b.size)%b.capacity] = entry
		b.size++
	} else {
		b.entries[b.start] = entry
		b.start = (b.start + 1) % b.capacity
	}

	return len(p), nil
}

// Size returns the current number of buffered entries.
func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.size
}

// Capacity returns the maximum number of entries the buffer can hold.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// IsFull reports whether the buffer has wrapped at least once.
func (b *Buffer) IsFull() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.size == b.capacity
}

// WriteTo writes all buffered entries to w in chronological order and clears
// the buffer.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()

	entries := make([][]byte, 0, b.size)
	for i := range b.size {
		entries = append(entries, b.entries[(b.start+i)%b.capacity])
	}

	b.start = 0
	b.size = 0
	b.entries = make([][]byte, b.capacity)
	b.mu.Unlock()

	var total int64

	for _, entry := range entries {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("writing entry: %w", err)
		}
	}

	return total, nil
}
