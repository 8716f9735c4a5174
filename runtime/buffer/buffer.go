// Package buffer implements the emitted-runtime abstract machine that the
// code generator links every generated extension module against: a
// mutex-guarded byte vector with a per-byte borrow flag, enforcing the
// region language's runtime borrow discipline (no mutation of a borrowed
// byte, no double mutable borrow, no free while anything is borrowed).
//
// A Buffer value is a cheap-to-clone handle: the byte storage and its lock
// live behind a shared pointer, so two handles returned from the same
// allocate() call observe each other's writes, matching spec.md §5's
// "handle is cheap to clone... two handles refer to the same bytes".
package buffer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Byte is a single storage cell: its data and whether it is currently
// claimed by an outstanding borrow. Borrowed is a flag, not a counter —
// the region language has no concept of shared borrows stacking.
type Byte struct {
	Data     byte
	Borrowed bool
}

// Release clears the borrow flag. This is the explicit "release" hook
// spec.md §5 calls out; Buffer.Release is the caller-facing form that also
// takes the writer lock.
func (b *Byte) Release() { b.Borrowed = false }

// state is the shared, mutex-guarded cell two or more Buffer handles can
// point at. A nil Bytes slice encodes the freed state ("optional vector").
type state struct {
	mu    sync.RWMutex
	Bytes []Byte
}

// Buffer is a handle onto a shared byte vector. The zero Buffer is not
// usable; construct one with Allocate.
type Buffer struct {
	id    string
	state *state
}

// Allocate creates a new Buffer of n zero-valued, unborrowed bytes.
func Allocate(n int) *Buffer {
	return &Buffer{
		id:    uuid.NewString(),
		state: &state{Bytes: make([]Byte, n)},
	}
}

// Clone returns a new handle sharing this Buffer's underlying storage and
// lock — the cheap-clone operation spec.md §5 requires, used wherever a
// Buffer value is passed or assigned inside generated code.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{id: b.id, state: b.state}
}

// DebugID returns a stable per-allocation identifier, shared by every
// clone of this handle.
func (b *Buffer) DebugID() string { return b.id }

// Len returns the buffer's byte count, or 0 if it has been freed.
func (b *Buffer) Len() int {
	b.state.mu.RLock()
	defer b.state.mu.RUnlock()
	return len(b.state.Bytes)
}

// Freed reports whether Free has already been called on this buffer (or
// any clone of it).
func (b *Buffer) Freed() bool {
	b.state.mu.RLock()
	defer b.state.mu.RUnlock()
	return b.state.Bytes == nil
}

func (b *Buffer) checkRange(size, index int) {
	if index < 0 || size < 0 || index+size > len(b.state.Bytes) {
		panic(fmt.Sprintf("buffer: range [%d, %d) out of bounds for length %d", index, index+size, len(b.state.Bytes)))
	}
}

// Borrow claims bytes [index, index+size) as borrowed and returns a copy
// of their current data. Borrowing an already-borrowed byte is legal —
// Borrow is the non-exclusive form — only BorrowMut panics on collision.
func (b *Buffer) Borrow(size, index int) []byte {
	b.state.mu.Lock()
	defer b.state.mu.Unlock()
	if b.state.Bytes == nil {
		panic("buffer: borrow of freed buffer")
	}
	b.checkRange(size, index)

	out := make([]byte, size)
	for i := 0; i < size; i++ {
		cell := &b.state.Bytes[index+i]
		cell.Borrowed = true
		out[i] = cell.Data
	}
	return out
}

// BorrowMut claims bytes [index, index+size) as mutably borrowed. It
// panics if any targeted byte is already borrowed, matching spec.md §3's
// "borrow_mut ... flip borrowed=true" plus §4.5's runtime discipline.
func (b *Buffer) BorrowMut(size, index int) []byte {
	b.state.mu.Lock()
	defer b.state.mu.Unlock()
	if b.state.Bytes == nil {
		panic("buffer: borrow_mut of freed buffer")
	}
	b.checkRange(size, index)

	for i := 0; i < size; i++ {
		if b.state.Bytes[index+i].Borrowed {
			panic(fmt.Sprintf("buffer: borrow_mut of already-borrowed byte at index %d", index+i))
		}
	}
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		cell := &b.state.Bytes[index+i]
		cell.Borrowed = true
		out[i] = cell.Data
	}
	return out
}

// Release clears the borrow flag on bytes [index, index+size), the
// explicit counterpart to Borrow/BorrowMut named in spec.md §5.
func (b *Buffer) Release(size, index int) {
	b.state.mu.Lock()
	defer b.state.mu.Unlock()
	if b.state.Bytes == nil {
		return
	}
	b.checkRange(size, index)
	for i := 0; i < size; i++ {
		b.state.Bytes[index+i].Release()
	}
}

// Free transitions the buffer to the freed state. It is a no-op if already
// freed. It panics if any byte is currently borrowed, and it panics
// outright if the lock cannot be acquired without blocking — per spec.md
// §5, freeing while any access is in flight is a programmer error, not a
// wait condition.
func (b *Buffer) Free() {
	if !b.state.mu.TryLock() {
		panic("buffer: free while a borrow/write is in flight")
	}
	defer b.state.mu.Unlock()

	if b.state.Bytes == nil {
		return
	}
	for i, cell := range b.state.Bytes {
		if cell.Borrowed {
			panic(fmt.Sprintf("buffer: free while byte at index %d is borrowed", i))
		}
	}
	b.state.Bytes = nil
}

// At reads the byte at index i. No borrow check: indexed read is always
// allowed while the buffer is alive.
func (b *Buffer) At(i int) byte {
	b.state.mu.RLock()
	defer b.state.mu.RUnlock()
	if b.state.Bytes == nil {
		panic("buffer: read from freed buffer")
	}
	if i < 0 || i >= len(b.state.Bytes) {
		panic(fmt.Sprintf("buffer: index %d out of bounds for length %d", i, len(b.state.Bytes)))
	}
	return b.state.Bytes[i].Data
}

// Set writes v to index i. It panics if that byte is currently borrowed
// or if the buffer has been freed.
func (b *Buffer) Set(i int, v byte) {
	b.state.mu.Lock()
	defer b.state.mu.Unlock()
	if b.state.Bytes == nil {
		panic("buffer: write to freed buffer")
	}
	if i < 0 || i >= len(b.state.Bytes) {
		panic(fmt.Sprintf("buffer: index %d out of bounds for length %d", i, len(b.state.Bytes)))
	}
	if b.state.Bytes[i].Borrowed {
		panic(fmt.Sprintf("buffer: write to borrowed byte at index %d", i))
	}
	b.state.Bytes[i].Data = v
}

// String renders the buffer as a hex dump, or "Buffer(<mutably borrowed>)"
// if a writer currently holds the lock — String takes the reader side and
// must not block behind an in-flight mutation.
func (b *Buffer) String() string {
	if !b.state.mu.TryRLock() {
		return "Buffer(<mutably borrowed>)"
	}
	defer b.state.mu.RUnlock()

	// A freed buffer has a nil Bytes slice, which the loop below renders
	// as "Buffer()" — the freed state is observable as empty, per
	// spec.md §3, rather than as some distinct marker string.
	parts := make([]string, len(b.state.Bytes))
	for i, cell := range b.state.Bytes {
		parts[i] = fmt.Sprintf("%02x", cell.Data)
	}
	return "Buffer(" + strings.Join(parts, " ") + ")"
}
