package buffer_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regionc/regionc/runtime/buffer"
)

func TestAllocateZeroedAndUnborrowed(t *testing.T) {
	buf := buffer.Allocate(4)
	require.Equal(t, 4, buf.Len())
	for i := 0; i < 4; i++ {
		assert.Equal(t, byte(0), buf.At(i))
	}
}

func TestBorrowReturnsCopyNotView(t *testing.T) {
	buf := buffer.Allocate(2)
	buf.Set(0, 0xAB)

	got := buf.Borrow(2, 0)
	require.Len(t, got, 2)
	assert.Equal(t, byte(0xAB), got[0])

	got[0] = 0xFF
	assert.Equal(t, byte(0xAB), buf.At(0), "mutating the borrowed copy must not affect the buffer")
}

func TestWriteToBorrowedBytePanics(t *testing.T) {
	buf := buffer.Allocate(4)
	buf.Borrow(2, 0)

	assert.Panics(t, func() {
		buf.Set(0, 1)
	})
}

func TestBorrowMutOfBorrowedBytePanics(t *testing.T) {
	buf := buffer.Allocate(4)
	buf.Borrow(2, 0)

	assert.Panics(t, func() {
		buf.BorrowMut(2, 0)
	}, "borrow_mut over an already-borrowed range must panic")
}

func TestBorrowMutDisjointRangesSucceed(t *testing.T) {
	buf := buffer.Allocate(4)
	assert.NotPanics(t, func() {
		buf.BorrowMut(2, 0)
		buf.BorrowMut(2, 2)
	})
}

func TestFreeWhileBorrowedPanics(t *testing.T) {
	buf := buffer.Allocate(4)
	buf.Borrow(4, 0)

	assert.Panics(t, func() {
		buf.Free()
	})
}

func TestFreeIsIdempotent(t *testing.T) {
	buf := buffer.Allocate(4)
	assert.NotPanics(t, func() {
		buf.Free()
		buf.Free()
	})
}

func TestReadAfterFreeAndWriteAfterFreePanic(t *testing.T) {
	buf := buffer.Allocate(4)
	buf.Free()

	assert.Panics(t, func() { buf.At(0) })
	assert.Panics(t, func() { buf.Set(0, 1) })
}

func TestIndexOutOfBoundsPanics(t *testing.T) {
	buf := buffer.Allocate(2)
	assert.Panics(t, func() { buf.At(2) })
	assert.Panics(t, func() { buf.Set(-1, 0) })
	assert.Panics(t, func() { buf.Borrow(1, 2) })
}

func TestCloneSharesUnderlyingStorage(t *testing.T) {
	buf := buffer.Allocate(1)
	clone := buf.Clone()

	buf.Set(0, 0x42)
	assert.Equal(t, byte(0x42), clone.At(0))
	assert.Equal(t, buf.DebugID(), clone.DebugID())

	clone.Free()
	assert.True(t, buf.Freed(), "freeing one handle must be visible through every clone")
}

func TestReleaseClearsBorrowFlag(t *testing.T) {
	buf := buffer.Allocate(4)
	buf.Borrow(4, 0)
	assert.Panics(t, func() { buf.Free() })

	buf.Release(4, 0)
	assert.NotPanics(t, func() { buf.Free() })
}

func TestStringRendersHexDump(t *testing.T) {
	buf := buffer.Allocate(2)
	buf.Set(0, 0x0a)
	buf.Set(1, 0xff)
	assert.Equal(t, "Buffer(0a ff)", buf.String())
}

func TestStringAfterFreeIsEmpty(t *testing.T) {
	buf := buffer.Allocate(2)
	buf.Free()
	assert.Equal(t, "Buffer()", buf.String())
}

func TestConcurrentBorrowMutDisjointRangesDoNotRace(t *testing.T) {
	buf := buffer.Allocate(100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			buf.BorrowMut(2, idx*2)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 100; i++ {
		assert.Panics(t, func() { buf.Set(i, 1) })
	}
}
