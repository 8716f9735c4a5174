package dynvalue_test

import (
	"testing"

	"github.com/regionc/regionc/runtime/buffer"
	"github.com/regionc/regionc/runtime/dynvalue"
)

func TestFromIntRoundTrip(t *testing.T) {
	f := dynvalue.NativeFactory{}
	v := f.FromInt(42)

	n, ok := v.ToInt()
	if !ok || n != 42 {
		t.Fatalf("ToInt() = (%d, %v), want (42, true)", n, ok)
	}
	if _, ok := v.ToBuffer(); ok {
		t.Errorf("ToBuffer() should fail on an int value")
	}
}

func TestFromBufferRoundTrip(t *testing.T) {
	f := dynvalue.NativeFactory{}
	buf := buffer.Allocate(2)
	v := f.FromBuffer(buf)

	got, ok := v.ToBuffer()
	if !ok || got != buf {
		t.Fatalf("ToBuffer() = (%v, %v), want (%v, true)", got, ok, buf)
	}
}

func TestFromListRoundTrip(t *testing.T) {
	f := dynvalue.NativeFactory{}
	items := []dynvalue.DynValue{f.FromInt(1), f.FromInt(2)}
	v := f.FromList(items)

	got, ok := v.ToList()
	if !ok || len(got) != 2 {
		t.Fatalf("ToList() = (%v, %v)", got, ok)
	}
}

func TestTruthy(t *testing.T) {
	f := dynvalue.NativeFactory{}

	if f.FromInt(0).Truthy() {
		t.Errorf("0 should not be truthy")
	}
	if !f.FromInt(1).Truthy() {
		t.Errorf("1 should be truthy")
	}
	if f.Uninitialized().Truthy() {
		t.Errorf("uninitialized should not be truthy")
	}
	if !f.FromBuffer(buffer.Allocate(1)).Truthy() {
		t.Errorf("a buffer should be truthy")
	}
}

func TestStringRendering(t *testing.T) {
	f := dynvalue.NativeFactory{}
	if got := f.FromInt(7).String(); got != "7" {
		t.Errorf("String() = %q, want %q", got, "7")
	}
	if got := f.Uninitialized().String(); got != "uninitialized" {
		t.Errorf("String() = %q, want %q", got, "uninitialized")
	}
}
