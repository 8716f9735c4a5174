// Package builtins implements the hard-coded builtin functions and
// built-in-type method dispatch spec.md §4.4 names: the host-handle-
// prepended calls (allocate, free, blackbox), the no-host-handle call
// (append), and the Buffer type's built-in methods (free, borrow,
// borrow_mut) that a MethodCall dispatches to directly instead of
// through the generic dynamic-value method call path.
package builtins

import (
	"github.com/regionc/regionc/runtime/buffer"
	"github.com/regionc/regionc/runtime/dynvalue"
	"github.com/regionc/regionc/runtime/host"
)

// HostFunctions lists the builtin functions the code generator prepends
// the host handle to when emitting a call. Checked by name at codegen
// time; kept here too so the emitted call sites and this implementation
// can't silently drift apart.
var HostFunctions = map[string]bool{
	"allocate": true,
	"free":     true,
	"blackbox": true,
}

// NoHostFunctions lists the builtin functions called without a
// host-handle argument.
var NoHostFunctions = map[string]bool{
	"append": true,
}

// Allocate implements allocate(n): a new zeroed Buffer of n bytes.
func Allocate(h host.Host, n dynvalue.DynValue) dynvalue.DynValue {
	size := dynvalue.MustInt(n)
	return h.Factory().FromBuffer(buffer.Allocate(int(size)))
}

// Free implements free(buffer) as a bare builtin call (as opposed to the
// buf.free() method-call form, which BufferFree below serves).
func Free(h host.Host, v dynvalue.DynValue) dynvalue.DynValue {
	dynvalue.MustBuffer(v).Free()
	return h.Factory().Uninitialized()
}

// Blackbox is the identity hook: the optimizer's contract is that a call
// to it is never folded away or removed, so it always reaches here at
// runtime and its argument is always evaluated.
func Blackbox(_ host.Host, v dynvalue.DynValue) dynvalue.DynValue {
	return v
}

// Append implements the no-host-handle append(list, item) builtin,
// returning a new list with item appended; the source list is untouched.
func Append(list, item dynvalue.DynValue) dynvalue.DynValue {
	items, ok := list.ToList()
	if !ok {
		panic("append: first argument is not a list")
	}
	out := make([]dynvalue.DynValue, len(items)+1)
	copy(out, items)
	out[len(items)] = item
	return dynvalue.NativeFactory{}.FromList(out)
}

// BufferMethods lists the Buffer type's built-in methods: a MethodCall
// naming one of these dispatches directly to the Buffer receiver instead
// of through DynamicMethodCall.
var BufferMethods = map[string]bool{
	"free":       true,
	"borrow":     true,
	"borrow_mut": true,
}

// BufferFree implements the buf.free() method-call form.
func BufferFree(obj dynvalue.DynValue) dynvalue.DynValue {
	dynvalue.MustBuffer(obj).Free()
	return dynvalue.NativeFactory{}.Uninitialized()
}

// BufferBorrow implements buf.borrow(size, index), returning a list of
// the borrowed bytes as ints.
func BufferBorrow(obj dynvalue.DynValue, size, index int32) dynvalue.DynValue {
	data := dynvalue.MustBuffer(obj).Borrow(int(size), int(index))
	return wrapBytes(data)
}

// BufferBorrowMut implements buf.borrow_mut(size, index).
func BufferBorrowMut(obj dynvalue.DynValue, size, index int32) dynvalue.DynValue {
	data := dynvalue.MustBuffer(obj).BorrowMut(int(size), int(index))
	return wrapBytes(data)
}

func wrapBytes(data []byte) dynvalue.DynValue {
	items := make([]dynvalue.DynValue, len(data))
	for i, b := range data {
		items[i] = dynvalue.NativeFactory{}.FromInt(int32(b))
	}
	return dynvalue.NativeFactory{}.FromList(items)
}

// DynamicMethodCall dispatches a MethodCall whose method name isn't one
// of Buffer's built-in methods — the code generator's fallback case,
// spec.md §4.4's "emit a dynamic method call on the dynamic value".
func DynamicMethodCall(obj dynvalue.DynValue, method string, args []dynvalue.DynValue) dynvalue.DynValue {
	switch method {
	case "append":
		if len(args) != 1 {
			panic("append: expected exactly one argument")
		}
		return Append(obj, args[0])
	default:
		panic("no such method: " + method)
	}
}
