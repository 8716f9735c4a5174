package dynvalue

import (
	"fmt"

	"github.com/regionc/regionc/runtime/buffer"
)

// native is the default, in-process DynValue implementation. It lets
// generated code and its tests run without a real host scripting runtime
// attached: exactly one of its fields is meaningful at a time, mirroring
// a tagged-union dynamic value without needing a separate tag field since
// the zero values of the unused fields never collide with a legitimate
// "is-set" check here (isInt/isBuffer/isList/isString below do that job
// instead).
type native struct {
	intVal   int32
	isInt    bool
	bufVal   *buffer.Buffer
	isBuffer bool
	listVal  []DynValue
	isList   bool
	strVal   string
	isString bool
	uninit   bool
}

func (v *native) ToInt() (int32, bool) {
	return v.intVal, v.isInt
}

func (v *native) ToBuffer() (*buffer.Buffer, bool) {
	return v.bufVal, v.isBuffer
}

func (v *native) ToList() ([]DynValue, bool) {
	return v.listVal, v.isList
}

func (v *native) ToString() (string, bool) {
	return v.strVal, v.isString
}

// Truthy treats an int as truthy iff nonzero, a string iff non-empty, a
// buffer/list as always truthy once they exist, and uninitialized as never
// truthy — the
// region language has no boolean literal syntax beyond the int/comparison
// results the optimizer already reduces to 0/1.
func (v *native) Truthy() bool {
	switch {
	case v.uninit:
		return false
	case v.isInt:
		return v.intVal != 0
	case v.isBuffer:
		return v.bufVal != nil
	case v.isList:
		return true
	case v.isString:
		return v.strVal != ""
	default:
		return false
	}
}

func (v *native) String() string {
	switch {
	case v.uninit:
		return "uninitialized"
	case v.isInt:
		return fmt.Sprintf("%d", v.intVal)
	case v.isBuffer:
		return v.bufVal.String()
	case v.isList:
		return fmt.Sprintf("%v", v.listVal)
	case v.isString:
		return v.strVal
	default:
		return "<invalid>"
	}
}

// NativeFactory is the Factory implementation backing native. The
// builtins package mints its results with it directly; generated code
// goes through the Factory its host.Host supplies.
type NativeFactory struct{}

func (NativeFactory) FromInt(n int32) DynValue { return &native{intVal: n, isInt: true} }

func (NativeFactory) FromBuffer(b *buffer.Buffer) DynValue {
	return &native{bufVal: b, isBuffer: true}
}

func (NativeFactory) FromList(items []DynValue) DynValue {
	return &native{listVal: items, isList: true}
}

func (NativeFactory) FromString(s string) DynValue {
	return &native{strVal: s, isString: true}
}

func (NativeFactory) Uninitialized() DynValue { return &native{uninit: true} }
