package mock

import (
	"encoding/hex"
	"fmt"
)

// Value is a raw argument or return value. It holds either an integer or an address in the
// Memory of the Mock. The address 0 is NULL.
type Value int64

// Validator compares the expected contents of a pointer argument with the bytes captured when
// the call was recorded. A non-nil error is a mismatch and its text is reported by Validate.
type Validator func(expected, actual []byte) error

type argFlag uint8

const (
	flagAny argFlag = 1 << iota
	flagNotNull
	flagSaved
	flagPtrPtr
	flagAllocated
)

// Arg describes how one positional argument of an expected call is matched. The zero Arg expects
// the value 0.
type Arg struct {
	value    Value
	contents []byte
	length   int
	validate Validator
	flags    argFlag
	saveRef  int

	// Attached to the expectation after declaration.
	out     []byte
	sizeArg int
	saveID  int
}

// Any matches any value.
func Any() Arg {
	return Arg{flags: flagAny}
}

// NotNull matches any non-zero value.
func NotNull() Arg {
	return Arg{flags: flagNotNull}
}

// Eq matches exactly v.
func Eq(v Value) Arg {
	return Arg{value: v}
}

// SavedArg matches the value saved under id, in this Mock or shared into it.
func SavedArg(id int) Arg {
	return Arg{flags: flagSaved, saveRef: id}
}

// PtrContains matches a non-NULL pointer whose first len(expected) bytes equal expected. The
// expected slice is referenced, so it must not change before validation.
func PtrContains(expected []byte) Arg {
	return Arg{flags: flagNotNull, contents: expected, length: len(expected)}
}

// PtrContainsTmp is PtrContains with expected copied when the expectation is declared.
func PtrContainsTmp(expected []byte) Arg {
	a := PtrContains(expected)
	a.flags |= flagAllocated
	return a
}

// Validate matches a non-NULL pointer by passing len(expected) bytes of its contents to fn.
func Validate(fn Validator, expected []byte) Arg {
	a := PtrContains(expected)
	a.validate = fn
	return a
}

// ValidateTmp is Validate with expected copied when the expectation is declared.
func ValidateTmp(fn Validator, expected []byte) Arg {
	a := Validate(fn, expected)
	a.flags |= flagAllocated
	return a
}

// PtrPtr marks the argument as a pointer to a pointer. The recorded value is dereferenced once
// before it is matched.
func (a Arg) PtrPtr() Arg {
	a.flags |= flagPtrPtr
	return a
}

// declared returns the copy of a stored with an expectation.
func (a Arg) declared() Arg {
	if a.flags&flagAllocated != 0 && a.contents != nil {
		a.contents = append([]byte(nil), a.contents...)
	}
	a.out = nil
	a.sizeArg = -1
	a.saveID = -1
	return a
}

// String renders the expectation for an argument.
func (a Arg) String() string {
	prefix := ""
	if a.flags&flagPtrPtr != 0 {
		prefix = "*"
	}

	switch {
	case a.flags&flagAny != 0:
		return prefix + "ANY"
	case a.length > 0:
		return fmt.Sprintf("%sCONTAINS(%s)", prefix, hex.EncodeToString(a.contents))
	case a.flags&flagNotNull != 0:
		return prefix + "NOT_NULL"
	case a.flags&flagSaved != 0:
		return fmt.Sprintf("%sSAVED(%d)", prefix, a.saveRef)
	default:
		return prefix + hexValue(a.value)
	}
}
