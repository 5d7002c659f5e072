package mock

import (
	"fmt"
	"reflect"
	"strings"
)

// Validate checks the recorded calls against the expected calls and returns every mismatch.
//
// Both sequences are walked from the start. When the next recorded call is for a different
// function than the next expectation, the expectations are searched ahead for that function; the
// expectations passed over are reported as not called. If no later expectation is for that
// function, the call is reported as unexpected and skipped.
func (m *Mock) Validate() *Report {
	r := &Report{Name: m.name}

	if len(m.expected) != len(m.called) {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Mock:  m.name,
			Kind:  KindCallCount,
			Index: -1,
			Message: fmt.Sprintf(
				"Unexpected number of function calls: expected=%d, actual=%d",
				len(m.expected),
				len(m.called),
			),
		})
	}

	e, c, current := 0, 0, 0
	for e < len(m.expected) || c < len(m.called) {
		switch {
		case c >= len(m.called):
			m.notCalled(r, current, m.expected[e])
			current++
			e++

		case e >= len(m.expected):
			m.unexpected(r, "after", current, m.called[c])
			c++

		default:
			call := m.called[c]
			if m.expected[e].fn != call.fn {
				found := -1
				for s := e + 1; s < len(m.expected); s++ {
					if m.expected[s].fn == call.fn {
						found = s
						break
					}
				}

				if found < 0 {
					m.unexpected(r, "before", current, call)
					c++
					continue
				}

				for ; e < found; e++ {
					m.notCalled(r, current, m.expected[e])
					current++
				}
			}

			m.compare(r, current, m.expected[e], call)
			current++
			e++
			c++
		}
	}

	return r
}

func (m *Mock) notCalled(r *Report, index int, exp *expectation) {
	args := make([]string, len(exp.args))
	for i, a := range exp.args {
		args[i] = a.String()
	}

	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Mock:    m.name,
		Kind:    KindNotCalled,
		Index:   index,
		Message: "Not called: " + m.formatCall(exp.fn, exp.instance, args),
	})
}

func (m *Mock) unexpected(r *Report, position string, index int, call *actualCall) {
	args := make([]string, len(call.args))
	for i, a := range call.args {
		args[i] = hexValue(a.value)
	}

	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Mock:     m.name,
		Kind:     KindUnexpectedCall,
		Index:    index,
		Position: position,
		Message:  "Unexpected call: " + m.formatCall(call.fn, call.instance, args),
	})
}

func (m *Mock) formatCall(fn Func, instance any, args []string) string {
	var b strings.Builder
	b.WriteString(m.funcs.FuncName(fn))
	b.WriteString(" (")
	b.WriteString(formatInstance(instance))
	for _, a := range args {
		b.WriteString(", ")
		b.WriteString(a)
	}
	b.WriteString(")")
	return b.String()
}

// compare checks one recorded call against the expectation it was paired with.
func (m *Mock) compare(r *Report, index int, exp *expectation, call *actualCall) {
	if !sameInstance(exp.instance, call.instance) {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Mock:  m.name,
			Kind:  KindInstance,
			Index: index,
			Message: fmt.Sprintf(
				"Unexpected object instance: expected=%s, actual=%s",
				formatInstance(exp.instance),
				formatInstance(call.instance),
			),
		})
	}

	if len(exp.args) != len(call.args) {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Mock:  m.name,
			Kind:  KindArgCount,
			Index: index,
			Message: fmt.Sprintf(
				"Unexpected number of arguments: expected=%d, actual=%d",
				len(exp.args),
				len(call.args),
			),
		})
		return
	}

	for i := range exp.args {
		m.compareArg(r, index, m.funcs.ArgName(exp.fn, i), &exp.args[i], &call.args[i])
	}
}

func (m *Mock) compareArg(r *Report, index int, name string, exp *Arg, act *actualArg) {
	fail := func(kind Kind, format string, args ...any) {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Mock:    m.name,
			Kind:    kind,
			Index:   index,
			Message: fmt.Sprintf(format, args...),
		})
	}

	switch {
	case exp.flags&flagAny != 0:

	case exp.flags&flagNotNull != 0:
		if act.value == 0 {
			if exp.flags&flagPtrPtr == 0 || act.ptrPtr {
				fail(KindNullArgument, "Unexpected NULL argument: name=%s", name)
			} else {
				fail(KindNullPointer, "Unexpected NULL pointer to pointer: name=%s", name)
			}
		}

		if exp.length != 0 {
			m.compareContents(r, index, name, exp, act)
		}

	case exp.flags&flagSaved != 0:
		save := m.saves.find(exp.saveRef)
		switch {
		case save == nil:
			fail(KindSavedUnknown, "Unknown saved argument ID: id=%d", exp.saveRef)
		case !save.saved:
			fail(KindSavedUnset, "Argument ID %d value not saved.", exp.saveRef)
		case save.value != act.value:
			fail(KindSavedValue, "Unexpected saved argument: id=%d, name=%s, expected=%s, actual=%s",
				exp.saveRef, name, hexValue(save.value), hexValue(act.value))
		}

	case exp.value != act.value:
		fail(KindArgument, "Unexpected argument: name=%s, expected=%s, actual=%s",
			name, hexValue(exp.value), hexValue(act.value))
	}
}

func (m *Mock) compareContents(r *Report, index int, name string, exp *Arg, act *actualArg) {
	if len(act.contents) < exp.length {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Mock:    m.name,
			Kind:    KindNoContents,
			Index:   index,
			Message: "No pointer contents to validate: name=" + name,
		})
		return
	}

	mismatch := func(msg string) {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Mock:    m.name,
			Kind:    KindContents,
			Index:   index,
			Arg:     name,
			Message: msg,
		})
	}

	if exp.validate != nil {
		if err := exp.validate(exp.contents, act.contents); err != nil {
			mismatch(err.Error())
		}
		return
	}

	for i := 0; i < exp.length; i++ {
		if exp.contents[i] != act.contents[i] {
			mismatch(fmt.Sprintf("Byte %d: expected=0x%02x, actual=0x%02x", i, exp.contents[i], act.contents[i]))
		}
	}
}

// sameInstance compares object instances by identity. Instances of types that cannot be compared
// never match.
func sameInstance(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

func formatInstance(instance any) string {
	if instance == nil {
		return "<nil>"
	}

	switch reflect.ValueOf(instance).Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		return fmt.Sprintf("%p", instance)
	default:
		return fmt.Sprintf("%v", instance)
	}
}

func hexValue(v Value) string {
	if v < 0 {
		return fmt.Sprintf("-0x%x", -v)
	}
	return fmt.Sprintf("0x%x", v)
}
