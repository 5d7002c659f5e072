package mock

import (
	"go.uber.org/zap"
)

// Record adds a call of fn against instance to the Mock and returns the value the call should
// return. The call is matched to the next expectation for fn, which supplies the return value and
// any output data or saved arguments. Each expectation is matched at most once. If no expectation
// matches, Record returns 0 and the call is reported when the Mock is validated.
func (m *Mock) Record(fn Func, instance any, args ...Value) Value {
	call := &actualCall{
		fn:       fn,
		instance: instance,
		args:     make([]actualArg, len(args)),
	}
	for i, v := range args {
		call.args[i].value = v
	}

	m.called = append(m.called, call)

	fields := []zap.Field{
		zap.String("mock", m.name),
		zap.String("func", m.funcs.FuncName(fn)),
		zap.Int("call", len(m.called)-1),
	}

	match := -1
	for i := m.next; i < len(m.expected); i++ {
		if m.expected[i].fn == fn {
			match = i
			break
		}
	}

	if match < 0 {
		m.logger.Debug("no expectation for call", fields...)
		return 0
	}

	exp := m.expected[match]
	for i := range exp.args {
		if i >= len(call.args) {
			break
		}
		m.apply(fields, &exp.args[i], call, i)
	}

	m.next = match + 1

	m.logger.Debug("recorded call", append(fields, zap.Int("index", match))...)
	return exp.ret
}

// apply performs the side effects expected for argument i of call.
func (m *Mock) apply(fields []zap.Field, exp *Arg, call *actualCall, i int) {
	arg := &call.args[i]
	warn := func(msg string, extra ...zap.Field) {
		all := make([]zap.Field, 0, len(fields)+1+len(extra))
		all = append(append(append(all, fields...), zap.Int("arg", i)), extra...)
		m.logger.Warn(msg, all...)
	}

	if arg.value != 0 && exp.flags&flagPtrPtr != 0 {
		ptr, err := readPointer(m.memory, arg.value)
		if err != nil {
			warn("failed to dereference pointer argument", zap.Error(err))
		} else {
			arg.value = ptr
			arg.ptrPtr = true
		}
	}

	if exp.length != 0 && arg.value != 0 {
		contents, err := m.memory.Read(arg.value, exp.length)
		switch {
		case err != nil:
			warn("failed to capture pointer contents", zap.Error(err))
		case len(contents) < exp.length:
			warn("short read of pointer contents", zap.Int("length", exp.length), zap.Int("read", len(contents)))
		default:
			arg.contents = contents[:exp.length]
		}
	}

	if exp.out != nil && arg.value != 0 {
		out := exp.out
		if exp.sizeArg >= 0 && exp.sizeArg < len(call.args) {
			size := call.args[exp.sizeArg].value
			if size >= 0 && Value(len(out)) > size {
				out = out[:size]
			}
		}

		if err := m.memory.Write(arg.value, out); err != nil {
			warn("failed to write output argument", zap.Error(err))
		}
	}

	if exp.saveID >= 0 {
		if save := m.saves.find(exp.saveID); save != nil {
			save.store(arg.value)
		}
	}
}
