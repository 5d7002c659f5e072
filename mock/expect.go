package mock

import (
	"fmt"

	"go.uber.org/zap"
)

// Expect adds an expected call of fn against instance that returns ret. There must be exactly one
// Arg for every argument fn takes.
func (m *Mock) Expect(fn Func, instance any, ret Value, args ...Arg) error {
	count := m.funcs.ArgCount(fn)
	if count < 0 {
		return fmt.Errorf("%w: unknown function %d", ErrInvalidArgument, int(fn))
	}

	if len(args) != count {
		return fmt.Errorf(
			"%w: %s takes %d arguments, got %d",
			ErrInvalidArgument,
			m.funcs.FuncName(fn),
			count,
			len(args),
		)
	}

	exp := &expectation{
		fn:       fn,
		instance: instance,
		ret:      ret,
		args:     make([]Arg, count),
	}
	for i, a := range args {
		exp.args[i] = a.declared()
	}

	m.expected = append(m.expected, exp)

	m.logger.Debug("expected call",
		zap.String("mock", m.name),
		zap.String("func", m.funcs.FuncName(fn)),
		zap.Int("index", len(m.expected)-1),
	)

	return nil
}

// last returns the most recently declared expectation.
func (m *Mock) last() (*expectation, error) {
	if len(m.expected) == 0 {
		return nil, ErrNoExpectation
	}
	return m.expected[len(m.expected)-1], nil
}

// ExpectOutput makes argument arg of the last expectation an output parameter. When the call is
// recorded, out is written to the memory the argument points to. If lengthArg is negative, all of
// out is written; otherwise no more bytes are written than the value of argument lengthArg.
//
// out is referenced and must not change until the call is recorded.
func (m *Mock) ExpectOutput(arg int, out []byte, lengthArg int) error {
	return m.expectOutput(arg, out, lengthArg, false)
}

// ExpectOutputTmp is ExpectOutput with out copied immediately.
func (m *Mock) ExpectOutputTmp(arg int, out []byte, lengthArg int) error {
	return m.expectOutput(arg, out, lengthArg, true)
}

func (m *Mock) expectOutput(arg int, out []byte, lengthArg int, tmp bool) error {
	if out == nil || arg < 0 {
		return ErrInvalidArgument
	}

	exp, err := m.last()
	if err != nil {
		return err
	}

	if arg >= len(exp.args) || lengthArg >= len(exp.args) {
		return fmt.Errorf(
			"%w: %s has %d arguments",
			ErrBadArgIndex,
			m.funcs.FuncName(exp.fn),
			len(exp.args),
		)
	}

	if tmp {
		out = append([]byte{}, out...)
	}

	if lengthArg < 0 {
		lengthArg = -1
	}

	exp.args[arg].out = out
	exp.args[arg].sizeArg = lengthArg
	return nil
}

// ExpectSaveArg saves the value of argument arg of the last expectation under id when the call is
// recorded. Later expectations can match the value with SavedArg(id).
func (m *Mock) ExpectSaveArg(arg int, id int) error {
	if arg < 0 || id < 0 {
		return ErrInvalidArgument
	}

	exp, err := m.last()
	if err != nil {
		return err
	}

	if arg >= len(exp.args) {
		return fmt.Errorf(
			"%w: %s has %d arguments",
			ErrBadArgIndex,
			m.funcs.FuncName(exp.fn),
			len(exp.args),
		)
	}

	if _, err := m.saves.add(id); err != nil {
		return fmt.Errorf("%w: id=%d", err, id)
	}

	exp.args[arg].saveID = id
	return nil
}

// NextSaveID returns an ID not yet used for a saved argument in this Mock.
func (m *Mock) NextSaveID() int {
	return m.saves.nextID
}

// ShareSaveArg makes the argument saved under srcID also get saved in to under destID. The value
// is saved in both mocks when the call that saves it is recorded against m, and can then be
// matched independently in each.
func (m *Mock) ShareSaveArg(srcID int, to *Mock, destID int) error {
	if to == nil || srcID < 0 || destID < 0 {
		return ErrInvalidArgument
	}

	src := m.saves.find(srcID)
	if src == nil {
		return fmt.Errorf("%w: id=%d", ErrNoSaveArg, srcID)
	}

	dest, err := to.saves.add(destID)
	if err != nil {
		return fmt.Errorf("%w: id=%d in %s", err, destID, to.name)
	}

	src.shared = append(src.shared, dest)
	if src.saved {
		dest.store(src.value)
	}
	return nil
}
