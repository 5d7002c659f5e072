package mock

import (
	"go.uber.org/zap"
)

// DefaultName is the name used in diagnostics when none is configured.
const DefaultName = "mock"

// Config configures a Mock.
type Config struct {
	// Name identifies the mock in diagnostics. Defaults to DefaultName.
	Name string

	// Funcs describes the functions the mock can expect. Required.
	Funcs FuncMap

	// Memory backs pointer arguments. Defaults to a new Arena.
	Memory Memory

	// Logger receives debug output for declarations and recorded calls. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Mock holds the expected and actual calls against one mocked interface. It is not safe for
// concurrent use.
type Mock struct {
	name   string
	funcs  FuncMap
	memory Memory
	logger *zap.Logger

	expected []*expectation
	called   []*actualCall
	saves    *saveStore

	// next is the first expectation that recording has not yet passed.
	next int
}

// expectation is one declared call.
type expectation struct {
	fn       Func
	instance any
	ret      Value
	args     []Arg
}

// actualArg is one recorded argument value.
type actualArg struct {
	value    Value
	ptrPtr   bool
	contents []byte
}

// actualCall is one recorded call.
type actualCall struct {
	fn       Func
	instance any
	args     []actualArg
}

// Call is a recorded call exposed for inspection.
type Call struct {
	// Func is the function that was called.
	Func Func

	// Instance is the object the function was called against.
	Instance any

	// Args are the recorded argument values, after any pointer-to-pointer dereference.
	Args []Value
}

// New creates a Mock from the provided Config.
func New(cfg Config) (*Mock, error) {
	if cfg.Funcs == nil {
		return nil, ErrInvalidArgument
	}

	m := &Mock{
		name:   DefaultName,
		funcs:  cfg.Funcs,
		memory: cfg.Memory,
		logger: cfg.Logger,
		saves:  newSaveStore(),
	}

	if cfg.Name != "" {
		m.name = cfg.Name
	}

	if m.memory == nil {
		m.memory = NewArena()
	}

	if m.logger == nil {
		m.logger = zap.NewNop()
	}

	return m, nil
}

// SetName changes the name used in diagnostics. An empty name restores DefaultName.
func (m *Mock) SetName(name string) {
	if name == "" {
		name = DefaultName
	}
	m.name = name
}

// Name returns the name used in diagnostics.
func (m *Mock) Name() string { return m.name }

// Memory returns the Memory backing pointer arguments.
func (m *Mock) Memory() Memory { return m.memory }

// Calls returns a copy of the calls recorded so far.
func (m *Mock) Calls() []Call {
	calls := make([]Call, 0, len(m.called))
	for _, c := range m.called {
		args := make([]Value, len(c.args))
		for i, a := range c.args {
			args[i] = a.value
		}
		calls = append(calls, Call{Func: c.fn, Instance: c.instance, Args: args})
	}
	return calls
}

// Release discards all expectations, recorded calls, and saved arguments owned by the Mock so it
// can be reused. Slots this Mock shared into another Mock belong to that Mock and are kept there.
func (m *Mock) Release() {
	m.expected = nil
	m.called = nil
	m.saves = newSaveStore()
	m.next = 0
}
