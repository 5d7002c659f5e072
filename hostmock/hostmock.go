package hostmock

import (
	"errors"
	"fmt"

	cerberus "github.com/neerajladkani/Project-Cerberus"
	engine "github.com/neerajladkani/Project-Cerberus/mock"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

// DefaultResponseCapacity is the size of the response buffer offered to the host when none is
// configured.
const DefaultResponseCapacity = 4096

// Arguments recorded for every host call.
const (
	ArgPayload = iota
	ArgPayloadLen
	ArgResponse
	ArgResponseCap
)

var hostCallArgs = []string{"payload", "payload_len", "response", "response_cap"}

var (
	// ErrUnexpectedNamespace is returned when the namespace is not as expected.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrOperationFailed is returned for a declared failure without a custom error.
	ErrOperationFailed = errors.New("operation failed")
)

// Config represents the configuration for creating a Mock instance.
type Config struct {
	// SDKConfig supplies the namespace expected in every host call.
	SDKConfig cerberus.RuntimeConfig

	// Name identifies the mock in diagnostics. Defaults to "hostmock".
	Name string

	// ResponseCapacity is the size of the response buffer offered to the host. Responses longer
	// than this are truncated. Defaults to DefaultResponseCapacity.
	ResponseCapacity int

	// Logger receives engine debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// routes interns capability:function pairs as engine functions. It is shared with the engine by
// pointer so routes added after construction are visible to it.
type routes struct {
	table engine.Table
	ids   map[string]engine.Func
}

func (r *routes) ArgCount(fn engine.Func) int          { return r.table.ArgCount(fn) }
func (r *routes) FuncName(fn engine.Func) string       { return r.table.FuncName(fn) }
func (r *routes) ArgName(fn engine.Func, i int) string { return r.table.ArgName(fn, i) }

func (r *routes) intern(capability, function string) engine.Func {
	name := capability + ":" + function
	if fn, ok := r.ids[name]; ok {
		return fn
	}

	fn := r.table.Add(engine.Signature{Name: name, Args: hostCallArgs})
	r.ids[name] = fn
	return fn
}

// Mock simulates the waPC host. Every host call is recorded by an engine Mock and answered from
// the expectations declared with Expect and ExpectFailure.
type Mock struct {
	engine *engine.Mock
	arena  *engine.Arena
	routes *routes

	namespace string
	capacity  int

	// failures maps declared failure statuses to the error HostCall returns.
	failures map[engine.Value]error
}

// New creates a new instance of the Mock based on the provided Config.
func New(config Config) (*Mock, error) {
	if config.ResponseCapacity < 0 {
		return nil, fmt.Errorf("%w: response capacity %d", engine.ErrInvalidArgument, config.ResponseCapacity)
	}

	name := config.Name
	if name == "" {
		name = "hostmock"
	}

	capacity := config.ResponseCapacity
	if capacity == 0 {
		capacity = DefaultResponseCapacity
	}

	r := &routes{ids: make(map[string]engine.Func)}
	arena := engine.NewArena()

	e, err := engine.New(engine.Config{
		Name:   name,
		Funcs:  r,
		Memory: arena,
		Logger: config.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Mock{
		engine:    e,
		arena:     arena,
		routes:    r,
		namespace: config.SDKConfig.WithDefaults().Namespace,
		capacity:  capacity,
		failures:  make(map[engine.Value]error),
	}, nil
}

// Engine returns the engine Mock backing the host, for declaring saved arguments or sharing them
// with other doubles.
func (m *Mock) Engine() *engine.Mock { return m.engine }

// Route returns the engine function for a capability and function pair.
func (m *Mock) Route(capability, function string) engine.Func {
	return m.routes.intern(capability, function)
}

// Expect declares the next host call to capability:function. payload matches the request bytes
// and response is returned to the caller, truncated to the response capacity.
func (m *Mock) Expect(capability, function string, payload engine.Arg, response []byte) error {
	fn := m.Route(capability, function)

	size := len(response)
	if size > m.capacity {
		size = m.capacity
	}

	err := m.engine.Expect(fn, m, engine.Value(size),
		payload, engine.Any(), engine.NotNull(), engine.Eq(engine.Value(m.capacity)))
	if err != nil {
		return err
	}

	if len(response) == 0 {
		return nil
	}
	return m.engine.ExpectOutputTmp(ArgResponse, response, ArgResponseCap)
}

// ExpectFailure declares the next host call to capability:function as failing with err, or with
// ErrOperationFailed if err is nil.
func (m *Mock) ExpectFailure(capability, function string, payload engine.Arg, err error) error {
	if err == nil {
		err = ErrOperationFailed
	}

	status := engine.Value(-(len(m.failures) + 1))
	if e := m.engine.Expect(m.Route(capability, function), m, status,
		payload, engine.Any(), engine.NotNull(), engine.Eq(engine.Value(m.capacity))); e != nil {
		return e
	}

	m.failures[status] = err
	return nil
}

// HostCall records a host call and returns the declared response or error. It matches the
// signature of wapc.HostCall.
func (m *Mock) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	if namespace != m.namespace {
		return nil, fmt.Errorf(
			"%w: expected namespace %s, got %s",
			ErrUnexpectedNamespace,
			m.namespace,
			namespace,
		)
	}

	// The payload is always mapped, even when empty, since the host never sees a NULL payload.
	payloadAddr := m.arena.AllocBytes(payload)
	responseAddr := m.arena.Alloc(m.capacity)

	ret := m.engine.Record(m.Route(capability, function), m,
		payloadAddr, engine.Value(len(payload)), responseAddr, engine.Value(m.capacity))

	if ret < 0 {
		if err, ok := m.failures[ret]; ok {
			return nil, err
		}
		return nil, fmt.Errorf("%w: status %d", ErrOperationFailed, ret)
	}

	if ret == 0 {
		return nil, nil
	}

	b, err := m.arena.Bytes(responseAddr)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b[:ret]...), nil
}

// Validate checks the recorded host calls against the declared ones.
func (m *Mock) Validate() *engine.Report { return m.engine.Validate() }

// Calls returns the host calls recorded so far.
func (m *Mock) Calls() []engine.Call { return m.engine.Calls() }

// Release discards all declared and recorded host calls so the Mock can be reused.
func (m *Mock) Release() {
	m.engine.Release()
	m.failures = make(map[engine.Value]error)
}

// Payload matches a request payload byte for byte.
func Payload(data []byte) engine.Arg {
	return engine.PtrContainsTmp(data)
}

// ProtoPayload matches a request payload that decodes to a message equal to msg.
func ProtoPayload(msg proto.Message) engine.Arg {
	expected, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		// An unmarshalable message can never match. Report that instead of the payload.
		return engine.ValidateTmp(func(_, _ []byte) error {
			return fmt.Errorf("cannot marshal expected payload: %w", err)
		}, []byte{0})
	}

	return engine.ValidateTmp(func(_, actual []byte) error {
		got := msg.ProtoReflect().New().Interface()
		if err := proto.Unmarshal(actual, got); err != nil {
			return fmt.Errorf("payload is not a %s: %w", msg.ProtoReflect().Descriptor().FullName(), err)
		}
		if !proto.Equal(msg, got) {
			return fmt.Errorf("payload mismatch: expected={%v}, actual={%v}", msg, got)
		}
		return nil
	}, expected)
}
