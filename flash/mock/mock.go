package mock

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/neerajladkani/Project-Cerberus/flash"
	engine "github.com/neerajladkani/Project-Cerberus/mock"
	"go.uber.org/zap"
)

// Functions of the flash.Flash interface known to the engine.
const (
	FuncDeviceSize engine.Func = iota
	FuncRead
	FuncWrite
	FuncSectorErase
)

// Funcs describes the flash.Flash interface to the engine.
var Funcs = engine.Table{
	FuncDeviceSize:  {Name: "device_size", Args: []string{"bytes"}},
	FuncRead:        {Name: "read", Args: []string{"address", "data", "length"}},
	FuncWrite:       {Name: "write", Args: []string{"address", "data", "length"}},
	FuncSectorErase: {Name: "sector_erase", Args: []string{"address"}},
}

// ErrStatus wraps a failure status returned by an expectation.
var ErrStatus = errors.New("flash mock returned failure status")

// Config controls construction of a Mock.
type Config struct {
	// Name identifies the mock in diagnostics.
	Name string

	// Logger receives engine debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Mock implements flash.Flash by recording every call with the embedded engine, which is also used
// to declare expectations and validate them.
type Mock struct {
	*engine.Mock

	arena *engine.Arena
}

// Ensure Mock satisfies the flash.Flash interface at compile time.
var _ flash.Flash = (*Mock)(nil)

// New creates a new flash Mock.
func New(cfg Config) (*Mock, error) {
	arena := engine.NewArena()

	m, err := engine.New(engine.Config{
		Name:   cfg.Name,
		Funcs:  Funcs,
		Memory: arena,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Mock{Mock: m, arena: arena}, nil
}

// Uint32 encodes v the way DeviceSize expects its output data.
func Uint32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

// mapBuffer maps data into the arena. A nil buffer is passed to the engine as NULL.
func (m *Mock) mapBuffer(data []byte) engine.Value {
	if data == nil {
		return 0
	}
	return m.arena.AllocBytes(data)
}

// unmapBuffer copies the arena contents at addr back into data.
func (m *Mock) unmapBuffer(addr engine.Value, data []byte) {
	if addr == 0 {
		return
	}

	b, err := m.arena.Bytes(addr)
	if err != nil {
		return
	}
	copy(data, b)
}

func status(fn engine.Func, ret engine.Value) error {
	if ret == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s returned %d", ErrStatus, Funcs.FuncName(fn), ret)
}

// DeviceSize implements flash.Flash.
func (m *Mock) DeviceSize() (uint32, error) {
	out := make([]byte, 4)
	addr := m.mapBuffer(out)

	ret := m.Record(FuncDeviceSize, m, addr)
	if err := status(FuncDeviceSize, ret); err != nil {
		return 0, err
	}

	m.unmapBuffer(addr, out)
	return binary.LittleEndian.Uint32(out), nil
}

// Read implements flash.Flash.
func (m *Mock) Read(address uint32, data []byte) error {
	addr := m.mapBuffer(data)

	ret := m.Record(FuncRead, m, engine.Value(address), addr, engine.Value(len(data)))
	if err := status(FuncRead, ret); err != nil {
		return err
	}

	m.unmapBuffer(addr, data)
	return nil
}

// Write implements flash.Flash.
func (m *Mock) Write(address uint32, data []byte) (int, error) {
	addr := m.mapBuffer(data)

	ret := m.Record(FuncWrite, m, engine.Value(address), addr, engine.Value(len(data)))
	if ret < 0 {
		return 0, status(FuncWrite, ret)
	}
	return int(ret), nil
}

// SectorErase implements flash.Flash.
func (m *Mock) SectorErase(address uint32) error {
	return status(FuncSectorErase, m.Record(FuncSectorErase, m, engine.Value(address)))
}
