package logging

import (
	"bytes"
	"fmt"

	cerberus "github.com/neerajladkani/Project-Cerberus"
	wapc "github.com/wapc/wapc-guest-tinygo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Capability is the host capability that receives log entries.
const Capability = "logging"

// Config controls how log entries are sent to the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig cerberus.RuntimeConfig

	// HostCall overrides the waPC host function used for logging operations.
	HostCall func(string, string, string, []byte) ([]byte, error)

	// Level is the minimum level sent to the host. Defaults to zapcore.DebugLevel.
	Level zapcore.LevelEnabler

	// Encoder renders each entry into the host call payload. Defaults to a JSON encoder that
	// omits the level and time, which the host records itself.
	Encoder zapcore.Encoder
}

// core is a zapcore.Core that sends every entry to the host logging capability.
type core struct {
	zapcore.LevelEnabler

	enc      zapcore.Encoder
	runtime  cerberus.RuntimeConfig
	hostCall func(string, string, string, []byte) ([]byte, error)
}

// NewCore creates a zapcore.Core that emits entries through the configured host capability.
func NewCore(cfg Config) (zapcore.Core, error) {
	c := &core{
		LevelEnabler: cfg.Level,
		enc:          cfg.Encoder,
		runtime:      cfg.SDKConfig.WithDefaults(),
		hostCall:     cfg.HostCall,
	}

	if c.LevelEnabler == nil {
		c.LevelEnabler = zapcore.DebugLevel
	}

	if c.enc == nil {
		c.enc = zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			MessageKey: "msg",
			NameKey:    "logger",
			LineEnding: zapcore.DefaultLineEnding,
		})
	}

	if c.hostCall == nil {
		c.hostCall = wapc.HostCall
	}

	return c, nil
}

// New creates a zap.Logger backed by NewCore.
func New(cfg Config, opts ...zap.Option) (*zap.Logger, error) {
	c, err := NewCore(cfg)
	if err != nil {
		return nil, err
	}
	return zap.New(c, opts...), nil
}

// function returns the host function for a level. Levels above error are sent as errors.
func function(level zapcore.Level) string {
	switch {
	case level <= zapcore.DebugLevel:
		return "Debug"
	case level == zapcore.InfoLevel:
		return "Info"
	case level == zapcore.WarnLevel:
		return "Warn"
	default:
		return "Error"
	}
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.enc = c.enc.Clone()
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return &clone
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return fmt.Errorf("failed to encode log entry: %w", err)
	}
	defer buf.Free()

	payload := append([]byte(nil), bytes.TrimRight(buf.Bytes(), "\n")...)
	if _, err := c.hostCall(c.runtime.Namespace, Capability, function(ent.Level), payload); err != nil {
		return fmt.Errorf("%w: %w", cerberus.ErrHostCall, err)
	}
	return nil
}

func (c *core) Sync() error { return nil }
