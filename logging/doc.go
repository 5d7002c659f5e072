/*
Package logging sends zap log entries from WebAssembly guest code to the host runtime.

NewCore returns a zapcore.Core that encodes each entry and forwards it to the host logging
capability, using the level name (Debug, Info, Warn, Error) as the host function. New wraps the
core in a zap.Logger, so guest code logs with the same API it uses everywhere else:

	logger, _ := logging.New(logging.Config{})
	logger.Info("stored key", zap.String("key", "a"))
*/
package logging
