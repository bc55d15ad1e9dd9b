package logger

import "context"

// noopLogger discards every entry. Tests use it wherever log output is noise.
type noopLogger struct{}

// NewNoopLogger returns a Logger that writes nothing.
func NewNoopLogger() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(context.Context, string, ...Fields)        {}
func (noopLogger) Info(context.Context, string, ...Fields)         {}
func (noopLogger) Warn(context.Context, string, ...Fields)         {}
func (noopLogger) Error(context.Context, string, error, ...Fields) {}
func (noopLogger) Fatal(context.Context, string, error, ...Fields) {}

// WithFields drops fields; there is nowhere to attach them.
func (l noopLogger) WithFields(Fields) Logger { return l }

// ForContext ignores any request-scoped logger in ctx so a discarded logger
// stays discarded.
func (l noopLogger) ForContext(context.Context) Logger { return l }
