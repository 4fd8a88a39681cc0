package fmc

// noopLogger discards everything.
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields map[string]interface{}) {}
func (noopLogger) Info(msg string, fields map[string]interface{})  {}
func (noopLogger) Warn(msg string, fields map[string]interface{})  {}
func (noopLogger) Error(msg string, fields map[string]interface{}) {}

// NoopLogger returns a Logger that discards all output. It is the default
// wherever no Logger is configured.
func NoopLogger() Logger {
	return noopLogger{}
}
