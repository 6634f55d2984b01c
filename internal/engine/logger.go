package engine

// Logger is the logging surface the engine needs. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

func (nopLogger) Warn(string, ...any) {}
