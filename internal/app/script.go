package app

import (
	"bytes"

	"github.com/dshills/mathkey/internal/plugin/lua"
)

// RunScript runs a Lua file against the session. The script's print output
// goes to the log at info level.
func (app *Application) RunScript(path string) error {
	settings := app.config.Settings()
	timeout, err := settings.ScriptTimeout()
	if err != nil {
		timeout = lua.DefaultTimeout
	}

	log := app.logger.WithComponent("script").WithField("file", path)
	state := lua.NewState(
		lua.WithTimeout(timeout),
		lua.WithOutput(&logWriter{log: log}),
	)
	defer state.Close()
	lua.Bind(state, app.engine)

	if err := state.DoFile(path); err != nil {
		return NewOperationError("script", path, err)
	}
	log.Debug("done: %s", app.engine)
	return nil
}

// logWriter turns each written line into a log entry.
type logWriter struct {
	log *Logger
	buf []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.log.Info("%s", w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
