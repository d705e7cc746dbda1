// Package logging configures the application-wide file logger.
//
// b9s owns the terminal, so nothing may write to stdout/stderr while the
// UI is running. All diagnostics go to the state-dir log file instead.
package logging

import (
	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger is the minimal logging surface the rest of the app depends on.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Log is the global logger instance. Until Init wires the file handler it
// logs to the console, which is only acceptable before the UI starts.
var Log Logger = slog.Std()

// Init points the global logger at the given file with the given level.
// Unparseable levels fall back to info.
func Init(logFile, level string) error {
	lv := slog.LevelByName(level)
	if lv == 0 {
		lv = slog.InfoLevel
	}

	var levels []slog.Level
	for _, l := range slog.AllLevels {
		if l <= lv {
			levels = append(levels, l)
		}
	}

	h, err := handler.NewFileHandler(logFile, handler.WithLogLevels(levels))
	if err != nil {
		return err
	}

	f := slog.NewTextFormatter()
	f.TimeFormat = "2006-01-02T15:04:05.000"
	h.SetFormatter(f)

	Log = slog.NewWithHandlers(h)
	return nil
}
