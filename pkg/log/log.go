package log

import (
	"context"
	"io"
	stdlog "log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// verbosity levels understood by GetLogger
const (
	Info = iota
	Debug
	Trace
)

// GetLogger returns a stdr.Logger writing to stderr that implements the
// logr.Logger interface and sets the verbosity of the returned logger.
// set v to 0 for info level messages,
// 1 for debug messages and 2 for trace level message.
// any other verbosity level will default to 0.
func GetLogger(v int) logr.Logger {
	return GetLoggerWithWriter(os.Stderr, v)
}

// GetLoggerWithWriter is GetLogger writing to w.
func GetLoggerWithWriter(w io.Writer, v int) logr.Logger {
	logger := stdr.New(stdlog.New(w, "", stdlog.LstdFlags)).WithName("derange")
	// bound check
	if v > Trace || v < Info {
		v = Info
		logger.Info("Invalid verbosity, setting logger to display info level messages only.")
	}
	stdr.SetVerbosity(v)

	return logger
}

// ContextWithLogger returns a context that has a logr.Logger contained inside,
// which can then be picked up by a session or a command.
func ContextWithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// GetLoggerFromContextWithName returns a logr.Logger if it was contained in the context
// otherwise, it returns a fresh logger with verbosity set to 0.
func GetLoggerFromContextWithName(ctx context.Context, name string) logr.Logger {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		logger = GetLogger(Info)
	}

	if name != "" {
		return logger.WithName(name)
	}
	return logger
}
