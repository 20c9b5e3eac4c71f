package log

import "os"

var root = &logger{[]interface{}{}, new(swapHandler)}

func init() {
	root.SetHandler(LvlFilterHandler(LvlInfo, NewTerminalHandler(os.Stderr)))
}

// Root returns the root logger.
func Root() Logger { return root }

// New returns a new logger with the given context.
// New is a convenient alias for Root().New.
func New(ctx ...interface{}) Logger { return root.New(ctx...) }

// The following functions bypass the exported logger methods (logger.Debug,
// etc.) to keep the call depth the same for all paths to logger.write so
// runtime.Caller(2) always refers to the call site in client code.

// Trace is a convenient alias for Root().Trace.
func Trace(msg string, ctx ...interface{}) { root.write(msg, LvlTrace, ctx) }

// Debug is a convenient alias for Root().Debug.
func Debug(msg string, ctx ...interface{}) { root.write(msg, LvlDebug, ctx) }

// Info is a convenient alias for Root().Info.
func Info(msg string, ctx ...interface{}) { root.write(msg, LvlInfo, ctx) }

// Warn is a convenient alias for Root().Warn.
func Warn(msg string, ctx ...interface{}) { root.write(msg, LvlWarn, ctx) }

// Error is a convenient alias for Root().Error.
func Error(msg string, ctx ...interface{}) { root.write(msg, LvlError, ctx) }

// Crit is a convenient alias for Root().Crit.
func Crit(msg string, ctx ...interface{}) {
	root.write(msg, LvlCrit, ctx)
	panic(msg)
}
