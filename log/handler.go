package log

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	floatFormat    = 'f'
	termMsgJust    = 40
)

// Handler defines where and how log records are written.
// Handlers are composable, providing you great flexibility in combining
// them to achieve the logging structure that suits your applications.
type Handler interface {
	Log(r *Record) error
}

// FuncHandler returns a Handler that logs records with the given function.
func FuncHandler(fn func(r *Record) error) Handler {
	return funcHandler(fn)
}

type funcHandler func(r *Record) error

func (h funcHandler) Log(r *Record) error { return h(r) }

// StreamHandler writes log records to an io.Writer with the given format.
// StreamHandler can be used to easily begin writing log records to other
// outputs. It wraps itself with LazyHandler and SyncHandler to evaluate
// lazily and protect concurrent writes.
func StreamHandler(wr io.Writer, fmtr Format) Handler {
	h := FuncHandler(func(r *Record) error {
		_, err := wr.Write(fmtr.Format(r))
		return err
	})
	return SyncHandler(h)
}

// SyncHandler can be wrapped around a handler to guarantee that only a
// single Log operation can proceed at a time.
func SyncHandler(h Handler) Handler {
	var mu sync.Mutex
	return FuncHandler(func(r *Record) error {
		mu.Lock()
		defer mu.Unlock()
		return h.Log(r)
	})
}

// LvlFilterHandler returns a Handler that only writes records which are
// less than the given verbosity level to the wrapped Handler.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if r.Lvl <= maxLvl {
			return h.Log(r)
		}
		return nil
	})
}

// DiscardHandler reports success for all writes but does nothing.
func DiscardHandler() Handler {
	return FuncHandler(func(r *Record) error { return nil })
}

// swapHandler wraps another handler that may be swapped out dynamically at
// runtime in a thread-safe fashion.
type swapHandler struct {
	handler atomic.Value
}

func (h *swapHandler) Log(r *Record) error {
	return (*h.handler.Load().(*Handler)).Log(r)
}

func (h *swapHandler) Swap(newHandler Handler) {
	h.handler.Store(&newHandler)
}

func (h *swapHandler) Get() Handler {
	return *h.handler.Load().(*Handler)
}

// Format is implemented by record serializers.
type Format interface {
	Format(r *Record) []byte
}

// FormatFunc returns a new Format object which uses the given function to
// perform record formatting.
func FormatFunc(f func(*Record) []byte) Format {
	return formatFunc(f)
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte { return f(r) }

// TerminalFormat formats log records optimized for human readability on a
// terminal with color-coded level output:
//
//	INFO [01-02|15:04:05.000] Name registered    namehash=0x1234… owner=0xabcd…
func TerminalFormat(usecolor bool) Format {
	return FormatFunc(func(r *Record) []byte {
		color := 0
		if usecolor {
			switch r.Lvl {
			case LvlCrit:
				color = 35
			case LvlError:
				color = 31
			case LvlWarn:
				color = 33
			case LvlInfo:
				color = 32
			case LvlDebug:
				color = 36
			case LvlTrace:
				color = 34
			}
		}

		b := &strings.Builder{}
		lvl := r.Lvl.AlignedString()
		if color > 0 {
			fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m[%s] %s ", color, lvl, r.Time.Format(termTimeFormat), r.Msg)
		} else {
			fmt.Fprintf(b, "%s[%s] %s ", lvl, r.Time.Format(termTimeFormat), r.Msg)
		}
		// Try to justify the log output for short messages.
		if len(r.Ctx) > 0 && len(r.Msg) < termMsgJust {
			b.WriteString(strings.Repeat(" ", termMsgJust-len(r.Msg)))
		}
		formatLogfmtPairs(b, r.Ctx, color)
		b.WriteByte('\n')
		return []byte(b.String())
	})
}

// LogfmtFormat prints records in logfmt format, an easy machine-parseable
// but human-readable format for key/value pairs.
func LogfmtFormat() Format {
	return FormatFunc(func(r *Record) []byte {
		shared := []interface{}{timeKey, r.Time, lvlKey, r.Lvl, msgKey, r.Msg}
		b := &strings.Builder{}
		formatLogfmtPairs(b, append(shared, r.Ctx...), 0)
		b.WriteByte('\n')
		return []byte(b.String())
	})
}

func formatLogfmtPairs(b *strings.Builder, ctx []interface{}, color int) {
	for i := 0; i < len(ctx); i += 2 {
		if i != 0 {
			b.WriteByte(' ')
		}
		k, ok := ctx[i].(string)
		v := formatLogfmtValue(ctx[i+1])
		if !ok {
			k, v = errorKey, formatLogfmtValue(k)
		}
		if color > 0 {
			fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m=%s", color, k, v)
		} else {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
}

func formatLogfmtValue(value interface{}) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case time.Time:
		return v.Format(timeFormat)
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), floatFormat, 3, 64)
	case float64:
		return strconv.FormatFloat(v, floatFormat, 3, 64)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", value)
	case error:
		return escapeString(v.Error())
	case fmt.Stringer:
		return escapeString(v.String())
	case string:
		return escapeString(v)
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Slice {
		return escapeString(fmt.Sprintf("%x", value))
	}
	return escapeString(fmt.Sprintf("%+v", value))
}

func escapeString(s string) string {
	needsQuoting := false
	for _, r := range s {
		// We quote everything below " (0x22) and above~ (0x7E) as well as
		// equal-sign and space.
		if r <= '"' || r > '~' || r == '=' {
			needsQuoting = true
			break
		}
	}
	if !needsQuoting {
		return s
	}
	return strconv.Quote(s)
}

// usecolor returns true when the writer is a color-capable terminal.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewTerminalHandler returns a handler writing colorized terminal output to
// w when w is a terminal, plain output otherwise.
func NewTerminalHandler(w io.Writer) Handler {
	if useColor(w) {
		if f, ok := w.(*os.File); ok {
			w = colorable.NewColorable(f)
		}
		return StreamHandler(w, TerminalFormat(true))
	}
	return StreamHandler(w, TerminalFormat(false))
}
