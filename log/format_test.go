package log

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogfmtFormatQuoting(t *testing.T) {
	r := &Record{
		Time: time.Unix(0, 0).UTC(),
		Lvl:  LvlInfo,
		Msg:  "hello world",
		Ctx:  []interface{}{"key", "value with spaces", "n", 42},
	}
	out := string(LogfmtFormat().Format(r))
	if !strings.Contains(out, `msg="hello world"`) {
		t.Fatalf("message not quoted: %s", out)
	}
	if !strings.Contains(out, `key="value with spaces"`) {
		t.Fatalf("spaced value not quoted: %s", out)
	}
	if !strings.Contains(out, "n=42") {
		t.Fatalf("integer value mangled: %s", out)
	}
}

func TestFormatLogfmtValueKinds(t *testing.T) {
	if got := formatLogfmtValue(nil); got != "nil" {
		t.Fatalf("nil: %s", got)
	}
	if got := formatLogfmtValue(errors.New("boom")); got != "boom" {
		t.Fatalf("error: %s", got)
	}
	if got := formatLogfmtValue(true); got != "true" {
		t.Fatalf("bool: %s", got)
	}
	if got := formatLogfmtValue([]byte{0xde, 0xad}); got != "dead" {
		t.Fatalf("bytes: %s", got)
	}
}

func TestLvlFilterHandler(t *testing.T) {
	var got []*Record
	h := LvlFilterHandler(LvlWarn, FuncHandler(func(r *Record) error {
		got = append(got, r)
		return nil
	}))
	l := New()
	l.SetHandler(h)
	l.Info("dropped")
	l.Warn("kept")
	l.Error("kept too")
	if len(got) != 2 {
		t.Fatalf("filter passed %d records, want 2", len(got))
	}
}

func TestChildLoggerInheritsContext(t *testing.T) {
	var rec *Record
	l := New("component", "registry")
	l.SetHandler(FuncHandler(func(r *Record) error {
		rec = r
		return nil
	}))
	l.New("namehash", "0x01").Info("msg")
	if rec == nil || len(rec.Ctx) != 4 {
		t.Fatalf("child context not merged: %+v", rec)
	}
}
