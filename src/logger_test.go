package tinytcl

import (
	"errors"
	"strings"
	"testing"

	"fortio.org/log"
)

func TestLoggerCategories(t *testing.T) {
	l := NewLogger(false)
	if l.shouldLog(LevelDebug, CatParse) {
		t.Error("debug logged while disabled")
	}
	if !l.shouldLog(LevelWarn, CatParse) || !l.shouldLog(LevelError, CatNone) {
		t.Error("warnings and errors must always be logged")
	}

	l.SetEnabled(true)
	if l.shouldLog(LevelDebug, CatParse) {
		t.Error("debug logged for a category that was not enabled")
	}
	if !l.shouldLog(LevelDebug, CatNone) {
		t.Error("uncategorized debug suppressed while enabled")
	}
	l.EnableCategory(CatParse)
	if !l.shouldLog(LevelTrace, CatParse) {
		t.Error("trace suppressed for enabled category")
	}
	l.DisableCategory(CatParse)
	if l.IsCategoryEnabled(CatParse) {
		t.Error("category still enabled")
	}

	all := NewLogger(true)
	for _, cat := range allCategories {
		if !all.IsCategoryEnabled(cat) {
			t.Errorf("category %q not enabled by NewLogger(true)", cat)
		}
	}
}

func TestLoggerRestoresFortioLevel(t *testing.T) {
	prev := log.GetLogLevel()
	t.Cleanup(func() { log.SetLogLevelQuiet(prev) })
	log.SetLogLevelQuiet(log.Info)

	l := NewLogger(true)
	if log.GetLogLevel() != log.Debug {
		t.Errorf("level while enabled = %v, want Debug", log.GetLogLevel())
	}
	l.SetEnabled(true)
	l.SetEnabled(false)
	if log.GetLogLevel() != log.Info {
		t.Errorf("level after disabling = %v, want Info", log.GetLogLevel())
	}

	l.SetEnabled(false)
	if log.GetLogLevel() != log.Info {
		t.Errorf("disabling twice changed the level to %v", log.GetLogLevel())
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.DebugCat(CatCommand, "ignored %d", 1)
	l.Log(LevelError, CatNone, "ignored")
}

func TestFormatParseError(t *testing.T) {
	script := "set a 1\nhello { world\nputs done"
	p := NewParser(script, "t.tcl")
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected parse error")
	}

	got := NewErrorFormatter(nil).Format(err, strings.Split(script, "\n"))
	want := strings.Join([]string{
		"Parse error: missing close-brace",
		"  at line 2, column 7 in t.tcl",
		"",
		"      1 | set a 1",
		"  >   2 | hello { world",
		"        |       ^",
		"      3 | puts done",
	}, "\n")
	if got != want {
		t.Errorf("formatted error mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatCommandError(t *testing.T) {
	err := &CommandError{
		Name:     "frob",
		Position: SourcePosition{Line: 1, Column: 1},
		Err:      &UnknownCommandError{Name: "frob"},
	}
	f := &ErrorFormatter{ShowContext: false, ContextLines: 2}
	got := f.Format(err, []string{"frob"})
	want := "Error: FROB: unknown command 'frob'\n  at line 1, column 1 in <unknown>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := f.Format(errors.New("plain"), nil); got != "Error: plain" {
		t.Errorf("plain error formatted as %q", got)
	}
}
