package tinytcl

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func newTestInterpreter(out io.Writer) (*Interpreter, *Registry) {
	registry := NewRegistry(out, nil)
	RegisterStandardLibrary(registry)
	config := DefaultConfig()
	config.Stdout = out
	return NewInterpreter(registry, config), registry
}

func TestPutsVariable(t *testing.T) {
	var out bytes.Buffer
	in, _ := newTestInterpreter(&out)

	result, err := in.EvalScript("set a 5\nputs $a")
	if err != nil {
		t.Fatalf("EvalScript returned error: %v", err)
	}
	if result != "" {
		t.Errorf("result = %q, want empty", result)
	}
	if out.String() != "5\n" {
		t.Errorf("output = %q, want %q", out.String(), "5\n")
	}
}

func TestInterpretVariable(t *testing.T) {
	for _, script := range []string{
		"set example indirect\nset indirect found\nget $example",
		"set example indirect\nset indirect found\nget ${example}",
	} {
		in, _ := newTestInterpreter(io.Discard)
		result, err := in.EvalScript(script)
		if err != nil {
			t.Fatalf("EvalScript(%q) returned error: %v", script, err)
		}
		if result != "found" {
			t.Errorf("EvalScript(%q) = %q, want %q", script, result, "found")
		}
	}
}

func TestEvalEmpty(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	result, err := in.Eval(nil)
	if err != nil || result != "" {
		t.Errorf("Eval(nil) = %q, %v", result, err)
	}
	result, err = in.EvalScript("\n\n")
	if err != nil || result != "" {
		t.Errorf("EvalScript(blank) = %q, %v", result, err)
	}
}

func TestUnboundVariableIsEmpty(t *testing.T) {
	var out bytes.Buffer
	in, _ := newTestInterpreter(&out)
	if _, err := in.EvalScript(`puts "[$missing]"`); err != nil {
		t.Fatalf("EvalScript returned error: %v", err)
	}
	if out.String() != "[]\n" {
		t.Errorf("output = %q, want %q", out.String(), "[]\n")
	}
}

func TestLastResultWins(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	result, err := in.EvalScript("set a 1; set b 2; get a")
	if err != nil {
		t.Fatal(err)
	}
	if result != "1" {
		t.Errorf("result = %q, want 1", result)
	}
}

func TestBindingsPersistAcrossEval(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	if _, err := in.EvalScript("set who world"); err != nil {
		t.Fatal(err)
	}
	result, err := in.EvalScript("get who")
	if err != nil {
		t.Fatal(err)
	}
	if result != "world" {
		t.Errorf("result = %q, want world", result)
	}
	if in.Variables()["who"] != "world" {
		t.Errorf("Variables()[who] = %q", in.Variables()["who"])
	}
}

func TestQuotedEscapes(t *testing.T) {
	var out bytes.Buffer
	in, _ := newTestInterpreter(&out)
	if _, err := in.EvalScript(`set x "a \"b\" \\ c\nd"; puts $x`); err != nil {
		t.Fatal(err)
	}
	if want := "a \"b\" \\ c\nd\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestBareWordsKeepBackslashes(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	result, err := in.EvalScript(`set x a\tb; get x`)
	if err != nil {
		t.Fatal(err)
	}
	if result != `a\tb` {
		t.Errorf("result = %q, want %q", result, `a\tb`)
	}
}

func TestInvalidEscapeAtEvaluation(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	_, err := in.EvalScript("set a 1\nputs \"bad \\q\"")

	var escErr *InvalidEscapeError
	if !errors.As(err, &escErr) {
		t.Fatalf("error = %v, want *InvalidEscapeError", err)
	}
	if escErr.Sequence != `\q` {
		t.Errorf("sequence = %q", escErr.Sequence)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error = %T, want *CommandError", err)
	}
	if cmdErr.Name != "puts" || cmdErr.Position.Line != 2 {
		t.Errorf("command error = %q at line %d", cmdErr.Name, cmdErr.Position.Line)
	}
}

func TestFailFastKeepsEarlierEffects(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	_, err := in.EvalScript("set a 1\nboom now\nset a 2")

	var unknown *UnknownCommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownCommandError", err)
	}
	if unknown.Name != "boom" {
		t.Errorf("unknown name = %q", unknown.Name)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Position.Line != 2 {
		t.Errorf("expected command error at line 2, got %v", err)
	}
	if got := in.Variables()["a"]; got != "1" {
		t.Errorf("a = %q, want 1 (no rollback, no later commands)", got)
	}
}

func TestArityCheckedBeforeHandler(t *testing.T) {
	in, registry := newTestInterpreter(io.Discard)
	calls := 0
	registry.RegisterCommandArity("pair", 2, func(ctx *Context) (string, error) {
		calls++
		return ctx.Args[0] + ctx.Args[1], nil
	})

	_, err := in.EvalScript("pair only")
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("error = %v, want *ArityError", err)
	}
	if arity.Expected != 2 || arity.Received != 1 || arity.Command != "pair" {
		t.Errorf("arity error = %+v", arity)
	}
	if calls != 0 {
		t.Errorf("handler ran %d times", calls)
	}
	if arity.Error() != "expected 2 arguments to 'pair', received 1" {
		t.Errorf("message = %q", arity.Error())
	}

	_, err = in.EvalScript("set a")
	if !errors.As(err, &arity) || arity.Command != "set" {
		t.Errorf("set with one argument: %v", err)
	}
	if _, ok := in.Variables()["a"]; ok {
		t.Error("failed set created a binding")
	}
}

func TestCommandSubstitution(t *testing.T) {
	in, registry := newTestInterpreter(io.Discard)
	registry.RegisterCommand("join", func(ctx *Context) (string, error) {
		return strings.Join(ctx.Args, "-"), nil
	})

	result, err := in.EvalScript("set y 3\nset x [join a [get y] $y]\nget x")
	if err != nil {
		t.Fatal(err)
	}
	if result != "a-3-3" {
		t.Errorf("result = %q, want a-3-3", result)
	}
}

func TestSubstitutionSeesLiveBindings(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	result, err := in.EvalScript("set a 1\nset b [set a 2] \nget a")
	if err != nil {
		t.Fatal(err)
	}
	if result != "2" {
		t.Errorf("result = %q, want 2", result)
	}
}

func TestNestedSubstitutionErrorKeepsPosition(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	_, err := in.EvalScript("set a 1\nset b [\n  nope\n]")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error = %v, want *CommandError", err)
	}
	if cmdErr.Name != "nope" || cmdErr.Position.Line != 3 || cmdErr.Position.Column != 3 {
		t.Errorf("command error %q at %d:%d", cmdErr.Name, cmdErr.Position.Line, cmdErr.Position.Column)
	}
}

func TestParseErrorReturnedWhole(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	_, err := in.EvalScript("hello { world")
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("error = %T, want *ParseError", err)
	}
}

func TestDispatchFuncReceivesLiveVariables(t *testing.T) {
	var seen []string
	d := DispatchFunc(func(vars Variables, name string, args []string) (string, error) {
		seen = append(seen, name+"("+strings.Join(args, ",")+")")
		vars["last"] = name
		return name, nil
	})
	in := NewInterpreter(d, nil)
	result, err := in.EvalScript("first x y\nsecond $last")
	if err != nil {
		t.Fatal(err)
	}
	if result != "second" {
		t.Errorf("result = %q", result)
	}
	want := []string{"first(x,y)", "second(first)"}
	if strings.Join(seen, " ") != strings.Join(want, " ") {
		t.Errorf("dispatched %v, want %v", seen, want)
	}
}

func TestSingleLiteralWordsShareScript(t *testing.T) {
	var got []string
	d := DispatchFunc(func(vars Variables, name string, args []string) (string, error) {
		got = append(got, args...)
		return "", nil
	})
	in := NewInterpreter(d, &Config{OptLevel: OptimizeNone})
	script := "cmd alpha \"beta\""
	if _, err := in.EvalScript(script); err != nil {
		t.Fatal(err)
	}
	for _, arg := range got {
		if !sharesMemory(script, arg) {
			t.Errorf("argument %q was copied", arg)
		}
	}
}

func TestLoneVariableWordsAreNotCopied(t *testing.T) {
	var got []string
	d := DispatchFunc(func(vars Variables, name string, args []string) (string, error) {
		got = append(got, args...)
		return "", nil
	})
	in := NewInterpreter(d, &Config{OptLevel: OptimizeNone})
	value := strings.Repeat("v", 64)
	in.Variables()["a"] = value
	if _, err := in.EvalScript("cmd $a ${a}"); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("args = %q", got)
	}
	for _, arg := range got {
		if !sharesMemory(value, arg) {
			t.Errorf("argument %q was copied", arg)
		}
	}
}

func TestParseCache(t *testing.T) {
	in, _ := newTestInterpreter(io.Discard)
	for i := 0; i < 3; i++ {
		if _, err := in.EvalScript("set a 1; get a"); err != nil {
			t.Fatal(err)
		}
	}
	if in.cache.hits != 2 || in.cache.len() != 1 {
		t.Errorf("cache hits = %d, entries = %d", in.cache.hits, in.cache.len())
	}

	uncached := NewInterpreter(NewRegistry(io.Discard, nil), &Config{OptLevel: OptimizeNone})
	_, _ = uncached.EvalScript("set a 1")
	if uncached.cache.len() != 0 {
		t.Errorf("OptimizeNone cached %d scripts", uncached.cache.len())
	}
}

func TestParseCacheBounded(t *testing.T) {
	c := newParseCache()
	for i := 0; i < maxCachedScripts+10; i++ {
		c.put(strings.Repeat("x", i+1), "", nil)
	}
	if c.len() > maxCachedScripts {
		t.Errorf("cache grew to %d entries", c.len())
	}
	if _, ok := c.get("never stored", ""); ok {
		t.Error("unexpected hit")
	}
}

func TestEvalFile(t *testing.T) {
	path := t.TempDir() + "/script.tcl"
	if err := os.WriteFile(path, []byte("set a 1\nget a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	in, _ := newTestInterpreter(io.Discard)
	result, err := in.EvalFile(path)
	if err != nil || result != "1" {
		t.Errorf("EvalFile = %q, %v", result, err)
	}

	_, err = in.EvalFile(path + ".missing")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func FuzzEvalScript(f *testing.F) {
	for _, seed := range []string{
		"set a 5\nputs $a",
		"set example indirect\nset indirect found\nget $example",
		`puts "bad \q"`,
		"set x [get [get y]]",
		"get ${a b}",
		"puts {a;b}",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, script string) {
		in, _ := newTestInterpreter(io.Discard)
		_, _ = in.EvalScript(script)
	})
}
