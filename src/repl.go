package tinytcl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

const (
	promptMain = "tcl> "
	promptCont = "...> "
)

// LineReader reads one line of input after showing a prompt.
// *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// REPLConfig configures the REPL behavior
type REPLConfig struct {
	Debug       bool
	OptLevel    int
	ShowBanner  bool
	HistoryFile string // empty disables history persistence
}

// REPL provides an interactive Read-Eval-Print Loop on one persistent
// interpreter
type REPL struct {
	tcl    *TinyTcl
	config REPLConfig
	out    io.Writer
	// history receives each evaluated statement
	history func(string)

	equals  func(a ...interface{}) string
	errText func(a ...interface{}) string
}

// NewREPL creates a new REPL with its own interpreter
func NewREPL(config REPLConfig, out io.Writer) *REPL {
	tcl := New(&Config{
		Debug:            config.Debug,
		ShowErrorContext: true,
		ContextLines:     2,
		OptLevel:         OptimizationLevel(config.OptLevel),
		Stdout:           out,
		Stderr:           out,
	})
	r := NewREPLWithInterpreter(tcl, out)
	r.config = config
	return r
}

// NewREPLWithInterpreter creates a REPL around an existing interpreter
func NewREPLWithInterpreter(tcl *TinyTcl, out io.Writer) *REPL {
	if out == nil {
		out = os.Stdout
	}
	return &REPL{
		tcl:     tcl,
		out:     out,
		history: func(string) {},
		equals:  color.New(color.FgGreen).SprintFunc(),
		errText: color.New(color.FgRed).SprintFunc(),
	}
}

// Interpreter returns the interpreter the REPL evaluates against
func (r *REPL) Interpreter() *TinyTcl {
	return r.tcl
}

// StdinIsTerminal reports whether standard input is an interactive terminal
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Run starts an interactive session on the terminal using liner for line
// editing. It returns when the user types exit or quit, or at end of input.
func (r *REPL) Run() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if r.config.HistoryFile != "" {
		if f, err := os.Open(r.config.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	r.history = ln.AppendHistory

	if r.config.ShowBanner {
		fmt.Fprintln(r.out, "tinytcl interactive mode. Type 'exit' or 'quit' to leave.")
	}
	r.Loop(ln)

	if r.config.HistoryFile != "" {
		f, err := os.Create(r.config.HistoryFile)
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		defer f.Close()
		if _, err := ln.WriteHistory(f); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	return nil
}

// Loop reads and evaluates statements from in until exit, quit or EOF
func (r *REPL) Loop(in LineReader) {
	for {
		input, ok := r.ReadStatement(in)
		if !ok {
			fmt.Fprintln(r.out)
			return
		}
		if r.ProcessInput(input) {
			return
		}
	}
}

// ReadStatement reads lines until they parse as a complete script, or
// until the parser reports an error that more input cannot fix. It returns
// false at end of input.
func (r *REPL) ReadStatement(in LineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if IsComplete(b.String()) {
			return b.String(), true
		}
	}
}

// IsComplete reports whether input needs no further lines: it either parses
// or fails for a reason other than running out of text
func IsComplete(input string) bool {
	_, err := Parse(input)
	return err == nil || !IsIncomplete(err)
}

// ProcessInput evaluates one statement and prints its result. It reports
// true when the statement asks to leave the REPL.
func (r *REPL) ProcessInput(input string) bool {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)
	if lower == "exit" || lower == "quit" {
		return true
	}
	if trimmed == "" {
		return false
	}
	r.history(strings.ReplaceAll(trimmed, "\n", " "))

	result, err := r.tcl.Execute(input)
	if err != nil {
		fmt.Fprintln(r.out, r.errText(r.tcl.FormatError(err)))
		return false
	}
	fmt.Fprintf(r.out, "%s %s\n", r.equals("="), result)
	return false
}
