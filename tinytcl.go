// Package tinytcl provides a small Tcl-like command language that can be
// embedded in Go applications.
//
// This package re-exports the public API from the implementation in src/.
// For full documentation, see the implementation package.
//
// Basic usage:
//
//	tcl := tinytcl.New(nil)
//	tcl.RegisterCommand("greet", func(ctx *tinytcl.Context) (string, error) {
//		return "hello " + ctx.Arg(0), nil
//	})
//	result, err := tcl.Execute("set who world; greet $who")
package tinytcl

import (
	"io"

	impl "github.com/phroun/tinytcl/src"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// TinyTcl is an interpreter bundled with the built-in commands.
type TinyTcl = impl.TinyTcl

// Interpreter evaluates parsed commands through a Dispatcher.
type Interpreter = impl.Interpreter

// Config holds configuration options for the interpreter.
type Config = impl.Config

// Context is passed to command handlers during execution.
type Context = impl.Context

// Handler is the function signature for command handlers.
type Handler = impl.Handler

// Dispatcher executes resolved commands.
type Dispatcher = impl.Dispatcher

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc = impl.DispatchFunc

// Registry is the stock name-to-handler Dispatcher.
type Registry = impl.Registry

// Logger filters and emits debug output.
type Logger = impl.Logger

// Variables is the flat variable namespace of an interpreter.
type Variables = impl.Variables

// OptimizationLevel controls parse caching.
type OptimizationLevel = impl.OptimizationLevel

// =============================================================================
// SYNTAX TREE
// =============================================================================

// Command is one parsed command.
type Command = impl.Command

// Word is one parsed word of a command.
type Word = impl.Word

// WordKind identifies bare, quoted and substitution words.
type WordKind = impl.WordKind

// Fragment is literal text or a variable reference inside a word.
type Fragment = impl.Fragment

// FragmentKind distinguishes literal fragments from variable references.
type FragmentKind = impl.FragmentKind

// SourcePosition locates a command or error in the script.
type SourcePosition = impl.SourcePosition

// =============================================================================
// ERRORS
// =============================================================================

// ParseError reports malformed script text.
type ParseError = impl.ParseError

// InvalidEscapeError reports an unknown backslash escape.
type InvalidEscapeError = impl.InvalidEscapeError

// UnknownCommandError reports an unregistered command name.
type UnknownCommandError = impl.UnknownCommandError

// ArityError reports a wrong argument count.
type ArityError = impl.ArityError

// ConversionError reports an argument a handler could not interpret.
type ConversionError = impl.ConversionError

// MalformedError reports semantically invalid arguments.
type MalformedError = impl.MalformedError

// CommandError carries the failing command's name and position.
type CommandError = impl.CommandError

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	BareWord   = impl.BareWord
	QuotedWord = impl.QuotedWord
	SubstWord  = impl.SubstWord

	LiteralFragment  = impl.LiteralFragment
	VariableFragment = impl.VariableFragment

	OptimizeNone  = impl.OptimizeNone
	OptimizeBasic = impl.OptimizeBasic

	VariadicArity = impl.VariadicArity
)

// =============================================================================
// FUNCTIONS
// =============================================================================

// New creates an interpreter with set, get and puts registered.
func New(config *Config) *TinyTcl {
	return impl.New(config)
}

// NewInterpreter creates a bare interpreter around a Dispatcher.
func NewInterpreter(dispatcher Dispatcher, config *Config) *Interpreter {
	return impl.NewInterpreter(dispatcher, config)
}

// NewRegistry creates an empty command registry.
func NewRegistry(out io.Writer, logger *Logger) *Registry {
	return impl.NewRegistry(out, logger)
}

// RegisterStandardLibrary registers set, get and puts on r.
func RegisterStandardLibrary(r *Registry) {
	impl.RegisterStandardLibrary(r)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return impl.DefaultConfig()
}

// Parse parses script text into commands.
func Parse(script string) ([]Command, error) {
	return impl.Parse(script)
}

// Unparse renders commands back into script text.
func Unparse(commands []Command) string {
	return impl.Unparse(commands)
}

// Unescape decodes the backslash escapes of quoted text.
func Unescape(text string) (string, error) {
	return impl.Unescape(text)
}

// IsIncomplete reports whether err is a parse error at end of input.
func IsIncomplete(err error) bool {
	return impl.IsIncomplete(err)
}
