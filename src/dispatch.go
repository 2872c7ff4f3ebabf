package tinytcl

import (
	"io"
	"os"
	"sort"
	"sync"
)

// Dispatcher executes one resolved command. vars is the live binding map of
// the calling interpreter and is only valid for the duration of the call.
type Dispatcher interface {
	Dispatch(vars Variables, name string, args []string) (string, error)
}

// DispatchFunc adapts a plain function to the Dispatcher interface
type DispatchFunc func(vars Variables, name string, args []string) (string, error)

// Dispatch calls f
func (f DispatchFunc) Dispatch(vars Variables, name string, args []string) (string, error) {
	return f(vars, name, args)
}

// Context is passed to command handlers
type Context struct {
	Name string
	Args []string
	Vars Variables
	// Out receives command output such as puts lines
	Out    io.Writer
	logger *Logger
}

// Arg returns argument i, or "" when there are fewer arguments
func (c *Context) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Debug logs a debug message in category cat, prefixed with the command name
func (c *Context) Debug(cat LogCategory, format string, args ...interface{}) {
	c.logger.DebugCat(cat, c.Name+": "+format, args...)
}

// Handler implements one command
type Handler func(ctx *Context) (string, error)

// VariadicArity marks a command that accepts any number of arguments
const VariadicArity = -1

type commandEntry struct {
	handler Handler
	arity   int
}

// Registry is a Dispatcher that looks commands up by name
type Registry struct {
	mu       sync.RWMutex
	commands map[string]commandEntry
	fallback Handler
	out      io.Writer
	logger   *Logger
}

// NewRegistry creates an empty registry writing command output to out
// (os.Stdout when nil)
func NewRegistry(out io.Writer, logger *Logger) *Registry {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = NewLogger(false)
	}
	return &Registry{
		commands: make(map[string]commandEntry),
		out:      out,
		logger:   logger,
	}
}

// RegisterCommand registers a handler accepting any number of arguments
func (r *Registry) RegisterCommand(name string, handler Handler) {
	r.RegisterCommandArity(name, VariadicArity, handler)
}

// RegisterCommandArity registers a handler that must receive exactly arity
// arguments. The count is checked before the handler runs.
func (r *Registry) RegisterCommandArity(name string, arity int, handler Handler) {
	r.mu.Lock()
	r.commands[name] = commandEntry{handler: handler, arity: arity}
	r.mu.Unlock()
	r.logger.DebugCat(CatCommand, "Registered command: %s", name)
}

// UnregisterCommand unregisters a command
func (r *Registry) UnregisterCommand(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		delete(r.commands, name)
		r.logger.DebugCat(CatCommand, "Unregistered command: %s", name)
		return true
	}

	r.logger.WarnCat(CatCommand, "Attempted to unregister unknown command: %s", name)
	return false
}

// HasCommand reports whether name is registered
func (r *Registry) HasCommand(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[name]
	return ok
}

// CommandNames returns the registered names in sorted order
func (r *Registry) CommandNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// SetOutput redirects command output to out (os.Stdout when nil)
func (r *Registry) SetOutput(out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	r.mu.Lock()
	r.out = out
	r.mu.Unlock()
}

// SetFallbackHandler sets a handler for names with no registered command.
// Without one, unknown names fail with *UnknownCommandError.
func (r *Registry) SetFallbackHandler(handler Handler) {
	r.mu.Lock()
	r.fallback = handler
	r.mu.Unlock()
}

// Dispatch runs the handler registered for name
func (r *Registry) Dispatch(vars Variables, name string, args []string) (string, error) {
	r.mu.RLock()
	entry, exists := r.commands[name]
	fallback := r.fallback
	out := r.out
	r.mu.RUnlock()

	ctx := &Context{Name: name, Args: args, Vars: vars, Out: out, logger: r.logger}
	if !exists {
		if fallback == nil {
			return "", &UnknownCommandError{Name: name}
		}
		r.logger.DebugCat(CatCommand, "Falling back for unknown command: %s", name)
		return fallback(ctx)
	}

	if entry.arity != VariadicArity && len(args) != entry.arity {
		return "", &ArityError{Command: name, Expected: entry.arity, Received: len(args)}
	}
	return entry.handler(ctx)
}
