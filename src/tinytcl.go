package tinytcl

import (
	"fmt"
	"os"
	"strings"
)

// TinyTcl bundles an interpreter with the stock command registry and the
// built-in commands
type TinyTcl struct {
	config      *Config
	logger      *Logger
	registry    *Registry
	interpreter *Interpreter
	// lines of the most recently executed script, for error context
	lastLines []string
}

// New creates a new interpreter with set, get and puts registered
func New(config *Config) *TinyTcl {
	if config == nil {
		config = DefaultConfig()
	}
	config.fillDefaults()

	logger := NewLogger(config.Debug)
	registry := NewRegistry(config.Stdout, logger)
	RegisterStandardLibrary(registry)

	interpreter := NewInterpreter(registry, config)
	interpreter.SetLogger(logger)

	return &TinyTcl{
		config:      config,
		logger:      logger,
		registry:    registry,
		interpreter: interpreter,
	}
}

// Configure updates the configuration. A nil config restores the defaults.
func (t *TinyTcl) Configure(config *Config) {
	if config == nil {
		config = DefaultConfig()
	}
	config.fillDefaults()
	*t.config = *config
	t.registry.SetOutput(config.Stdout)
	t.logger.SetEnabled(config.Debug)
	if config.Debug {
		t.logger.EnableAllCategories()
	}
}

// RegisterCommand registers a command handler accepting any arguments
func (t *TinyTcl) RegisterCommand(name string, handler Handler) {
	t.registry.RegisterCommand(name, handler)
}

// RegisterCommandArity registers a command handler with a fixed argument count
func (t *TinyTcl) RegisterCommandArity(name string, arity int, handler Handler) {
	t.registry.RegisterCommandArity(name, arity, handler)
}

// RegisterCommands registers multiple command handlers
func (t *TinyTcl) RegisterCommands(commands map[string]Handler) {
	for name, handler := range commands {
		t.registry.RegisterCommand(name, handler)
	}
}

// SetFallbackHandler sets a fallback handler for unknown commands
func (t *TinyTcl) SetFallbackHandler(handler Handler) {
	t.registry.SetFallbackHandler(handler)
}

// Execute parses and runs script, returning the last command's result
func (t *TinyTcl) Execute(script string) (string, error) {
	t.lastLines = strings.Split(script, "\n")
	return t.interpreter.EvalScript(script)
}

// ExecuteFile runs the script stored at path, with the path used in positions
func (t *TinyTcl) ExecuteFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return t.ExecuteNamed(string(content), path)
}

// ExecuteNamed runs script reporting positions against filename
func (t *TinyTcl) ExecuteNamed(script, filename string) (string, error) {
	t.lastLines = strings.Split(script, "\n")
	commands, err := t.interpreter.parse(script, filename)
	if err != nil {
		return "", err
	}
	return t.interpreter.Eval(commands)
}

// Variables returns the live variable bindings
func (t *TinyTcl) Variables() Variables {
	return t.interpreter.Variables()
}

// Interpreter returns the underlying interpreter
func (t *TinyTcl) Interpreter() *Interpreter {
	return t.interpreter
}

// Logger returns the logger
func (t *TinyTcl) Logger() *Logger {
	return t.logger
}

// FormatError renders err with position and source context of the most
// recently executed script
func (t *TinyTcl) FormatError(err error) string {
	return NewErrorFormatter(t.config).Format(err, t.lastLines)
}

// GetConfig returns the current configuration
func (t *TinyTcl) GetConfig() *Config {
	configCopy := *t.config
	return &configCopy
}

// SetErrorContextEnabled enables or disables error context reporting
func (t *TinyTcl) SetErrorContextEnabled(enabled bool) {
	t.config.ShowErrorContext = enabled
}

// SetContextLines sets the number of context lines for error reporting
func (t *TinyTcl) SetContextLines(lines int) {
	if lines < 1 {
		lines = 1
	}
	if lines > 10 {
		lines = 10
	}
	t.config.ContextLines = lines
}
