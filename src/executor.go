package tinytcl

import (
	"errors"
	"fmt"
	"os"
)

// Interpreter evaluates parsed commands against one set of variable bindings,
// handing every resolved command to its Dispatcher
type Interpreter struct {
	dispatcher Dispatcher
	state      *ExecutionState
	config     *Config
	logger     *Logger
	cache      *parseCache
}

// NewInterpreter creates an interpreter with empty bindings
func NewInterpreter(dispatcher Dispatcher, config *Config) *Interpreter {
	if config == nil {
		config = DefaultConfig()
	}
	config.fillDefaults()
	return &Interpreter{
		dispatcher: dispatcher,
		state:      NewExecutionState(),
		config:     config,
		logger:     NewLogger(config.Debug),
		cache:      newParseCache(),
	}
}

// SetLogger replaces the interpreter's logger
func (in *Interpreter) SetLogger(logger *Logger) {
	if logger != nil {
		in.logger = logger
	}
}

// Variables returns the live bindings. They persist across Eval calls.
func (in *Interpreter) Variables() Variables {
	return in.state.Variables()
}

// Config returns the interpreter configuration
func (in *Interpreter) Config() *Config {
	return in.config
}

// Eval runs commands in order and returns the result of the last one. The
// first failing command stops evaluation; bindings changed by earlier
// commands are kept.
func (in *Interpreter) Eval(commands []Command) (string, error) {
	in.state.ClearResult()
	for i := range commands {
		result, err := in.evalCommand(&commands[i])
		if err != nil {
			in.logger.DebugCat(CatCommand, "evaluation stopped at command %d of %d: %v", i+1, len(commands), err)
			return "", err
		}
		in.state.SetResult(result)
	}
	return in.state.GetResult(), nil
}

// EvalScript parses and evaluates script. Parse errors are returned as is.
func (in *Interpreter) EvalScript(script string) (string, error) {
	commands, err := in.parse(script, in.config.Filename)
	if err != nil {
		return "", err
	}
	return in.Eval(commands)
}

// EvalFile reads, parses and evaluates the script at path
func (in *Interpreter) EvalFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	in.logger.DebugCat(CatIO, "loaded %s (%d bytes)", path, len(content))
	commands, err := in.parse(string(content), path)
	if err != nil {
		return "", err
	}
	return in.Eval(commands)
}

// parse consults the parse cache when optimization is enabled
func (in *Interpreter) parse(script, filename string) ([]Command, error) {
	useCache := in.config.OptLevel >= OptimizeBasic
	if useCache {
		if commands, ok := in.cache.get(script, filename); ok {
			in.logger.TraceCat(CatParse, "parse cache hit (%d commands)", len(commands))
			return commands, nil
		}
	}
	parser := NewParser(script, filename)
	parser.SetMaxNesting(in.config.MaxNesting)
	commands, err := parser.Parse()
	if err != nil {
		in.logger.DebugCat(CatParse, "%v", err)
		return nil, err
	}
	if useCache {
		in.cache.put(script, filename, commands)
	}
	return commands, nil
}

// evalCommand resolves and dispatches a single command
func (in *Interpreter) evalCommand(cmd *Command) (string, error) {
	words, err := in.resolveWords(cmd)
	if err != nil {
		return "", in.wrap(cmd, words, err)
	}
	if len(words) == 0 {
		return "", nil
	}
	name, args := words[0], words[1:]
	in.logger.DebugCat(CatCommand, "dispatch %s %q", name, args)
	result, err := in.dispatcher.Dispatch(in.state.vars, name, args)
	if err != nil {
		return "", in.wrap(cmd, words, err)
	}
	return result, nil
}

// wrap attaches the command's name and position to err. Errors already
// wrapped by a nested substitution keep their own position.
func (in *Interpreter) wrap(cmd *Command, words []string, err error) error {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return err
	}
	name := ""
	if len(words) > 0 {
		name = words[0]
	}
	return &CommandError{Name: name, Position: cmd.Position, Err: err}
}
