package tinytcl

// ExecutionState manages the bindings and result state of one interpreter.
// It is not safe for concurrent use; each script gets its own interpreter.
type ExecutionState struct {
	vars          Variables
	currentResult string
}

// NewExecutionState creates a new execution state with empty bindings
func NewExecutionState() *ExecutionState {
	return &ExecutionState{
		vars: make(Variables),
	}
}

// Variables returns the live bindings
func (s *ExecutionState) Variables() Variables {
	return s.vars
}

// SetResult sets the result value
func (s *ExecutionState) SetResult(value string) {
	s.currentResult = value
}

// GetResult returns the current result value
func (s *ExecutionState) GetResult() string {
	return s.currentResult
}

// ClearResult clears the result value
func (s *ExecutionState) ClearResult() {
	s.currentResult = ""
}
